// Package submission implements the contact-form vertical: validation and
// sanitization of incoming submissions, MongoDB persistence, and paginated,
// filterable listing.
package submission

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// PageSize is the fixed number of submissions per page. It is not
// client-configurable.
const PageSize = 10

// Field length limits applied after sanitization.
const (
	MaxNameLen    = 100
	MaxPhoneLen   = 20
	MaxMessageLen = 1000
)

// Submission is a persisted contact-form record. Timestamps are set by the
// repository on create; records are never updated or deleted afterwards.
type Submission struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	Phone     string        `bson:"phone,omitempty"`
	Message   string        `bson:"message"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

// Response is the API-facing shape of a submission. The store-internal _id
// is exposed only as its hex string, and phone is omitted entirely when the
// record has none.
type Response struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Response maps the stored record to its API shape.
func (s Submission) Response() Response {
	return Response{
		ID:        s.ID.Hex(),
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Message:   s.Message,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// PaginationMeta describes the position of a page within the full result
// set.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPaginationMeta computes pagination metadata for the requested page.
// Pages past the end are not clamped: the metadata reflects the true totals
// and the page simply carries no data.
func NewPaginationMeta(page int, totalItems int64) PaginationMeta {
	totalPages := int(math.Ceil(float64(totalItems) / float64(PageSize)))

	return PaginationMeta{
		Page:       page,
		PageSize:   PageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// Page is one page of submissions with its pagination metadata.
type Page struct {
	Data       []Response     `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}
