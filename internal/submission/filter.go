package submission

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Filter is a tagged predicate over stored submissions. Expressions are
// combined with And and translated to the store's query form only at the
// repository boundary, keeping the service free of BSON.
type Filter interface {
	toBSON() bson.M
}

// And matches records satisfying every member filter. An empty And matches
// everything.
type And []Filter

// Contains matches records where any of the named fields contains the value
// as a case-insensitive substring.
type Contains struct {
	Fields []string
	Value  string
}

// GreaterOrEqual matches records whose field is at or after the given time.
type GreaterOrEqual struct {
	Field string
	Value time.Time
}

// LessOrEqual matches records whose field is at or before the given time.
type LessOrEqual struct {
	Field string
	Value time.Time
}

func (a And) toBSON() bson.M {
	switch len(a) {
	case 0:
		return bson.M{}
	case 1:
		return a[0].toBSON()
	}

	clauses := make([]bson.M, 0, len(a))
	for _, f := range a {
		clauses = append(clauses, f.toBSON())
	}
	return bson.M{"$and": clauses}
}

func (c Contains) toBSON() bson.M {
	// QuoteMeta keeps the match a literal substring rather than a pattern.
	pattern := regexp.QuoteMeta(c.Value)

	if len(c.Fields) == 1 {
		return bson.M{c.Fields[0]: bson.M{"$regex": pattern, "$options": "i"}}
	}

	clauses := make([]bson.M, 0, len(c.Fields))
	for _, field := range c.Fields {
		clauses = append(clauses, bson.M{field: bson.M{"$regex": pattern, "$options": "i"}})
	}
	return bson.M{"$or": clauses}
}

func (g GreaterOrEqual) toBSON() bson.M {
	return bson.M{g.Field: bson.M{"$gte": g.Value}}
}

func (l LessOrEqual) toBSON() bson.M {
	return bson.M{l.Field: bson.M{"$lte": l.Value}}
}

// searchFields are the fields a free-text search matches against.
var searchFields = []string{"name", "email", "message"}

// dateLayout is the accepted format of startDate/endDate parameters.
const dateLayout = "2006-01-02"

// ListQuery is the fully resolved read request handed to the repository:
// filter, sort, and the skip/limit window.
type ListQuery struct {
	Filter    Filter
	SortField string
	SortDesc  bool
	Skip      int64
	Limit     int64
}

// buildListQuery translates a validated list request into a ListQuery.
// Absent search or date bounds contribute no filter clause at all, so an
// unconstrained request reads every record.
func buildListQuery(req ListRequest) ListQuery {
	page := req.page()

	var filter And

	if req.Search != "" {
		filter = append(filter, Contains{Fields: searchFields, Value: req.Search})
	}
	if req.StartDate != "" {
		start, _ := time.Parse(dateLayout, req.StartDate)
		filter = append(filter, GreaterOrEqual{Field: "createdAt", Value: start})
	}
	if req.EndDate != "" {
		end, _ := time.Parse(dateLayout, req.EndDate)
		// Inclusive range: advance to the last representable instant of
		// the day.
		end = end.Add(24*time.Hour - time.Millisecond)
		filter = append(filter, LessOrEqual{Field: "createdAt", Value: end})
	}

	sortField := req.SortBy
	if sortField == "" {
		sortField = "createdAt"
	}

	return ListQuery{
		Filter:    filter,
		SortField: sortField,
		SortDesc:  req.SortOrder != "asc",
		Skip:      int64(page-1) * PageSize,
		Limit:     PageSize,
	}
}
