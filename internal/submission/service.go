package submission

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/leadbox/leadbox/pkg/logger"
	"github.com/leadbox/leadbox/pkg/mailer"
	"github.com/leadbox/leadbox/pkg/sanitizer"
	"github.com/leadbox/leadbox/pkg/validator"
)

// ErrInvalidID is returned when an identifier is not a valid ObjectID hex
// string.
var ErrInvalidID = errors.New("invalid submission id")

// CreateRequest is the raw create payload before sanitization.
type CreateRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// ListRequest is the raw list query before sanitization and validation.
// Page is a pointer so an absent parameter defaults to the first page while
// an explicit page=0 is rejected.
type ListRequest struct {
	Page      *int   `query:"page"`
	Search    string `query:"search"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

func (r ListRequest) page() int {
	if r.Page == nil {
		return 1
	}
	return *r.Page
}

var (
	sortFields = []string{"createdAt", "name", "email"}
	sortOrders = []string{"asc", "desc"}
)

// cleanText is the sanitization pipeline applied to every free-text field
// before validation.
var cleanText = sanitizer.Compose(
	sanitizer.StripMarkup,
	sanitizer.RemoveControlChars,
	sanitizer.Trim,
)

// maxSearchLen bounds the search term fed into the store's regex match.
const maxSearchLen = 100

// cleanSearch additionally collapses whitespace and caps the length, since
// search terms are single-line query input.
func cleanSearch(s string) string {
	return sanitizer.MaxLength(sanitizer.RemoveExtraWhitespace(cleanText(s)), maxSearchLen)
}

const notifyTimeout = 10 * time.Second

// Service implements the submission operations on top of a Repository.
type Service struct {
	repo        Repository
	sender      mailer.EmailSender
	notifyEmail string
	log         *slog.Logger
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithNotification enables the owner notification email sent after each
// successful submission.
func WithNotification(sender mailer.EmailSender, notifyEmail string) Option {
	return func(s *Service) {
		if sender != nil && notifyEmail != "" {
			s.sender = sender
			s.notifyEmail = notifyEmail
		}
	}
}

// NewService creates the submission service.
func NewService(repo Repository, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		log:  log.With(logger.Component("submission")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create sanitizes and validates the payload, persists it, and returns the
// stored record's API shape. On validation failure every violated field is
// reported.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Response, error) {
	req.Name = cleanText(req.Name)
	req.Email = cleanText(req.Email)
	req.Phone = cleanText(req.Phone)
	req.Message = cleanText(req.Message)

	if err := validator.Apply(
		validator.Required("name", req.Name),
		validator.MaxLen("name", req.Name, MaxNameLen),
		validator.Required("email", req.Email),
		validator.ValidEmail("email", req.Email),
		validator.Optional(req.Phone, validator.MaxLen("phone", req.Phone, MaxPhoneLen)),
		validator.Required("message", req.Message),
		validator.MaxLen("message", req.Message, MaxMessageLen),
	); err != nil {
		return Response{}, err
	}

	sub, err := s.repo.Create(ctx, Submission{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		return Response{}, fmt.Errorf("create submission: %w", err)
	}

	s.log.InfoContext(ctx, "submission created", logger.SubmissionID(sub.ID.Hex()))
	s.notify(ctx, sub)

	return sub.Response(), nil
}

// List validates the query, then reads the matching page and total count.
// Pages past the end yield an empty data array with true totals.
func (s *Service) List(ctx context.Context, req ListRequest) (Page, error) {
	req.Search = cleanSearch(req.Search)

	if req.SortBy == "" {
		req.SortBy = "createdAt"
	}
	if req.SortOrder == "" {
		req.SortOrder = "desc"
	}

	rules := make([]validator.Rule, 0, 5)
	if req.Page != nil {
		rules = append(rules, validator.Min("page", *req.Page, 1))
	}
	rules = append(rules,
		validator.InListString("sortBy", req.SortBy, sortFields),
		validator.InListString("sortOrder", req.SortOrder, sortOrders),
		validator.Optional(req.StartDate, validator.ValidDateString("startDate", req.StartDate)),
		validator.Optional(req.EndDate, validator.ValidDateString("endDate", req.EndDate)),
	)
	if err := validator.Apply(rules...); err != nil {
		return Page{}, err
	}

	q := buildListQuery(req)

	subs, err := s.repo.Find(ctx, q)
	if err != nil {
		return Page{}, fmt.Errorf("list submissions: %w", err)
	}

	total, err := s.repo.Count(ctx, q.Filter)
	if err != nil {
		return Page{}, fmt.Errorf("count submissions: %w", err)
	}

	data := make([]Response, 0, len(subs))
	for _, sub := range subs {
		data = append(data, sub.Response())
	}

	return Page{
		Data:       data,
		Pagination: NewPaginationMeta(req.page(), total),
	}, nil
}

// Get returns the submission with the given id. ErrInvalidID signals a
// malformed identifier; ErrNotFound signals a well-formed identifier that
// resolves to nothing.
func (s *Service) Get(ctx context.Context, id string) (Response, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	sub, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return Response{}, err
	}

	return sub.Response(), nil
}

// notify sends the owner notification in the background. Failures are
// logged and never affect the create response.
func (s *Service) notify(ctx context.Context, sub Submission) {
	if s.sender == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
		defer cancel()

		err := s.sender.SendEmail(ctx, mailer.SendEmailParams{
			SendTo:  s.notifyEmail,
			Subject: fmt.Sprintf("New contact submission from %s", sub.Name),
			BodyHTML: fmt.Sprintf(
				"<p><strong>Name:</strong> %s</p><p><strong>Email:</strong> %s</p><p><strong>Phone:</strong> %s</p><p>%s</p>",
				html.EscapeString(sub.Name),
				html.EscapeString(sub.Email),
				html.EscapeString(sub.Phone),
				html.EscapeString(sub.Message),
			),
			Tag: "submission-notification",
		})
		if err != nil {
			s.log.ErrorContext(ctx, "failed to send submission notification",
				logger.Error(err), logger.SubmissionID(sub.ID.Hex()))
		}
	}()
}
