package submission

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leadbox/leadbox/internal/httpx"
	"github.com/leadbox/leadbox/pkg/binder"
	"github.com/leadbox/leadbox/pkg/logger"
	"github.com/leadbox/leadbox/pkg/validator"
)

// Handler exposes the submission service over HTTP.
type Handler struct {
	svc *Service
	log *slog.Logger
}

// NewHandler creates the submission HTTP handler.
func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log.With(logger.Component("http"))}
}

// Routes mounts the submission endpoints on a fresh router. The create
// endpoint accepts extra middleware so transport concerns like rate
// limiting stay out of the handler.
func (h *Handler) Routes(createMiddleware ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.With(createMiddleware...).Post("/", h.handleCreate)
	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleGet)

	return r
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := binder.BindJSON(r, &req); err != nil {
		h.writeBindError(w, err)
		return
	}

	resp, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var req ListRequest
	if err := binder.BindQuery(r, &req); err != nil {
		h.writeBindError(w, err)
		return
	}

	page, err := h.svc.List(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, page)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		// A well-formed id that matches nothing yields an empty object,
		// not a 404.
		httpx.JSON(w, http.StatusOK, struct{}{})
		return
	}
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) writeBindError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType),
		errors.Is(err, binder.ErrMissingContentType):
		httpx.Error(w, http.StatusUnsupportedMediaType, "unsupported_media_type", err.Error())
	default:
		httpx.Error(w, http.StatusBadRequest, "invalid_request", err.Error())
	}
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		httpx.ValidationError(w, verrs.ByField())
		return
	}

	if errors.Is(err, ErrInvalidID) {
		httpx.Error(w, http.StatusBadRequest, "invalid_id", "submission id must be a 24-character hex string")
		return
	}

	h.log.ErrorContext(r.Context(), "submission request failed", logger.Error(err))
	httpx.Error(w, http.StatusInternalServerError, "internal_error", "something went wrong")
}
