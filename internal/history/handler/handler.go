// Package handler exposes the saved-analysis endpoints. All routes require a
// valid bearer token; the authenticated subject scopes every operation.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"regent/internal/classification/service"
	"regent/internal/history/models"
	"regent/internal/platform/middleware"
	dErrors "regent/pkg/domain-errors"
	"regent/pkg/platform/httputil"
	"regent/pkg/requestcontext"
)

// Service defines the history operations the handler depends on.
type Service interface {
	Save(ctx context.Context, a models.Analysis) (models.Analysis, error)
	Get(ctx context.Context, subject, id string) (models.Analysis, error)
	List(ctx context.Context, subject string) ([]models.Analysis, error)
	Delete(ctx context.Context, subject, id string) error
}

// SaveRequest names a classification result worth keeping.
type SaveRequest struct {
	Name   string         `json:"name"`
	Result service.Result `json:"result"`
}

type Handler struct {
	logger       *slog.Logger
	history      Service
	jwtValidator middleware.JWTValidator
}

func New(history Service, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		history:      history,
		jwtValidator: jwtValidator,
	}
}

// Register registers the analysis routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1/analyses", func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/", h.handleSave)
		r.Get("/", h.handleList)
		r.Get("/{id}", h.handleGet)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[SaveRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	saved, err := h.history.Save(ctx, models.Analysis{
		Subject: requestcontext.Subject(ctx),
		Name:    req.Name,
		Result:  req.Result,
	})
	if err != nil {
		if !dErrors.Is(err, dErrors.CodeValidation) {
			h.logger.ErrorContext(ctx, "failed to save analysis",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, saved)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	analyses, err := h.history.List(ctx, requestcontext.Subject(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list analyses",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"analyses": analyses})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	a, err := h.history.Get(ctx, requestcontext.Subject(ctx), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.history.Delete(ctx, requestcontext.Subject(ctx), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
