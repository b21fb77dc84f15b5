// Package handler exposes the natural-language profile extraction endpoint.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"regent/internal/nlprofile/service"
	dErrors "regent/pkg/domain-errors"
	"regent/pkg/platform/httputil"
	"regent/pkg/requestcontext"
)

// Service defines the extraction operation the handler depends on.
type Service interface {
	Extract(ctx context.Context, description string) (service.Extracted, error)
}

// ExtractRequest carries the free-text system description.
type ExtractRequest struct {
	Description string `json:"description"`
}

type Handler struct {
	logger    *slog.Logger
	extractor Service
}

func New(extractor Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, extractor: extractor}
}

// Register registers the extraction route with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/profile/extract", h.handleExtract)
}

func (h *Handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[ExtractRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	extracted, err := h.extractor.Extract(ctx, req.Description)
	if err != nil {
		if !dErrors.Is(err, dErrors.CodeValidation) {
			h.logger.ErrorContext(ctx, "profile extraction failed",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, extracted)
}
