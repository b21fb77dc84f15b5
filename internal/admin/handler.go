// Package admin exposes operator-only endpoints behind a shared admin token.
package admin

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"regent/internal/platform/middleware"
	dErrors "regent/pkg/domain-errors"
	"regent/pkg/platform/audit"
	"regent/pkg/platform/httputil"
	"regent/pkg/requestcontext"
)

// Reloader re-reads reference data from its source of truth.
type Reloader func(ctx context.Context) error

// AuditEmitter records compliance events. Implemented by audit.Publisher.
type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Handler struct {
	logger     *slog.Logger
	reload     Reloader
	auditor    AuditEmitter
	adminToken string
}

func New(reload Reloader, adminToken string, logger *slog.Logger, auditor AuditEmitter) *Handler {
	return &Handler{
		logger:     logger,
		reload:     reload,
		auditor:    auditor,
		adminToken: adminToken,
	}
}

// Register registers the admin routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdminToken(h.adminToken, h.logger))
		r.Post("/reference/reload", h.handleReload)
	})
}

func (h *Handler) handleReload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if err := h.reload(ctx); err != nil {
		h.logger.ErrorContext(ctx, "reference data reload failed",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "reference data reload failed"))
		return
	}

	if h.auditor != nil {
		if err := h.auditor.Emit(ctx, audit.Event{
			Category:  audit.CategoryOperations,
			Action:    audit.ActionCatalogueReloaded,
			RequestID: requestID,
		}); err != nil {
			h.logger.WarnContext(ctx, "audit emit failed", "error", err)
		}
	}

	h.logger.InfoContext(ctx, "reference data reloaded", "request_id", requestID)
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}
