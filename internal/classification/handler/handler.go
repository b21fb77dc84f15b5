// Package handler exposes the classification endpoints.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"regent/internal/classification/engine"
	"regent/internal/classification/models"
	"regent/internal/classification/service"
	dErrors "regent/pkg/domain-errors"
	"regent/pkg/platform/httputil"
	"regent/pkg/requestcontext"
)

// Service defines the classification operations the handler depends on.
type Service interface {
	Classify(ctx context.Context, input engine.Input) (service.Result, error)
	UseCases(ctx context.Context) ([]models.UseCase, error)
	UseCase(ctx context.Context, id string) (models.UseCase, error)
}

// ClassifyRequest is the wire shape of a classification call. Profile holds
// the boolean flag bag; unknown flag names produce warnings, not failures.
type ClassifyRequest struct {
	Role            string         `json:"role" validate:"required"`
	InstitutionType string         `json:"institution_type,omitempty"`
	UseCaseID       string         `json:"use_case_id,omitempty"`
	Profile         map[string]any `json:"profile,omitempty"`
}

// Handler handles classification endpoints.
type Handler struct {
	logger   *slog.Logger
	svc      Service
	validate *validator.Validate
}

// New creates a classification Handler.
func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:   logger,
		svc:      svc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Register registers the classification routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/classify", h.handleClassify)
	r.Get("/v1/usecases", h.handleListUseCases)
	r.Get("/v1/usecases/{id}", h.handleGetUseCase)
}

func (h *Handler) handleClassify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[ClassifyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.logger.WarnContext(ctx, "invalid classify request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.NewValidation("invalid request", validationFields(err)))
		return
	}

	result, err := h.svc.Classify(ctx, engine.Input{
		Role:            req.Role,
		InstitutionType: req.InstitutionType,
		UseCaseID:       req.UseCaseID,
		Flags:           req.Profile,
	})
	if err != nil {
		if dErrors.Is(err, dErrors.CodeValidation) {
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "classification failed",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "classification failed"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleListUseCases(w http.ResponseWriter, r *http.Request) {
	useCases, err := h.svc.UseCases(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "use case listing failed",
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "use case listing failed"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"use_cases": useCases})
}

func (h *Handler) handleGetUseCase(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	uc, err := h.svc.UseCase(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, uc)
}

// validationFields flattens validator errors into field-keyed messages using
// the JSON field names.
func validationFields(err error) map[string]string {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["request"] = err.Error()
		return fields
	}
	for _, fe := range verrs {
		switch fe.Field() {
		case "Role":
			fields["role"] = "role is required"
		default:
			fields[fe.Field()] = fe.Tag()
		}
	}
	return fields
}
