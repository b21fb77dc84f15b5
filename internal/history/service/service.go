// Package service manages saved analyses for authenticated callers.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"regent/internal/history/models"
	dErrors "regent/pkg/domain-errors"
	"regent/pkg/platform/audit"
	"regent/pkg/platform/sentinel"
	"regent/pkg/requestcontext"
)

// Store persists analyses. Every operation is scoped by owner subject.
type Store interface {
	Save(ctx context.Context, a models.Analysis) error
	Get(ctx context.Context, subject, id string) (models.Analysis, error)
	List(ctx context.Context, subject string) ([]models.Analysis, error)
	Delete(ctx context.Context, subject, id string) error
}

// AuditEmitter records compliance events. Implemented by audit.Publisher.
type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	store   Store
	auditor AuditEmitter
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithAuditEmitter enables audit-trail emission.
func WithAuditEmitter(a AuditEmitter) Option {
	return func(s *Service) { s.auditor = a }
}

func NewService(store Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{store: store, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save stores an analysis under a fresh ID for the given subject.
func (s *Service) Save(ctx context.Context, a models.Analysis) (models.Analysis, error) {
	if a.Subject == "" {
		return models.Analysis{}, dErrors.New(dErrors.CodeUnauthorized, "no authenticated subject")
	}
	if a.Name == "" {
		return models.Analysis{}, dErrors.NewValidation("invalid request", map[string]string{"name": "name is required"})
	}
	a.ID = uuid.NewString()
	a.CreatedAt = requestcontext.Now(ctx)

	if err := s.store.Save(ctx, a); err != nil {
		return models.Analysis{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save analysis")
	}
	s.emit(ctx, audit.ActionAnalysisSaved, a)
	return a, nil
}

func (s *Service) Get(ctx context.Context, subject, id string) (models.Analysis, error) {
	a, err := s.store.Get(ctx, subject, id)
	if err != nil {
		return models.Analysis{}, notFoundOrInternal(err, id)
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, subject string) ([]models.Analysis, error) {
	analyses, err := s.store.List(ctx, subject)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list analyses")
	}
	return analyses, nil
}

func (s *Service) Delete(ctx context.Context, subject, id string) error {
	if err := s.store.Delete(ctx, subject, id); err != nil {
		return notFoundOrInternal(err, id)
	}
	s.emit(ctx, audit.ActionAnalysisDeleted, models.Analysis{ID: id, Subject: subject})
	return nil
}

func (s *Service) emit(ctx context.Context, action audit.Action, a models.Analysis) {
	if s.auditor == nil {
		return
	}
	err := s.auditor.Emit(ctx, audit.Event{
		Category:  audit.CategoryOperations,
		Action:    action,
		Subject:   a.Subject,
		RequestID: requestcontext.RequestID(ctx),
		Reason:    a.ID,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "error", err)
	}
}

func notFoundOrInternal(err error, id string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Newf(dErrors.CodeNotFound, "analysis %q not found", id)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "analysis store error")
}
