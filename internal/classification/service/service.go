// Package service orchestrates a classification call: profile normalization,
// tier computation, obligation retrieval across the regulation buckets, and
// timeline construction. The engine stays pure; all I/O happens here.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"regent/internal/classification/engine"
	"regent/internal/classification/metrics"
	"regent/internal/classification/models"
	"regent/internal/obligation"
	obstore "regent/internal/obligation/store"
	dErrors "regent/pkg/domain-errors"
	"regent/pkg/platform/audit"
	"regent/pkg/platform/sentinel"
	"regent/pkg/requestcontext"
)

// UseCaseRegistry serves the curated use-case catalogue.
type UseCaseRegistry interface {
	Get(ctx context.Context, id string) (models.UseCase, error)
	List(ctx context.Context) ([]models.UseCase, error)
}

// ObligationProvider serves pre-filtered obligation records per regulation
// bucket plus the regulation-wide milestones.
type ObligationProvider interface {
	Fetch(ctx context.Context, reg obligation.Regulation, q obstore.Query) ([]obligation.Record, error)
	Milestones(ctx context.Context) ([]obligation.Milestone, error)
}

// AuditEmitter records compliance events. Implemented by audit.Publisher.
type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Result is the complete outcome of one classification call. The bucket
// arrays sit at the top level of the JSON document, one per regulation.
type Result struct {
	RiskClassification  models.RiskTier      `json:"risk_classification"`
	ClassificationBasis string               `json:"classification_basis"`
	MatchedUseCase      string               `json:"matched_use_case,omitempty"`
	MatchedCategories   []engine.BucketMatch `json:"matched_categories,omitempty"`
	ExemptionsApplied   []string             `json:"exemptions_applied,omitempty"`
	Unresolved          bool                 `json:"unresolved,omitempty"`
	ObligationBuckets
	AllObligations   []obligation.Record        `json:"all_obligations"`
	TotalObligations int                        `json:"total_obligations"`
	Timeline         []obligation.TimelineEntry `json:"timeline"`
	Warnings         []string                   `json:"warnings,omitempty"`
}

// ObligationBuckets is the per-regulation view of the aggregate.
type ObligationBuckets struct {
	AIAct    []obligation.Record `json:"ai_act_obligations"`
	GDPR     []obligation.Record `json:"gdpr_obligations"`
	DORA     []obligation.Record `json:"dora_obligations"`
	GPAI     []obligation.Record `json:"gpai_obligations"`
	Sectoral []obligation.Record `json:"sectoral_obligations"`
}

// Service wires the pure engine to its data sources.
type Service struct {
	registry UseCaseRegistry
	provider ObligationProvider
	auditor  AuditEmitter
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithAuditEmitter enables audit-trail emission.
func WithAuditEmitter(a AuditEmitter) Option {
	return func(s *Service) { s.auditor = a }
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(registry UseCaseRegistry, provider ObligationProvider, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{registry: registry, provider: provider, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var tracer = otel.Tracer("regent/classification")

// Classify runs the full pipeline for one submitted system description.
//
// Reference-data retrieval degrades gracefully: a failing bucket yields a
// warning and an empty collection, never a failed call. Tier computation
// happens exactly once; everything downstream consumes its result.
func (s *Service) Classify(ctx context.Context, input engine.Input) (Result, error) {
	ctx, span := tracer.Start(ctx, "classification.Classify")
	defer span.End()
	start := time.Now()

	profile, warnings, err := engine.Normalize(input)
	if err != nil {
		return Result{}, err
	}

	useCase, ucWarning, err := s.resolveUseCase(ctx, input.UseCaseID)
	if err != nil {
		return Result{}, err
	}
	if ucWarning != "" {
		warnings = append(warnings, ucWarning)
	}
	var matchedUseCase string
	if useCase != nil && ucWarning == "" {
		matchedUseCase = useCase.ID
	}

	tier := engine.ComputeTier(profile, useCase)
	warnings = append(warnings, tier.Warnings...)
	span.SetAttributes(
		attribute.String("risk_tier", string(tier.Tier)),
		attribute.String("use_case_id", input.UseCaseID),
	)

	set, milestones, fetchWarnings := s.gatherObligations(ctx, profile, tier)
	warnings = append(warnings, fetchWarnings...)

	aggregated := obligation.Aggregate(set)
	flat := aggregated.Flat
	timeline := obligation.BuildTimeline(flat, milestones, requestcontext.Now(ctx))

	result := Result{
		RiskClassification:  tier.Tier,
		ClassificationBasis: tier.Basis,
		MatchedUseCase:      matchedUseCase,
		MatchedCategories:   tier.MatchedBuckets,
		ExemptionsApplied:   tier.ExemptionsApplied,
		Unresolved:          tier.Unresolved,
		ObligationBuckets: ObligationBuckets{
			AIAct:    orEmptyRecords(aggregated.Set.AIAct),
			GDPR:     orEmptyRecords(aggregated.Set.GDPR),
			DORA:     orEmptyRecords(aggregated.Set.DORA),
			GPAI:     orEmptyRecords(aggregated.Set.GPAI),
			Sectoral: orEmptyRecords(aggregated.Set.Sectoral),
		},
		AllObligations:   orEmptyRecords(flat),
		TotalObligations: aggregated.TotalCount,
		Timeline:         timeline,
		Warnings:         warnings,
	}

	s.metrics.IncrementClassification(string(tier.Tier))
	s.metrics.ObserveClassifyLatency(time.Since(start))
	s.emitAudit(ctx, input.UseCaseID, tier)

	s.logger.InfoContext(ctx, "classification completed",
		"request_id", requestcontext.RequestID(ctx),
		"risk_tier", tier.Tier,
		"use_case_id", input.UseCaseID,
		"total_obligations", aggregated.TotalCount,
		"warnings", len(warnings),
	)
	return result, nil
}

// resolveUseCase looks the identifier up in the registry. An unknown
// identifier is not fatal: classification proceeds with a synthetic
// context-dependent use case so the caller sees context_dependent plus a
// warning rather than a silent minimal_risk.
func (s *Service) resolveUseCase(ctx context.Context, id string) (*models.UseCase, string, error) {
	if id == "" {
		return nil, "", nil
	}
	uc, err := s.registry.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			unknown := models.UseCase{ID: id, BaseRisk: models.TierContextDependent}
			return &unknown, fmt.Sprintf("use case %q is not in the registry", id), nil
		}
		return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "use case lookup failed")
	}
	return &uc, "", nil
}

// gatherObligations fans out across the regulation buckets. A prohibited
// system gets no obligation retrieval at all; it cannot be placed on the
// market, so only the regulation-wide milestones remain relevant.
func (s *Service) gatherObligations(ctx context.Context, profile models.SystemProfile, tier engine.TierResult) (obligation.Set, []obligation.Milestone, []string) {
	var warnings []string

	milestones, err := s.provider.Milestones(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "milestone fetch failed", "error", err)
		warnings = append(warnings, "regulatory milestones unavailable")
		milestones = nil
	}

	if tier.Tier == models.TierProhibited {
		return obligation.Set{}, milestones, warnings
	}

	query := obstore.Query{
		RiskTier: string(tier.Tier),
		Flags:    models.ActiveFlags(profile),
	}

	regs := obligation.Regulations()
	buckets := make([][]obligation.Record, len(regs))
	failed := make([]bool, len(regs))

	g, gctx := errgroup.WithContext(ctx)
	for i, reg := range regs {
		g.Go(func() error {
			records, err := s.provider.Fetch(gctx, reg, query)
			if err != nil {
				s.logger.WarnContext(gctx, "obligation fetch failed", "bucket", reg, "error", err)
				s.metrics.IncrementBucketFailure(string(reg))
				failed[i] = true
				return nil
			}
			buckets[i] = records
			return nil
		})
	}
	_ = g.Wait()

	var set obligation.Set
	for i, reg := range regs {
		if failed[i] {
			warnings = append(warnings, fmt.Sprintf("reference data unavailable for bucket %s", reg))
			continue
		}
		set = set.WithBucket(reg, buckets[i])
	}
	return set, milestones, warnings
}

func (s *Service) emitAudit(ctx context.Context, useCaseID string, tier engine.TierResult) {
	if s.auditor == nil {
		return
	}
	err := s.auditor.Emit(ctx, audit.Event{
		Category:  audit.CategoryCompliance,
		Action:    audit.ActionClassificationPerformed,
		Subject:   requestcontext.Subject(ctx),
		RequestID: requestcontext.RequestID(ctx),
		UseCaseID: useCaseID,
		RiskTier:  string(tier.Tier),
		Reason:    tier.Basis,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "error", err)
	}
}

// UseCases lists the registry in catalogue order.
func (s *Service) UseCases(ctx context.Context) ([]models.UseCase, error) {
	return s.registry.List(ctx)
}

// UseCase returns one registry entry by ID.
func (s *Service) UseCase(ctx context.Context, id string) (models.UseCase, error) {
	uc, err := s.registry.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.UseCase{}, dErrors.Newf(dErrors.CodeNotFound, "use case %q not found", id)
		}
		return models.UseCase{}, dErrors.Wrap(err, dErrors.CodeInternal, "use case lookup failed")
	}
	return uc, nil
}

// orEmptyRecords keeps bucket arrays present (not null) in JSON output.
func orEmptyRecords(records []obligation.Record) []obligation.Record {
	if records == nil {
		return []obligation.Record{}
	}
	return records
}
