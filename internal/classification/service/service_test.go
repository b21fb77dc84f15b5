package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regent/internal/classification/engine"
	"regent/internal/classification/models"
	"regent/internal/obligation"
	obstore "regent/internal/obligation/store"
	ucstore "regent/internal/usecase/store"
	dErrors "regent/pkg/domain-errors"
	"regent/pkg/platform/audit"
	"regent/pkg/requestcontext"
)

var testNow = time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

func testContext() context.Context {
	return requestcontext.WithTime(context.Background(), testNow)
}

func seedObligations() *obstore.InMemory {
	deadline := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	s := obstore.NewInMemory()
	s.Replace(map[obligation.Regulation][]obstore.Entry{
		obligation.RegulationAIAct: {
			{Record: obligation.Record{ID: "ai-hr-1", Name: "Risk management system", Source: obligation.RegulationAIAct,
				Priority: obligation.PriorityCritical, Deadline: &deadline}, Tiers: []string{"high_risk"}},
			{Record: obligation.Record{ID: "ai-any-1", Name: "AI literacy", Source: obligation.RegulationAIAct,
				Priority: obligation.PriorityLow}},
		},
		obligation.RegulationGDPR: {
			{Record: obligation.Record{ID: "gdpr-1", Name: "Lawful basis for processing", Source: obligation.RegulationGDPR,
				Priority: obligation.PriorityHigh}, Requires: []string{"processes_personal_data"}},
		},
		obligation.RegulationDORA: {
			{Record: obligation.Record{ID: "dora-1", Name: "ICT risk management", Source: obligation.RegulationDORA,
				Priority: obligation.PriorityHigh}, Requires: []string{"financial_entity"}},
		},
		obligation.RegulationGPAI: {
			{Record: obligation.Record{ID: "gpai-1", Name: "Model documentation", Source: obligation.RegulationGPAI,
				Priority: obligation.PriorityMedium}, Requires: []string{"uses_gpai_model"}},
		},
	}, []obligation.Milestone{
		{Date: time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC), Event: "prohibitions apply"},
		{Date: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC), Event: "high-risk obligations apply"},
	})
	return s
}

func seedUseCases() *ucstore.InMemory {
	s := ucstore.NewInMemory()
	s.Replace([]models.UseCase{
		{ID: "customer_chatbot", Name: "Customer chatbot", BaseRisk: models.TierLimitedRisk},
		{ID: "fraud_detection", Name: "Fraud detection", BaseRisk: models.TierContextDependent,
			Decision: &models.ContextDecision{
				Factors: []models.ContextFactor{
					{Field: "denies_service_access", Tier: models.TierHighRisk, Rationale: "can deny access to financial services"},
				},
				DefaultTier: models.TierMinimalRisk,
			}},
	})
	return s
}

func newTestService(t *testing.T, opts ...Option) (*Service, *audit.MemorySink) {
	t.Helper()
	sink := audit.NewMemorySink()
	opts = append(opts, WithAuditEmitter(audit.NewPublisher(sink)))
	svc := NewService(seedUseCases(), seedObligations(), slog.Default(), opts...)
	return svc, sink
}

func TestClassifyHighRiskAggregatesBuckets(t *testing.T) {
	svc, sink := newTestService(t)

	result, err := svc.Classify(testContext(), engine.Input{
		Role:            "provider",
		InstitutionType: "bank",
		Flags: map[string]any{
			"credit_scoring":          true,
			"processes_personal_data": true,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.TierHighRisk, result.RiskClassification)
	assert.Contains(t, result.ClassificationBasis, "Annex III(5)")

	require.Len(t, result.AIAct, 2)
	require.Len(t, result.GDPR, 1)
	require.Len(t, result.DORA, 1, "bank profile activates the financial_entity condition")
	assert.Empty(t, result.GPAI)
	assert.Equal(t, 4, result.TotalObligations)

	require.NotEmpty(t, result.AllObligations)
	assert.Equal(t, "ai-hr-1", result.AllObligations[0].ID, "critical priority sorts first")

	var events []string
	for _, entry := range result.Timeline {
		events = append(events, entry.Event)
	}
	assert.Contains(t, events, "high-risk obligations apply")
	assert.Contains(t, events, "Risk management system")

	auditEvents := sink.Events()
	require.Len(t, auditEvents, 1)
	assert.Equal(t, audit.ActionClassificationPerformed, auditEvents[0].Action)
	assert.Equal(t, "high_risk", auditEvents[0].RiskTier)
}

func TestClassifyProhibitedSkipsObligations(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Classify(testContext(), engine.Input{
		Role:  "provider",
		Flags: map[string]any{"social_scoring": true},
	})
	require.NoError(t, err)

	assert.Equal(t, models.TierProhibited, result.RiskClassification)
	assert.Empty(t, result.AIAct)
	assert.Empty(t, result.AllObligations)
	assert.Zero(t, result.TotalObligations)

	// Regulation-wide milestones remain visible even for prohibited systems.
	require.Len(t, result.Timeline, 2)
	assert.Equal(t, "prohibitions apply", result.Timeline[0].Event)
	assert.Equal(t, obligation.UrgencyOverdue, result.Timeline[0].Urgency)
}

func TestClassifyContextDependentUseCase(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Classify(testContext(), engine.Input{
		Role:      "deployer",
		UseCaseID: "fraud_detection",
		Flags:     map[string]any{"denies_service_access": true},
	})
	require.NoError(t, err)

	assert.Equal(t, models.TierHighRisk, result.RiskClassification)
	assert.Equal(t, "fraud_detection", result.MatchedUseCase)
	assert.Contains(t, result.ClassificationBasis, "can deny access to financial services")
}

func TestClassifyUnknownUseCaseNeverSilentlyMinimal(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Classify(testContext(), engine.Input{
		Role:      "provider",
		UseCaseID: "teleportation",
	})
	require.NoError(t, err)

	assert.Equal(t, models.TierContextDependent, result.RiskClassification)
	assert.True(t, result.Unresolved)
	assert.Empty(t, result.MatchedUseCase, "an unregistered identifier is not a match")
	assert.Contains(t, result.Warnings, `use case "teleportation" is not in the registry`)
}

func TestClassifyInvalidRoleFails(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Classify(testContext(), engine.Input{Role: "overlord"})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

// failingProvider fails one bucket and delegates the rest.
type failingProvider struct {
	inner  *obstore.InMemory
	broken obligation.Regulation
}

func (p *failingProvider) Fetch(ctx context.Context, reg obligation.Regulation, q obstore.Query) ([]obligation.Record, error) {
	if reg == p.broken {
		return nil, errors.New("connection refused")
	}
	return p.inner.Fetch(ctx, reg, q)
}

func (p *failingProvider) Milestones(ctx context.Context) ([]obligation.Milestone, error) {
	return p.inner.Milestones(ctx)
}

func TestClassifyDegradesGracefullyOnBucketFailure(t *testing.T) {
	provider := &failingProvider{inner: seedObligations(), broken: obligation.RegulationGDPR}
	svc := NewService(seedUseCases(), provider, slog.Default())

	result, err := svc.Classify(testContext(), engine.Input{
		Role:            "provider",
		InstitutionType: "bank",
		Flags: map[string]any{
			"credit_scoring":          true,
			"processes_personal_data": true,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.TierHighRisk, result.RiskClassification)
	assert.Empty(t, result.GDPR)
	assert.Len(t, result.AIAct, 2, "healthy buckets are unaffected")
	assert.Contains(t, result.Warnings, "reference data unavailable for bucket gdpr")
}

func TestUseCaseLookup(t *testing.T) {
	svc, _ := newTestService(t)

	uc, err := svc.UseCase(testContext(), "customer_chatbot")
	require.NoError(t, err)
	assert.Equal(t, models.TierLimitedRisk, uc.BaseRisk)

	_, err = svc.UseCase(testContext(), "nope")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	all, err := svc.UseCases(testContext())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
