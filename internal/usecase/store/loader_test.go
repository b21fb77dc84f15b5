package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regent/internal/classification/models"
)

func writeRegistry(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "usecases.yaml"), []byte(content), 0o600))
	return dir
}

func TestLoadRegistry(t *testing.T) {
	dir := writeRegistry(t, `
use_cases:
  - id: customer_chatbot
    name: Customer chatbot
    description: Conversational assistant for customer support.
    base_risk: limited_risk
  - id: fraud_detection
    name: Fraud detection
    base_risk: context_dependent
    context_decision:
      factors:
        - field: denies_service_access
          tier: high_risk
          rationale: can deny access to financial services
      default_tier: minimal_risk
`)

	useCases, err := LoadRegistry(dir)
	require.NoError(t, err)
	require.Len(t, useCases, 2)

	assert.Equal(t, models.TierLimitedRisk, useCases[0].BaseRisk)
	assert.Nil(t, useCases[0].Decision)

	fraud := useCases[1]
	require.NotNil(t, fraud.Decision)
	assert.Equal(t, models.TierMinimalRisk, fraud.Decision.DefaultTier)
	require.Len(t, fraud.Decision.Factors, 1)
	assert.Equal(t, "denies_service_access", fraud.Decision.Factors[0].Field)
	assert.Equal(t, models.TierHighRisk, fraud.Decision.Factors[0].Tier)
}

func TestLoadRegistryRejectsDuplicateIDs(t *testing.T) {
	dir := writeRegistry(t, `
use_cases:
  - id: dup
    name: First
    base_risk: minimal_risk
  - id: dup
    name: Second
    base_risk: minimal_risk
`)
	_, err := LoadRegistry(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate id "dup"`)
}

func TestLoadRegistryRejectsUnknownField(t *testing.T) {
	dir := writeRegistry(t, `
use_cases:
  - id: x
    name: X
    base_risk: context_dependent
    context_decision:
      factors:
        - field: not_a_real_field
          tier: high_risk
          rationale: typo
      default_tier: minimal_risk
`)
	_, err := LoadRegistry(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown field "not_a_real_field"`)
}

func TestLoadRegistryRejectsUnknownTier(t *testing.T) {
	dir := writeRegistry(t, `
use_cases:
  - id: x
    name: X
    base_risk: mega_risk
`)
	_, err := LoadRegistry(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown base risk "mega_risk"`)
}

func TestHydrateFromDir(t *testing.T) {
	dir := writeRegistry(t, `
use_cases:
  - id: spam_filter
    name: Spam filter
    base_risk: minimal_risk
`)

	s := NewInMemory()
	require.NoError(t, HydrateFromDir(s, dir))

	uc, err := s.Get(t.Context(), "spam_filter")
	require.NoError(t, err)
	assert.Equal(t, models.TierMinimalRisk, uc.BaseRisk)
}
