package models

// UseCase is a reference entity describing one catalogued application of AI.
// BaseRisk is fixed per use case; when it is TierContextDependent the
// attached Decision drives the final tier.
type UseCase struct {
	ID          string   `json:"id"       yaml:"id"`
	Name        string   `json:"name"     yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	BaseRisk    RiskTier `json:"base_risk" yaml:"base_risk"`
	// Decision is nil for fixed-risk use cases, and may be nil even for a
	// context-dependent one that has not been registered yet; the resolver
	// then reports the use case as unresolved.
	Decision *ContextDecision `json:"context_decision,omitempty" yaml:"context_decision,omitempty"`
}

// ContextDecision is an ordered first-match-wins rule list. Order is
// significant and fixed per use case: the first factor whose profile field is
// true determines the tier and later factors are never consulted.
type ContextDecision struct {
	Factors []ContextFactor `json:"factors" yaml:"factors"`
	// DefaultTier applies when no factor matches, including all-false
	// profiles. Resolution is total: there is always an answer.
	DefaultTier RiskTier `json:"default_tier" yaml:"default_tier"`
}

// ContextFactor tests one named boolean profile field.
type ContextFactor struct {
	// Field is a wire name registered in the boolean field table.
	Field string `json:"field" yaml:"field"`
	// Tier is the resulting tier when the field is true.
	Tier RiskTier `json:"tier" yaml:"tier"`
	// Rationale is the human-readable justification quoted in the
	// classification basis when this factor fires.
	Rationale string `json:"rationale" yaml:"rationale"`
}
