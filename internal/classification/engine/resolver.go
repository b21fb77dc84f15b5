package engine

import (
	"fmt"

	"regent/internal/classification/models"
)

// Resolution is the outcome of context-dependent tier resolution.
type Resolution struct {
	Tier  models.RiskTier
	Basis string
	// Unresolved is true when the use case is context-dependent but has no
	// registered context decision; the caller needs more input and the tier
	// stays context_dependent.
	Unresolved bool
}

// ResolveContext evaluates a context-dependent use case against the profile.
//
// The factor list is consulted in its fixed order; the first factor whose
// named profile field is true determines the tier and later factors are
// never read. When nothing matches, the decision's default tier applies.
// The function is total: every input resolves to a tier, including all-false
// profiles and use cases with an empty factor list.
func ResolveContext(uc models.UseCase, p models.SystemProfile) Resolution {
	if uc.Decision == nil {
		return Resolution{
			Tier:       models.TierContextDependent,
			Basis:      fmt.Sprintf("use case %q is context-dependent but has no registered context decision; additional input required", uc.ID),
			Unresolved: true,
		}
	}

	for _, factor := range uc.Decision.Factors {
		if models.FieldValue(p, factor.Field) {
			return Resolution{
				Tier:  factor.Tier,
				Basis: fmt.Sprintf("use case %q: %s", uc.ID, factor.Rationale),
			}
		}
	}

	return Resolution{
		Tier:  uc.Decision.DefaultTier,
		Basis: fmt.Sprintf("use case %q: default applied, no qualifying context present", uc.ID),
	}
}
