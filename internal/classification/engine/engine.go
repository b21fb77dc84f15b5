// Package engine implements the deterministic risk-classification rules:
// prohibited-practice gate, Annex III category matcher, statutory exemptions,
// and the context-dependent resolver. Every function here is pure; the
// surrounding service supplies data and consumes results.
package engine

import (
	"fmt"
	"strings"

	"regent/internal/classification/models"
)

// TierResult is the outcome of tier computation for one profile.
type TierResult struct {
	Tier  models.RiskTier
	Basis string
	// MatchedBuckets lists the Annex III buckets that hit, if any.
	MatchedBuckets []BucketMatch
	// ExemptionsApplied lists the carve-outs that downgraded the tier.
	ExemptionsApplied []string
	// Unresolved signals a context-dependent use case without a registered
	// context decision.
	Unresolved bool
	Warnings   []string
}

// ComputeTier assigns exactly one risk tier to the profile.
//
// Precedence, evaluated once and never recomputed downstream:
//  1. Prohibited-practice gate. Any hit ends classification; downstream
//     obligation buckets stay empty.
//  2. Annex III matcher, softened by Article 6(3) exemptions.
//  3. The selected use case's base risk, with context-dependent cases
//     resolved through their ordered factor list.
//  4. Minimal risk when nothing above applies.
//
// useCase is nil when the caller selected none or the identifier was
// unknown; the caller is responsible for any unknown-identifier warning.
func ComputeTier(profile models.SystemProfile, useCase *models.UseCase) TierResult {
	if gate := EvaluateGate(profile); gate.Prohibited() {
		return TierResult{
			Tier:  models.TierProhibited,
			Basis: "prohibited practice: " + strings.Join(gate.Triggered, "; "),
		}
	}

	if matches := MatchCategories(profile); len(matches) > 0 {
		basis := highRiskBasis(matches)
		if applied := EvaluateExemptions(profile); len(applied) > 0 {
			return TierResult{
				Tier:              models.TierExemptFromHighRisk,
				Basis:             basis + "; exempt under Art. 6(3): " + strings.Join(applied, "; "),
				MatchedBuckets:    matches,
				ExemptionsApplied: applied,
			}
		}
		return TierResult{
			Tier:           models.TierHighRisk,
			Basis:          basis,
			MatchedBuckets: matches,
		}
	}

	if useCase != nil {
		return tierFromUseCase(*useCase, profile)
	}

	return TierResult{
		Tier:  models.TierMinimalRisk,
		Basis: "no prohibited practice and no Annex III category matched",
	}
}

func tierFromUseCase(uc models.UseCase, profile models.SystemProfile) TierResult {
	if uc.BaseRisk != models.TierContextDependent {
		return TierResult{
			Tier:  uc.BaseRisk,
			Basis: fmt.Sprintf("use case %q carries fixed base risk %s", uc.ID, uc.BaseRisk),
		}
	}

	res := ResolveContext(uc, profile)
	result := TierResult{
		Tier:       res.Tier,
		Basis:      res.Basis,
		Unresolved: res.Unresolved,
	}
	if res.Unresolved {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("use case %q has no registered context decision; classification is unresolved", uc.ID))
	}
	return result
}

func highRiskBasis(matches []BucketMatch) string {
	parts := make([]string, len(matches))
	for i, m := range matches {
		parts[i] = fmt.Sprintf("%s (%s)", m.Name, m.Ref)
	}
	return "high-risk category matched: " + strings.Join(parts, "; ")
}
