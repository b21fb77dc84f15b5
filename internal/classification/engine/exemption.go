package engine

import (
	"regent/internal/classification/models"
)

// exemption is one Article 6(3) carve-out that downgrades an otherwise
// high-risk Annex III match.
type exemption struct {
	name    string
	flagged func(models.ExemptionFlags) bool
}

var exemptions = []exemption{
	{"narrow procedural task", func(f models.ExemptionFlags) bool { return f.NarrowProceduralTask }},
	{"improves a previously completed human activity", func(f models.ExemptionFlags) bool { return f.ImprovesCompletedHumanActivity }},
	{"deviation and pattern detection only", func(f models.ExemptionFlags) bool { return f.PatternDetectionOnly }},
	{"preparatory task only", func(f models.ExemptionFlags) bool { return f.PreparatoryTaskOnly }},
}

// EvaluateExemptions returns the names of every applicable carve-out, in the
// fixed list order. Callers apply them only when the matcher found a hit and
// the gate did not fire; exemptions never soften a prohibition.
func EvaluateExemptions(p models.SystemProfile) []string {
	var applied []string
	for _, e := range exemptions {
		if e.flagged(p.Exemptions) {
			applied = append(applied, e.name)
		}
	}
	return applied
}
