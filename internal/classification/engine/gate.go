package engine

import (
	"regent/internal/classification/models"
)

// prohibitedPractice is one Article 5 absolute prohibition.
type prohibitedPractice struct {
	name    string
	article string
	flagged func(models.ProhibitedFlags) bool
}

// prohibitedPractices is the fixed gate predicate list. An unset flag reads
// false and never triggers: the questions are exhaustively presented
// upstream, so absence means "unknown", the permissive default.
var prohibitedPractices = []prohibitedPractice{
	{"subliminal manipulation", "Art. 5(1)(a)", func(f models.ProhibitedFlags) bool { return f.SubliminalManipulation }},
	{"exploitation of vulnerabilities", "Art. 5(1)(b)", func(f models.ProhibitedFlags) bool { return f.ExploitsVulnerabilities }},
	{"public social scoring", "Art. 5(1)(c)", func(f models.ProhibitedFlags) bool { return f.SocialScoring }},
	{"real-time remote biometric identification in public spaces", "Art. 5(1)(h)", func(f models.ProhibitedFlags) bool { return f.RealTimeBiometricID }},
	{"emotion recognition in workplace or education", "Art. 5(1)(f)", func(f models.ProhibitedFlags) bool { return f.EmotionRecognitionWork }},
	{"biometric categorisation of sensitive attributes", "Art. 5(1)(g)", func(f models.ProhibitedFlags) bool { return f.BiometricCategorization }},
	{"untargeted scraping of facial images", "Art. 5(1)(e)", func(f models.ProhibitedFlags) bool { return f.FacialImageScraping }},
}

// GateResult reports which absolute prohibitions fired.
type GateResult struct {
	// Triggered holds "name (article)" strings for every practice that
	// fired, in the fixed predicate order.
	Triggered []string
}

// Prohibited reports whether the gate fired at all.
func (g GateResult) Prohibited() bool {
	return len(g.Triggered) > 0
}

// EvaluateGate checks the prohibited-practice predicates. It runs first,
// unconditionally, and its result is never overridden downstream: when any
// predicate holds, classification short-circuits to TierProhibited and all
// obligation buckets stay empty.
func EvaluateGate(p models.SystemProfile) GateResult {
	var result GateResult
	for _, practice := range prohibitedPractices {
		if practice.flagged(p.Prohibited) {
			result.Triggered = append(result.Triggered, practice.name+" ("+practice.article+")")
		}
	}
	return result
}
