// Package store provides the obligation reference-data catalogue behind the
// classification service: an in-memory implementation hydrated from YAML and
// a Postgres twin for deployments that manage the catalogue centrally.
package store

import (
	"regent/internal/obligation"
)

// Entry is one catalogue row: an obligation record plus the applicability
// conditions the reference-data provider filters on. Conditions live in the
// catalogue, not in the engine; the engine only consumes the filtered
// buckets.
type Entry struct {
	obligation.Record `yaml:",inline"`

	// Tiers restricts the entry to specific resolved risk tiers. Empty
	// means the entry applies at any tier.
	Tiers []string `yaml:"tiers,omitempty"`
	// Requires lists trigger flags that must all be active for the entry to
	// apply (e.g. uses_gpai_model, financial_entity).
	Requires []string `yaml:"requires,omitempty"`
}

// Query describes one retrieval: the resolved tier plus the active trigger
// flags derived from the profile.
type Query struct {
	RiskTier string
	Flags    map[string]bool
}

// Matches applies the entry's conditions to a query.
func (e Entry) Matches(q Query) bool {
	if len(e.Tiers) > 0 && !contains(e.Tiers, q.RiskTier) {
		return false
	}
	for _, flag := range e.Requires {
		if !q.Flags[flag] {
			return false
		}
	}
	return true
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func filter(entries []Entry, q Query) []obligation.Record {
	var out []obligation.Record
	for _, e := range entries {
		if e.Matches(q) {
			out = append(out, e.Record)
		}
	}
	return out
}
