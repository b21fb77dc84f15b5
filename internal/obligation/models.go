// Package obligation holds the reference-data model for compliance duties and
// the pure transformations over them: bucket aggregation, priority sorting,
// and deadline timeline construction. Nothing in this package performs I/O.
package obligation

import "time"

// Regulation identifies the source bucket of an obligation record.
type Regulation string

const (
	RegulationAIAct    Regulation = "ai_act"
	RegulationGDPR     Regulation = "gdpr"
	RegulationDORA     Regulation = "dora"
	RegulationGPAI     Regulation = "gpai"
	RegulationSectoral Regulation = "sectoral"
)

// IsValid checks if the regulation is one of the supported enum values.
func (r Regulation) IsValid() bool {
	switch r {
	case RegulationAIAct, RegulationGDPR, RegulationDORA, RegulationGPAI, RegulationSectoral:
		return true
	}
	return false
}

// Regulations lists the buckets in their fixed reporting order.
func Regulations() []Regulation {
	return []Regulation{RegulationAIAct, RegulationGDPR, RegulationDORA, RegulationGPAI, RegulationSectoral}
}

// Priority ranks how urgently an obligation must be addressed.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Rank maps priorities onto the fixed total order used by the sorter:
// critical(0) < high(1) < medium(2) < low(3) < unspecified(4).
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Record is one compliance duty from the reference catalogue. Records are
// read-only reference data: the engine copies slices of them but never
// mutates individual records.
//
// IDs are unique within their regulation bucket only; the aggregator relies
// on bucket-scoped uniqueness and performs no cross-bucket collision handling.
type Record struct {
	ID       string     `json:"id"                yaml:"id"`
	Name     string     `json:"name"              yaml:"name"`
	Summary  string     `json:"summary"           yaml:"summary"`
	Source   Regulation `json:"source_regulation" yaml:"source_regulation"`
	Articles []string   `json:"source_articles"   yaml:"source_articles"`
	Priority Priority   `json:"priority"          yaml:"priority"`
	// Deadline is nil for obligations without a fixed compliance date.
	Deadline *time.Time `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	// AppliesTo lists the value-chain roles the record is shown to. It
	// constrains presentation only and never removes a record from the
	// aggregate; an empty list means all roles.
	AppliesTo []string `json:"applies_to,omitempty" yaml:"applies_to,omitempty"`
	Category  string   `json:"category,omitempty"   yaml:"category,omitempty"`
}

// AppliesToRole reports whether the record should be surfaced to a role.
func (r Record) AppliesToRole(role string) bool {
	if len(r.AppliesTo) == 0 {
		return true
	}
	for _, a := range r.AppliesTo {
		if a == role {
			return true
		}
	}
	return false
}

// Set groups the five per-regulation collections as retrieved for one
// classification call.
type Set struct {
	AIAct    []Record
	GDPR     []Record
	DORA     []Record
	GPAI     []Record
	Sectoral []Record
}

// Bucket returns the collection for one regulation.
func (s Set) Bucket(reg Regulation) []Record {
	switch reg {
	case RegulationAIAct:
		return s.AIAct
	case RegulationGDPR:
		return s.GDPR
	case RegulationDORA:
		return s.DORA
	case RegulationGPAI:
		return s.GPAI
	case RegulationSectoral:
		return s.Sectoral
	default:
		return nil
	}
}

// WithBucket returns a copy of the set with one bucket replaced.
func (s Set) WithBucket(reg Regulation, records []Record) Set {
	switch reg {
	case RegulationAIAct:
		s.AIAct = records
	case RegulationGDPR:
		s.GDPR = records
	case RegulationDORA:
		s.DORA = records
	case RegulationGPAI:
		s.GPAI = records
	case RegulationSectoral:
		s.Sectoral = records
	}
	return s
}

// Milestone is a regulation-wide effective date independent of any specific
// use case. Milestones always join the timeline regardless of the resolved
// tier's obligation set.
type Milestone struct {
	Date   time.Time `json:"date"   yaml:"date"`
	Event  string    `json:"event"  yaml:"event"`
	Impact string    `json:"impact,omitempty" yaml:"impact,omitempty"`
}
