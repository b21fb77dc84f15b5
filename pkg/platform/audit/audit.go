// Package audit captures structured compliance events emitted from domain
// logic. Events are transport-agnostic so sinks can fan out: the in-memory
// store backs tests and single-node deployments, the Kafka sink feeds a
// durable trail.
package audit

import "time"

// EventCategory classifies audit events by their primary purpose. Regulatory
// classifications have legal significance and long retention; operational
// events can be sampled.
type EventCategory string

const (
	CategoryCompliance EventCategory = "compliance"
	CategoryOperations EventCategory = "operations"
)

// Action names the audited operation.
type Action string

const (
	ActionClassificationPerformed Action = "classification_performed"
	ActionAnalysisSaved           Action = "analysis_saved"
	ActionAnalysisDeleted         Action = "analysis_deleted"
	ActionProfileExtracted        Action = "profile_extracted"
	ActionCatalogueReloaded       Action = "catalogue_reloaded"
)

// Event is one audit record. Keep it flat and JSON-friendly; the Kafka sink
// serializes it verbatim.
type Event struct {
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	Action    Action        `json:"action"`
	// Subject is the authenticated caller when one exists, empty for
	// anonymous classification calls.
	Subject   string `json:"subject,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	UseCaseID string `json:"use_case_id,omitempty"`
	RiskTier  string `json:"risk_tier,omitempty"`
	Reason    string `json:"reason,omitempty"`
}
