// Package models holds the saved-analysis entity.
package models

import (
	"time"

	"regent/internal/classification/service"
)

// Analysis is a classification result a caller chose to keep. Analyses are
// scoped to their owner: every read and delete is keyed by the authenticated
// subject, so one caller can never see another's saved work.
type Analysis struct {
	ID        string         `json:"id"`
	Subject   string         `json:"-"`
	Name      string         `json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	Result    service.Result `json:"result"`
}
