package entities

import (
	"time"

	"skyward-mro/shopfloor/internal/constants"
)

// Notification is an advisory record produced by the rule evaluator or
// by explicit user bulk-action feedback. It never auto-expires.
type Notification struct {
	ID           string                     `json:"id"`
	Kind         constants.NotificationKind `json:"kind"`
	Title        string                     `json:"title"`
	Message      string                     `json:"message"`
	Timestamp    time.Time                  `json:"timestamp"`
	Read         bool                       `json:"read"`
	PartID       string                     `json:"part_id,omitempty"`
	TechnicianID string                     `json:"technician_id,omitempty"`

	// RuleKey identifies the (rule, subject) pair for cool-down dedup.
	RuleKey string `json:"-"`
}
