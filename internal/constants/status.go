package constants

import (
	"database/sql/driver"
	"fmt"
)

// PartStatus mirrors the five-stage repair workflow
type PartStatus string

const (
	StatusUnrepaired PartStatus = "unrepaired"
	StatusInRepair   PartStatus = "in-repair"
	StatusRepaired   PartStatus = "repaired"
	StatusScrap      PartStatus = "scrap"
	StatusShipped    PartStatus = "shipped"
)

func (s PartStatus) String() string { return string(s) }

// Valid reports whether the value is one of the five workflow statuses
func (s PartStatus) Valid() bool {
	switch s {
	case StatusUnrepaired, StatusInRepair, StatusRepaired, StatusScrap, StatusShipped:
		return true
	}
	return false
}

// Terminal reports whether no transition leads out of the status
func (s PartStatus) Terminal() bool {
	return s == StatusScrap || s == StatusShipped
}

// Scan implements the sql.Scanner interface
func (s *PartStatus) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = PartStatus(v)
	case []byte:
		*s = PartStatus(v)
	default:
		return fmt.Errorf("PartStatus: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (s PartStatus) Value() (driver.Value, error) { return string(s), nil }

// Priority is the ordered urgency classification of a part
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) String() string { return string(p) }

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Rank returns the sortable urgency rank (critical=4 .. low=1, unknown=0)
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Scan implements the sql.Scanner interface
func (p *Priority) Scan(src interface{}) error {
	if src == nil {
		*p = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*p = Priority(v)
	case []byte:
		*p = Priority(v)
	default:
		return fmt.Errorf("Priority: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (p Priority) Value() (driver.Value, error) { return string(p), nil }
