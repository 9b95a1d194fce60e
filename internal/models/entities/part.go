package entities

import (
	"time"

	"skyward-mro/shopfloor/internal/constants"
)

// HistoryEntry is one immutable record of a state change on a part.
// Created once at the moment of the mutation, never edited.
type HistoryEntry struct {
	ID             string               `json:"id"`
	Timestamp      time.Time            `json:"timestamp"`
	Action         string               `json:"action"`
	FromStatus     constants.PartStatus `json:"from_status,omitempty"`
	ToStatus       constants.PartStatus `json:"to_status,omitempty"`
	TechnicianID   string               `json:"technician_id,omitempty"`
	TechnicianName string               `json:"technician_name,omitempty"`
	Note           string               `json:"note,omitempty"`
	EstimatedHours *float64             `json:"estimated_hours,omitempty"`
	ActualHours    *float64             `json:"actual_hours,omitempty"`
}

// PartNote is a free-text technician note with structured metadata,
// replacing the legacy "<timestamp> - <name>: <text>" string encoding.
type PartNote struct {
	Timestamp  time.Time `json:"timestamp"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
}

// Part is a physical repairable unit moving through the shop.
type Part struct {
	ID           string `json:"id"`
	PartNumber   string `json:"part_number"`
	WorkOrder    string `json:"work_order"`
	Aircraft     string `json:"aircraft"`
	Customer     string `json:"customer"`
	Location     string `json:"location"`
	Description  string `json:"description,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	PartType     string `json:"part_type,omitempty"`
	QRCode       string `json:"qr_code,omitempty"`
	RFIDUid      string `json:"rfid_uid,omitempty"`

	Status   constants.PartStatus `json:"status"`
	Priority constants.Priority   `json:"priority"`

	AssignedTechnician string `json:"assigned_technician,omitempty"`
	UpdatedBy          string `json:"updated_by,omitempty"`

	EnteredShop     time.Time  `json:"entered_shop"`
	StatusChangedAt time.Time  `json:"status_changed_at"`
	LastUpdated     time.Time  `json:"last_updated"`
	RepairStarted   *time.Time `json:"repair_started,omitempty"`
	RepairCompleted *time.Time `json:"repair_completed,omitempty"`
	ShippedDate     *time.Time `json:"shipped_date,omitempty"`
	ScrappedDate    *time.Time `json:"scrapped_date,omitempty"`

	EstimatedHours float64  `json:"estimated_hours"`
	ActualHours    *float64 `json:"actual_hours,omitempty"`

	History []HistoryEntry `json:"history"`
	Notes   []PartNote     `json:"notes"`
}

// DaysInStatus is derived at read time from the last status change, so a
// write to one part cannot age any other part.
func (p *Part) DaysInStatus(now time.Time) int {
	anchor := p.StatusChangedAt
	if anchor.IsZero() {
		anchor = p.EnteredShop
	}
	days := int(now.Sub(anchor).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// IsOverdue reports whether the part has sat unrepaired past the threshold.
func (p *Part) IsOverdue(now time.Time) bool {
	return p.Status == constants.StatusUnrepaired &&
		p.DaysInStatus(now) > constants.OverdueAfterDays
}

// Clone returns a deep copy so registry snapshots cannot alias internal state.
func (p *Part) Clone() Part {
	cp := *p
	cp.History = append([]HistoryEntry(nil), p.History...)
	cp.Notes = append([]PartNote(nil), p.Notes...)
	cp.RepairStarted = cloneTime(p.RepairStarted)
	cp.RepairCompleted = cloneTime(p.RepairCompleted)
	cp.ShippedDate = cloneTime(p.ShippedDate)
	cp.ScrappedDate = cloneTime(p.ScrappedDate)
	cp.ActualHours = cloneFloat(p.ActualHours)
	return cp
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
