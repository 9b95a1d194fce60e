// Package registry holds the canonical collections of parts, personnel
// and notifications. It is the only component permitted to mutate them;
// every mutation appends an audit trail entry. The registry is
// constructed once at process start and passed by reference to anything
// that needs it.
package registry

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"skyward-mro/shopfloor/internal/constants"
	"skyward-mro/shopfloor/internal/logging"
	"skyward-mro/shopfloor/internal/models/entities"
)

var (
	ErrPartNotFound         = errors.New(constants.MsgPartNotFound)
	ErrTechnicianNotFound   = errors.New(constants.MsgTechnicianNotFound)
	ErrNotificationNotFound = errors.New("notification not found")
)

// Registry is the single source of truth for shop state. A RWMutex makes
// every operation atomic from the caller's perspective; there are no
// partial mutations visible to readers.
type Registry struct {
	mu  sync.RWMutex
	now func() time.Time

	qrBaseURL string

	parts   []*entities.Part
	partIdx map[string]*entities.Part

	technicians []*entities.Technician
	techIdx     map[string]*entities.Technician

	managers   []entities.Manager
	inspectors []entities.Inspector

	// newest first
	notifications []entities.Notification
}

// Option customizes registry construction.
type Option func(*Registry)

// WithQRBaseURL overrides the base URL fabricated into part QR payloads.
func WithQRBaseURL(base string) Option {
	return func(r *Registry) { r.qrBaseURL = base }
}

// WithClock overrides the registry clock.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func New(opts ...Option) *Registry {
	r := &Registry{
		now:       time.Now,
		qrBaseURL: "https://shopfloor.local/parts",
		partIdx:   make(map[string]*entities.Part),
		techIdx:   make(map[string]*entities.Technician),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ---------- reads ----------

// Parts returns a deep copy of all parts in insertion order.
func (r *Registry) Parts() []entities.Part {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.Part, 0, len(r.parts))
	for _, p := range r.parts {
		out = append(out, p.Clone())
	}
	return out
}

// Part returns a deep copy of one part.
func (r *Registry) Part(id string) (entities.Part, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.partIdx[id]
	if !ok {
		return entities.Part{}, ErrPartNotFound
	}
	return p.Clone(), nil
}

// Technicians returns a deep copy of all technicians in list order. List
// order is meaningful: it is the tie-break for auto-assignment.
func (r *Registry) Technicians() []entities.Technician {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.Technician, 0, len(r.technicians))
	for _, t := range r.technicians {
		out = append(out, t.Clone())
	}
	return out
}

// Technician returns a deep copy of one technician.
func (r *Registry) Technician(id string) (entities.Technician, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.techIdx[id]
	if !ok {
		return entities.Technician{}, ErrTechnicianNotFound
	}
	return t.Clone(), nil
}

func (r *Registry) Managers() []entities.Manager {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entities.Manager(nil), r.managers...)
}

func (r *Registry) Inspectors() []entities.Inspector {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entities.Inspector(nil), r.inspectors...)
}

// Notifications returns the advisory list, newest first.
func (r *Registry) Notifications() []entities.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entities.Notification(nil), r.notifications...)
}

// ---------- intake ----------

// IntakeInput is the registration-form payload for a new part.
type IntakeInput struct {
	PartNumber     string
	WorkOrder      string
	Aircraft       string
	Customer       string
	Location       string
	Description    string
	SerialNumber   string
	Manufacturer   string
	PartType       string
	RFIDUid        string
	Priority       constants.Priority
	EstimatedHours float64
	RegisteredBy   string
}

// RegisterPart creates a part in unrepaired status, stamps EnteredShop,
// fabricates the QR payload from the part id and appends the first
// history entry.
func (r *Registry) RegisterPart(in IntakeInput) (entities.Part, error) {
	if !in.Priority.Valid() {
		in.Priority = constants.PriorityMedium
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	id := uuid.NewString()

	p := &entities.Part{
		ID:              id,
		PartNumber:      in.PartNumber,
		WorkOrder:       in.WorkOrder,
		Aircraft:        in.Aircraft,
		Customer:        in.Customer,
		Location:        in.Location,
		Description:     in.Description,
		SerialNumber:    in.SerialNumber,
		Manufacturer:    in.Manufacturer,
		PartType:        in.PartType,
		RFIDUid:         in.RFIDUid,
		QRCode:          fmt.Sprintf("%s/%s", r.qrBaseURL, id),
		Status:          constants.StatusUnrepaired,
		Priority:        in.Priority,
		UpdatedBy:       in.RegisteredBy,
		EnteredShop:     now,
		StatusChangedAt: now,
		LastUpdated:     now,
		EstimatedHours:  in.EstimatedHours,
		History:         []entities.HistoryEntry{},
		Notes:           []entities.PartNote{},
	}

	est := in.EstimatedHours
	p.History = append(p.History, entities.HistoryEntry{
		ID:             uuid.NewString(),
		Timestamp:      now,
		Action:         "Part registered",
		ToStatus:       constants.StatusUnrepaired,
		EstimatedHours: &est,
	})

	r.parts = append(r.parts, p)
	r.partIdx[id] = p

	logging.Info("Part registered",
		"part_id", id,
		"part_number", in.PartNumber,
		"priority", in.Priority.String(),
	)
	return p.Clone(), nil
}

// ---------- descriptive updates ----------

// PartPatch carries optional descriptive field updates. Status is
// deliberately absent: status only moves through workflow transitions.
type PartPatch struct {
	Aircraft       *string
	Customer       *string
	Location       *string
	Description    *string
	SerialNumber   *string
	Manufacturer   *string
	PartType       *string
	RFIDUid        *string
	Priority       *constants.Priority
	EstimatedHours *float64
	UpdatedBy      *string
}

// UpdatePart merges the patch into the part and stamps LastUpdated.
func (r *Registry) UpdatePart(id string, patch PartPatch) (entities.Part, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.partIdx[id]
	if !ok {
		return entities.Part{}, ErrPartNotFound
	}

	if patch.Aircraft != nil {
		p.Aircraft = *patch.Aircraft
	}
	if patch.Customer != nil {
		p.Customer = *patch.Customer
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.SerialNumber != nil {
		p.SerialNumber = *patch.SerialNumber
	}
	if patch.Manufacturer != nil {
		p.Manufacturer = *patch.Manufacturer
	}
	if patch.PartType != nil {
		p.PartType = *patch.PartType
	}
	if patch.RFIDUid != nil {
		p.RFIDUid = *patch.RFIDUid
	}
	if patch.Priority != nil && patch.Priority.Valid() {
		p.Priority = *patch.Priority
	}
	if patch.EstimatedHours != nil {
		p.EstimatedHours = *patch.EstimatedHours
	}
	if patch.UpdatedBy != nil {
		p.UpdatedBy = *patch.UpdatedBy
	}

	p.LastUpdated = r.now()
	return p.Clone(), nil
}

// ---------- notes ----------

// AddPartNote appends a structured note and a matching history entry.
// Empty text is a no-op, mirroring the UI guard.
func (r *Registry) AddPartNote(id, text, authorID string) (entities.Part, error) {
	if text == "" {
		return r.Part(id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.partIdx[id]
	if !ok {
		return entities.Part{}, ErrPartNotFound
	}

	authorName := ""
	if t, ok := r.techIdx[authorID]; ok {
		authorName = t.Name
	}

	now := r.now()
	p.Notes = append(p.Notes, entities.PartNote{
		Timestamp:  now,
		AuthorID:   authorID,
		AuthorName: authorName,
		Text:       text,
	})
	p.History = append(p.History, entities.HistoryEntry{
		ID:             uuid.NewString(),
		Timestamp:      now,
		Action:         "Note added",
		TechnicianID:   authorID,
		TechnicianName: authorName,
		Note:           text,
	})
	p.LastUpdated = now

	return p.Clone(), nil
}

// ---------- technicians ----------

// UpdateTechnicianStats shallow-merges the patch into the stats block.
func (r *Registry) UpdateTechnicianStats(id string, patch entities.TechnicianStatsPatch) (entities.Technician, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.techIdx[id]
	if !ok {
		return entities.Technician{}, ErrTechnicianNotFound
	}

	if patch.RepairedCount != nil {
		t.Stats.RepairedCount = *patch.RepairedCount
	}
	if patch.AvgRepairTime != nil {
		t.Stats.AvgRepairTime = *patch.AvgRepairTime
	}
	if patch.ScrapRate != nil {
		t.Stats.ScrapRate = *patch.ScrapRate
	}
	if patch.HoursWorked != nil {
		t.Stats.HoursWorked = *patch.HoursWorked
	}
	if patch.Efficiency != nil {
		t.Stats.Efficiency = *patch.Efficiency
	}
	if patch.OnTimeDelivery != nil {
		t.Stats.OnTimeDelivery = *patch.OnTimeDelivery
	}

	return t.Clone(), nil
}

// AddTechnicianBadge appends a badge unless an identical name exists.
func (r *Registry) AddTechnicianBadge(id, badge string) (entities.Technician, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.techIdx[id]
	if !ok {
		return entities.Technician{}, ErrTechnicianNotFound
	}

	for _, b := range t.Badges {
		if b == badge {
			return t.Clone(), nil
		}
	}
	t.Badges = append(t.Badges, badge)
	return t.Clone(), nil
}

// ---------- notifications ----------

// AddNotification prepends the advisory (newest first) and assigns an id
// if the caller did not.
func (r *Registry) AddNotification(n entities.Notification) entities.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = r.now()
	}
	r.notifications = append([]entities.Notification{n}, r.notifications...)
	return n
}

func (r *Registry) MarkNotificationRead(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notifications {
		if r.notifications[i].ID == id {
			r.notifications[i].Read = true
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (r *Registry) ClearNotifications() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = nil
}
