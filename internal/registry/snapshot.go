package registry

import (
	"fmt"
	"time"

	"skyward-mro/shopfloor/internal/models/entities"
)

// Snapshot is a complete, self-contained copy of registry state. Export
// followed by Import round-trips every history entry verbatim and in
// original order.
type Snapshot struct {
	ExportedAt    time.Time               `json:"exported_at"`
	Parts         []entities.Part         `json:"parts"`
	Technicians   []entities.Technician   `json:"technicians"`
	Managers      []entities.Manager      `json:"managers"`
	Inspectors    []entities.Inspector    `json:"inspectors"`
	Notifications []entities.Notification `json:"notifications"`
}

// AddTechnician appends a technician to the roster. Roster order is the
// auto-assignment tie-break, so seeding order matters.
func (r *Registry) AddTechnician(t entities.Technician) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := t.Clone()
	r.technicians = append(r.technicians, &cp)
	r.techIdx[cp.ID] = &cp
}

func (r *Registry) AddManager(m entities.Manager) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.managers = append(r.managers, m)
}

func (r *Registry) AddInspector(i entities.Inspector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inspectors = append(r.inspectors, i)
}

// LoadPart inserts a fully formed part (seed data, snapshot restore).
// It does not stamp timestamps or history; the part is taken verbatim.
func (r *Registry) LoadPart(p entities.Part) error {
	if !p.Status.Valid() {
		return fmt.Errorf("part %s: invalid status %q", p.ID, p.Status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cp := p.Clone()
	if _, exists := r.partIdx[cp.ID]; exists {
		return fmt.Errorf("part %s already loaded", cp.ID)
	}
	r.parts = append(r.parts, &cp)
	r.partIdx[cp.ID] = &cp
	return nil
}

// Export returns a deep copy of the full state.
func (r *Registry) Export() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Snapshot{
		ExportedAt:    r.now(),
		Parts:         make([]entities.Part, 0, len(r.parts)),
		Technicians:   make([]entities.Technician, 0, len(r.technicians)),
		Managers:      append([]entities.Manager(nil), r.managers...),
		Inspectors:    append([]entities.Inspector(nil), r.inspectors...),
		Notifications: append([]entities.Notification(nil), r.notifications...),
	}
	for _, p := range r.parts {
		s.Parts = append(s.Parts, p.Clone())
	}
	for _, t := range r.technicians {
		s.Technicians = append(s.Technicians, t.Clone())
	}
	return s
}

// Import replaces the registry state wholesale with the snapshot.
func (r *Registry) Import(s Snapshot) error {
	for i := range s.Parts {
		if !s.Parts[i].Status.Valid() {
			return fmt.Errorf("part %s: invalid status %q", s.Parts[i].ID, s.Parts[i].Status)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.parts = nil
	r.partIdx = make(map[string]*entities.Part, len(s.Parts))
	for i := range s.Parts {
		cp := s.Parts[i].Clone()
		r.parts = append(r.parts, &cp)
		r.partIdx[cp.ID] = &cp
	}

	r.technicians = nil
	r.techIdx = make(map[string]*entities.Technician, len(s.Technicians))
	for i := range s.Technicians {
		cp := s.Technicians[i].Clone()
		r.technicians = append(r.technicians, &cp)
		r.techIdx[cp.ID] = &cp
	}

	r.managers = append([]entities.Manager(nil), s.Managers...)
	r.inspectors = append([]entities.Inspector(nil), s.Inspectors...)
	r.notifications = append([]entities.Notification(nil), s.Notifications...)
	return nil
}
