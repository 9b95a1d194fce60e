package registry

import (
	"fmt"

	"github.com/google/uuid"

	"skyward-mro/shopfloor/internal/constants"
	"skyward-mro/shopfloor/internal/logging"
	"skyward-mro/shopfloor/internal/models/entities"
	"skyward-mro/shopfloor/internal/workflow"
)

// SkippedPart records why one id in a bulk operation was not touched.
type SkippedPart struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BulkResult reports the outcome of a bulk operation.
type BulkResult struct {
	Updated []string      `json:"updated"`
	Skipped []SkippedPart `json:"skipped,omitempty"`
}

// StartRepair moves an unrepaired part into repair under the given
// technician. Assignment and start happen as one transition.
func (r *Registry) StartRepair(id, technicianID string) (entities.Part, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.startRepairLocked(id, technicianID)
}

func (r *Registry) startRepairLocked(id, technicianID string) (entities.Part, error) {
	p, ok := r.partIdx[id]
	if !ok {
		return entities.Part{}, ErrPartNotFound
	}
	tech, ok := r.techIdx[technicianID]
	if !ok {
		return entities.Part{}, ErrTechnicianNotFound
	}

	from := p.Status
	p.AssignedTechnician = technicianID
	if err := workflow.Apply(p, workflow.EventStartRepair, r.now()); err != nil {
		return entities.Part{}, err
	}
	p.UpdatedBy = tech.Name

	r.appendHistoryLocked(p, "Repair started", from, p.Status, technicianID, tech.Name, nil)
	return p.Clone(), nil
}

// CompleteRepair finishes a repair. Actual hours are required; they feed
// efficiency and on-time metrics downstream.
func (r *Registry) CompleteRepair(id string, actualHours float64) (entities.Part, error) {
	if actualHours <= 0 {
		return entities.Part{}, fmt.Errorf("%s", constants.MsgMissingActualHours)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.partIdx[id]
	if !ok {
		return entities.Part{}, ErrPartNotFound
	}

	from := p.Status
	if err := workflow.Apply(p, workflow.EventCompleteRepair, r.now()); err != nil {
		return entities.Part{}, err
	}
	p.ActualHours = &actualHours

	techID := p.AssignedTechnician
	techName := ""
	if t, ok := r.techIdx[techID]; ok {
		techName = t.Name
	}
	entry := r.appendHistoryLocked(p, "Repair completed", from, p.Status, techID, techName, nil)
	entry.ActualHours = &actualHours
	est := p.EstimatedHours
	entry.EstimatedHours = &est

	return p.Clone(), nil
}

// ScrapPart scraps a part from either active state.
func (r *Registry) ScrapPart(id string) (entities.Part, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.partIdx[id]
	if !ok {
		return entities.Part{}, ErrPartNotFound
	}

	from := p.Status
	if err := workflow.Apply(p, workflow.EventScrap, r.now()); err != nil {
		return entities.Part{}, err
	}
	r.appendHistoryLocked(p, "Part scrapped", from, p.Status, p.AssignedTechnician, "", nil)
	return p.Clone(), nil
}

// ShipPart ships a repaired part.
func (r *Registry) ShipPart(id string) (entities.Part, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.partIdx[id]
	if !ok {
		return entities.Part{}, ErrPartNotFound
	}

	from := p.Status
	if err := workflow.Apply(p, workflow.EventShip, r.now()); err != nil {
		return entities.Part{}, err
	}
	r.appendHistoryLocked(p, "Part shipped", from, p.Status, p.AssignedTechnician, "", nil)
	return p.Clone(), nil
}

// BulkAssignParts sets the technician back-reference on each part and
// records a history entry. Assignment alone does not start repair and
// does not change status. Unknown ids are skipped.
func (r *Registry) BulkAssignParts(ids []string, technicianID string) (BulkResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tech, ok := r.techIdx[technicianID]
	if !ok {
		return BulkResult{}, ErrTechnicianNotFound
	}

	var res BulkResult
	now := r.now()
	for _, id := range ids {
		p, ok := r.partIdx[id]
		if !ok {
			res.Skipped = append(res.Skipped, SkippedPart{ID: id, Reason: constants.MsgPartNotFound})
			continue
		}
		p.AssignedTechnician = technicianID
		p.UpdatedBy = tech.Name
		p.LastUpdated = now
		r.appendHistoryLocked(p, "Assigned to technician", "", p.Status, technicianID, tech.Name, nil)
		res.Updated = append(res.Updated, id)
	}
	return res, nil
}

// BulkUpdateStatus transitions each part to the target status, deriving
// the event (and timestamp field) from the transition actually observed
// on that part. Illegal transitions and unknown ids are skipped.
func (r *Registry) BulkUpdateStatus(ids []string, status constants.PartStatus) (BulkResult, error) {
	if !status.Valid() {
		return BulkResult{}, fmt.Errorf("invalid status %q", status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var res BulkResult
	for _, id := range ids {
		p, ok := r.partIdx[id]
		if !ok {
			res.Skipped = append(res.Skipped, SkippedPart{ID: id, Reason: constants.MsgPartNotFound})
			continue
		}

		ev, err := workflow.EventFor(p.Status, status)
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedPart{ID: id, Reason: err.Error()})
			logging.Warn("Bulk status update skipped part",
				"part_id", id, "from", p.Status.String(), "to", status.String())
			continue
		}

		from := p.Status
		if err := workflow.Apply(p, ev, r.now()); err != nil {
			res.Skipped = append(res.Skipped, SkippedPart{ID: id, Reason: err.Error()})
			continue
		}

		techName := ""
		if t, ok := r.techIdx[p.AssignedTechnician]; ok {
			techName = t.Name
		}
		r.appendHistoryLocked(p, fmt.Sprintf("Status changed to %s", status), from, status, p.AssignedTechnician, techName, nil)
		res.Updated = append(res.Updated, id)
	}
	return res, nil
}

// AutoAssign applies one planned assignment: assign and start in a
// single atomic step, with a dedicated history action.
func (r *Registry) AutoAssign(partID, technicianID string) (entities.Part, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.startRepairLocked(partID, technicianID)
	if err != nil {
		return entities.Part{}, err
	}
	// rewrite the action label on the entry startRepairLocked appended
	stored := r.partIdx[partID]
	stored.History[len(stored.History)-1].Action = "Auto-assigned, repair started"
	p.History[len(p.History)-1].Action = "Auto-assigned, repair started"
	return p, nil
}

// appendHistoryLocked appends an entry and returns a pointer to the
// stored copy so callers can fill optional fields. Caller holds the lock.
func (r *Registry) appendHistoryLocked(p *entities.Part, action string, from, to constants.PartStatus, techID, techName string, note *string) *entities.HistoryEntry {
	entry := entities.HistoryEntry{
		ID:             uuid.NewString(),
		Timestamp:      r.now(),
		Action:         action,
		FromStatus:     from,
		ToStatus:       to,
		TechnicianID:   techID,
		TechnicianName: techName,
	}
	if note != nil {
		entry.Note = *note
	}
	p.History = append(p.History, entry)
	return &p.History[len(p.History)-1]
}
