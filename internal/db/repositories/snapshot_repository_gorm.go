package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"skyward-mro/shopfloor/internal/constants"
	"skyward-mro/shopfloor/internal/models/entities"
	gormModels "skyward-mro/shopfloor/internal/models/gorm"
	"skyward-mro/shopfloor/internal/registry"
)

type SnapshotRepositoryGORM struct {
	db *gorm.DB
}

// NewSnapshotRepositoryGORM creates a new GORM-based snapshot repository
func NewSnapshotRepositoryGORM(db *gorm.DB) *SnapshotRepositoryGORM {
	return &SnapshotRepositoryGORM{db: db}
}

// Save replaces the persisted snapshot wholesale inside one transaction.
// The store holds exactly one snapshot; persistence is a crash-recovery
// convenience, not an event log.
func (r *SnapshotRepositoryGORM) Save(ctx context.Context, snap registry.Snapshot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&gormModels.PartHistory{}, &gormModels.PartNote{}, &gormModels.Part{},
			&gormModels.Technician{}, &gormModels.ShopUser{}, &gormModels.Notification{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear snapshot table: %w", err)
			}
		}

		for partSeq, p := range snap.Parts {
			if err := tx.Create(partToRow(partSeq, p)).Error; err != nil {
				return fmt.Errorf("failed to persist part %s: %w", p.ID, err)
			}
			for seq, h := range p.History {
				if err := tx.Create(historyToRow(p.ID, seq, h)).Error; err != nil {
					return fmt.Errorf("failed to persist history for %s: %w", p.ID, err)
				}
			}
			for seq, n := range p.Notes {
				if err := tx.Create(noteToRow(p.ID, seq, n)).Error; err != nil {
					return fmt.Errorf("failed to persist notes for %s: %w", p.ID, err)
				}
			}
		}

		for seq, t := range snap.Technicians {
			row, err := technicianToRow(seq, t)
			if err != nil {
				return err
			}
			if err := tx.Create(row).Error; err != nil {
				return fmt.Errorf("failed to persist technician %s: %w", t.ID, err)
			}
		}

		for _, m := range snap.Managers {
			row := &gormModels.ShopUser{ID: m.ID, Name: m.Name, Photo: m.Photo, Role: constants.RoleManager}
			if err := tx.Create(row).Error; err != nil {
				return fmt.Errorf("failed to persist manager %s: %w", m.ID, err)
			}
		}
		for _, i := range snap.Inspectors {
			row := &gormModels.ShopUser{ID: i.ID, Name: i.Name, Photo: i.Photo, Role: constants.RoleInspector}
			if err := tx.Create(row).Error; err != nil {
				return fmt.Errorf("failed to persist inspector %s: %w", i.ID, err)
			}
		}

		for seq, n := range snap.Notifications {
			if err := tx.Create(notificationToRow(seq, n)).Error; err != nil {
				return fmt.Errorf("failed to persist notification %s: %w", n.ID, err)
			}
		}
		return nil
	})
}

// Load reads the persisted snapshot back, restoring every collection's
// order from the seq columns. Part insertion order and technician
// roster order are semantic (notification feed position, auto-assign
// tie-break), so they round-trip like history and notes do.
func (r *SnapshotRepositoryGORM) Load(ctx context.Context) (registry.Snapshot, error) {
	var snap registry.Snapshot

	var partRows []gormModels.Part
	if err := r.db.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Preload("Notes", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Order("seq ASC").
		Find(&partRows).Error; err != nil {
		return snap, fmt.Errorf("failed to load parts: %w", err)
	}
	for _, row := range partRows {
		snap.Parts = append(snap.Parts, partFromRow(row))
	}

	var techRows []gormModels.Technician
	if err := r.db.WithContext(ctx).Order("seq ASC").Find(&techRows).Error; err != nil {
		return snap, fmt.Errorf("failed to load technicians: %w", err)
	}
	for _, row := range techRows {
		t, err := technicianFromRow(row)
		if err != nil {
			return snap, err
		}
		snap.Technicians = append(snap.Technicians, t)
	}

	var userRows []gormModels.ShopUser
	if err := r.db.WithContext(ctx).Find(&userRows).Error; err != nil {
		return snap, fmt.Errorf("failed to load shop users: %w", err)
	}
	for _, row := range userRows {
		switch row.Role {
		case constants.RoleManager:
			snap.Managers = append(snap.Managers, entities.Manager{ID: row.ID, Name: row.Name, Photo: row.Photo, Role: row.Role})
		case constants.RoleInspector:
			snap.Inspectors = append(snap.Inspectors, entities.Inspector{ID: row.ID, Name: row.Name, Photo: row.Photo, Role: row.Role})
		}
	}

	var noteRows []gormModels.Notification
	if err := r.db.WithContext(ctx).Order("seq ASC").Find(&noteRows).Error; err != nil {
		return snap, fmt.Errorf("failed to load notifications: %w", err)
	}
	for _, row := range noteRows {
		snap.Notifications = append(snap.Notifications, notificationFromRow(row))
	}

	return snap, nil
}

func partToRow(seq int, p entities.Part) *gormModels.Part {
	return &gormModels.Part{
		ID:                 p.ID,
		Seq:                seq,
		PartNumber:         p.PartNumber,
		WorkOrder:          p.WorkOrder,
		Aircraft:           p.Aircraft,
		Customer:           p.Customer,
		Location:           p.Location,
		Description:        p.Description,
		SerialNumber:       p.SerialNumber,
		Manufacturer:       p.Manufacturer,
		PartType:           p.PartType,
		QRCode:             p.QRCode,
		RFIDUid:            p.RFIDUid,
		Status:             p.Status,
		Priority:           p.Priority,
		AssignedTechnician: p.AssignedTechnician,
		UpdatedBy:          p.UpdatedBy,
		EnteredShop:        p.EnteredShop,
		StatusChangedAt:    p.StatusChangedAt,
		LastUpdated:        p.LastUpdated,
		RepairStarted:      p.RepairStarted,
		RepairCompleted:    p.RepairCompleted,
		ShippedDate:        p.ShippedDate,
		ScrappedDate:       p.ScrappedDate,
		EstimatedHours:     p.EstimatedHours,
		ActualHours:        p.ActualHours,
	}
}

func partFromRow(row gormModels.Part) entities.Part {
	p := entities.Part{
		ID:                 row.ID,
		PartNumber:         row.PartNumber,
		WorkOrder:          row.WorkOrder,
		Aircraft:           row.Aircraft,
		Customer:           row.Customer,
		Location:           row.Location,
		Description:        row.Description,
		SerialNumber:       row.SerialNumber,
		Manufacturer:       row.Manufacturer,
		PartType:           row.PartType,
		QRCode:             row.QRCode,
		RFIDUid:            row.RFIDUid,
		Status:             row.Status,
		Priority:           row.Priority,
		AssignedTechnician: row.AssignedTechnician,
		UpdatedBy:          row.UpdatedBy,
		EnteredShop:        row.EnteredShop,
		StatusChangedAt:    row.StatusChangedAt,
		LastUpdated:        row.LastUpdated,
		RepairStarted:      row.RepairStarted,
		RepairCompleted:    row.RepairCompleted,
		ShippedDate:        row.ShippedDate,
		ScrappedDate:       row.ScrappedDate,
		EstimatedHours:     row.EstimatedHours,
		ActualHours:        row.ActualHours,
	}

	sort.SliceStable(row.History, func(i, j int) bool { return row.History[i].Seq < row.History[j].Seq })
	for _, h := range row.History {
		p.History = append(p.History, entities.HistoryEntry{
			ID:             h.ID,
			Timestamp:      h.Timestamp,
			Action:         h.Action,
			FromStatus:     h.FromStatus,
			ToStatus:       h.ToStatus,
			TechnicianID:   h.TechnicianID,
			TechnicianName: h.TechnicianName,
			Note:           h.Note,
			EstimatedHours: h.EstimatedHours,
			ActualHours:    h.ActualHours,
		})
	}
	for _, n := range row.Notes {
		p.Notes = append(p.Notes, entities.PartNote{
			Timestamp:  n.Timestamp,
			AuthorID:   n.AuthorID,
			AuthorName: n.AuthorName,
			Text:       n.Text,
		})
	}
	return p
}

func historyToRow(partID string, seq int, h entities.HistoryEntry) *gormModels.PartHistory {
	return &gormModels.PartHistory{
		ID:             h.ID,
		PartID:         partID,
		Seq:            seq,
		Timestamp:      h.Timestamp,
		Action:         h.Action,
		FromStatus:     h.FromStatus,
		ToStatus:       h.ToStatus,
		TechnicianID:   h.TechnicianID,
		TechnicianName: h.TechnicianName,
		Note:           h.Note,
		EstimatedHours: h.EstimatedHours,
		ActualHours:    h.ActualHours,
	}
}

func noteToRow(partID string, seq int, n entities.PartNote) *gormModels.PartNote {
	return &gormModels.PartNote{
		PartID:     partID,
		Seq:        seq,
		Timestamp:  n.Timestamp,
		AuthorID:   n.AuthorID,
		AuthorName: n.AuthorName,
		Text:       n.Text,
	}
}

func technicianToRow(seq int, t entities.Technician) (*gormModels.Technician, error) {
	skills, err := json.Marshal(t.Skills)
	if err != nil {
		return nil, fmt.Errorf("failed to encode skills for %s: %w", t.ID, err)
	}
	stats, err := json.Marshal(t.Stats)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stats for %s: %w", t.ID, err)
	}
	badges, err := json.Marshal(t.Badges)
	if err != nil {
		return nil, fmt.Errorf("failed to encode badges for %s: %w", t.ID, err)
	}
	return &gormModels.Technician{
		ID:         t.ID,
		Seq:        seq,
		Name:       t.Name,
		Photo:      t.Photo,
		Role:       t.Role,
		SkillsJSON: string(skills),
		StatsJSON:  string(stats),
		BadgesJSON: string(badges),
		JoinDate:   t.JoinDate,
	}, nil
}

func technicianFromRow(row gormModels.Technician) (entities.Technician, error) {
	t := entities.Technician{
		ID:       row.ID,
		Name:     row.Name,
		Photo:    row.Photo,
		Role:     row.Role,
		JoinDate: row.JoinDate,
	}
	if row.SkillsJSON != "" {
		if err := json.Unmarshal([]byte(row.SkillsJSON), &t.Skills); err != nil {
			return t, fmt.Errorf("failed to decode skills for %s: %w", row.ID, err)
		}
	}
	if row.StatsJSON != "" {
		if err := json.Unmarshal([]byte(row.StatsJSON), &t.Stats); err != nil {
			return t, fmt.Errorf("failed to decode stats for %s: %w", row.ID, err)
		}
	}
	if row.BadgesJSON != "" {
		if err := json.Unmarshal([]byte(row.BadgesJSON), &t.Badges); err != nil {
			return t, fmt.Errorf("failed to decode badges for %s: %w", row.ID, err)
		}
	}
	return t, nil
}

func notificationToRow(seq int, n entities.Notification) *gormModels.Notification {
	return &gormModels.Notification{
		ID:           n.ID,
		Seq:          seq,
		Kind:         n.Kind,
		Title:        n.Title,
		Message:      n.Message,
		Timestamp:    n.Timestamp,
		Read:         n.Read,
		PartID:       n.PartID,
		TechnicianID: n.TechnicianID,
	}
}

func notificationFromRow(row gormModels.Notification) entities.Notification {
	return entities.Notification{
		ID:           row.ID,
		Kind:         row.Kind,
		Title:        row.Title,
		Message:      row.Message,
		Timestamp:    row.Timestamp,
		Read:         row.Read,
		PartID:       row.PartID,
		TechnicianID: row.TechnicianID,
	}
}
