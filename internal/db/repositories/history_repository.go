package repositories

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"skyward-mro/shopfloor/internal/constants"
)

// HistoryRow is one audit line joined with its part number, shaped for
// the activity feed endpoints.
type HistoryRow struct {
	ID             string               `db:"id" json:"id"`
	PartID         string               `db:"part_id" json:"part_id"`
	PartNumber     string               `db:"part_number" json:"part_number"`
	Timestamp      time.Time            `db:"timestamp" json:"timestamp"`
	Action         string               `db:"action" json:"action"`
	FromStatus     constants.PartStatus `db:"from_status" json:"from_status,omitempty"`
	ToStatus       constants.PartStatus `db:"to_status" json:"to_status,omitempty"`
	TechnicianID   string               `db:"technician_id" json:"technician_id,omitempty"`
	TechnicianName string               `db:"technician_name" json:"technician_name,omitempty"`
}

type HistoryRepository struct {
	db *sqlx.DB
}

func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db}
}

// RecentActivity returns the newest audit rows across all parts.
func (r *HistoryRepository) RecentActivity(ctx context.Context, limit int) ([]HistoryRow, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []HistoryRow
	err := r.db.SelectContext(ctx, &rows, constants.GetRecentHistory, limit)
	return rows, err
}

// HistoryForPart returns a part's audit trail in insertion order.
func (r *HistoryRepository) HistoryForPart(ctx context.Context, partID string) ([]HistoryRow, error) {
	var rows []HistoryRow
	err := r.db.SelectContext(ctx, &rows, constants.GetHistoryForPart, partID)
	return rows, err
}

// TechnicianActivity returns the newest audit rows touched by one technician.
func (r *HistoryRepository) TechnicianActivity(ctx context.Context, technicianID string, limit int) ([]HistoryRow, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []HistoryRow
	err := r.db.SelectContext(ctx, &rows, constants.GetTechnicianActivity, technicianID, limit)
	return rows, err
}
