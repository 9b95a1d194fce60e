package gorm

import (
	"time"

	"skyward-mro/shopfloor/internal/constants"
)

// Notification persists one advisory. Seq preserves newest-first feed
// order across a snapshot round trip.
type Notification struct {
	ID           string                     `gorm:"column:id;primaryKey;type:uuid"`
	Seq          int                        `gorm:"column:seq;index"`
	Kind         constants.NotificationKind `gorm:"column:kind;type:varchar(20)"`
	Title        string                     `gorm:"column:title;type:text"`
	Message      string                     `gorm:"column:message;type:text"`
	Timestamp    time.Time                  `gorm:"column:timestamp"`
	Read         bool                       `gorm:"column:read"`
	PartID       string                     `gorm:"column:part_id;type:uuid"`
	TechnicianID string                     `gorm:"column:technician_id;type:varchar(100)"`
}

// TableName specifies the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}
