package gorm

import (
	"time"

	"skyward-mro/shopfloor/internal/constants"
)

// Part is the persisted form of a tracked part. History and notes live
// in their own tables so raw reporting queries can hit them directly.
type Part struct {
	ID           string `gorm:"column:id;primaryKey;type:uuid"`
	Seq          int    `gorm:"column:seq;index"`
	PartNumber   string `gorm:"column:part_number;index;type:varchar(100)"`
	WorkOrder    string `gorm:"column:work_order;index;type:varchar(100)"`
	Aircraft     string `gorm:"column:aircraft;type:text"`
	Customer     string `gorm:"column:customer;type:text"`
	Location     string `gorm:"column:location;type:text"`
	Description  string `gorm:"column:description;type:text"`
	SerialNumber string `gorm:"column:serial_number;type:varchar(100)"`
	Manufacturer string `gorm:"column:manufacturer;type:text"`
	PartType     string `gorm:"column:part_type;type:varchar(100)"`
	QRCode       string `gorm:"column:qr_code;type:text"`
	RFIDUid      string `gorm:"column:rfid_uid;type:varchar(100)"`

	Status   constants.PartStatus `gorm:"column:status;index;type:varchar(20)"`
	Priority constants.Priority   `gorm:"column:priority;index;type:varchar(20)"`

	AssignedTechnician string `gorm:"column:assigned_technician;index;type:varchar(100)"`
	UpdatedBy          string `gorm:"column:updated_by;type:varchar(100)"`

	EnteredShop     time.Time  `gorm:"column:entered_shop"`
	StatusChangedAt time.Time  `gorm:"column:status_changed_at"`
	LastUpdated     time.Time  `gorm:"column:last_updated"`
	RepairStarted   *time.Time `gorm:"column:repair_started"`
	RepairCompleted *time.Time `gorm:"column:repair_completed"`
	ShippedDate     *time.Time `gorm:"column:shipped_date"`
	ScrappedDate    *time.Time `gorm:"column:scrapped_date"`

	EstimatedHours float64  `gorm:"column:estimated_hours"`
	ActualHours    *float64 `gorm:"column:actual_hours"`

	History []PartHistory `gorm:"foreignKey:PartID;references:ID"`
	Notes   []PartNote    `gorm:"foreignKey:PartID;references:ID"`
}

// TableName specifies the table name for GORM
func (Part) TableName() string {
	return "parts"
}

// PartHistory is one immutable audit row. Seq preserves insertion
// order inside a part so an export round-trips byte for byte.
type PartHistory struct {
	ID             string               `gorm:"column:id;primaryKey;type:uuid"`
	PartID         string               `gorm:"column:part_id;index;type:uuid"`
	Seq            int                  `gorm:"column:seq;index"`
	Timestamp      time.Time            `gorm:"column:timestamp"`
	Action         string               `gorm:"column:action;type:text"`
	FromStatus     constants.PartStatus `gorm:"column:from_status;type:varchar(20)"`
	ToStatus       constants.PartStatus `gorm:"column:to_status;type:varchar(20)"`
	TechnicianID   string               `gorm:"column:technician_id;type:varchar(100)"`
	TechnicianName string               `gorm:"column:technician_name;type:text"`
	Note           string               `gorm:"column:note;type:text"`
	EstimatedHours *float64             `gorm:"column:estimated_hours"`
	ActualHours    *float64             `gorm:"column:actual_hours"`
}

// TableName specifies the table name for GORM
func (PartHistory) TableName() string {
	return "part_history"
}

// PartNote is a persisted technician note.
type PartNote struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement"`
	PartID     string    `gorm:"column:part_id;index;type:uuid"`
	Seq        int       `gorm:"column:seq"`
	Timestamp  time.Time `gorm:"column:timestamp"`
	AuthorID   string    `gorm:"column:author_id;type:varchar(100)"`
	AuthorName string    `gorm:"column:author_name;type:text"`
	Text       string    `gorm:"column:text;type:text"`
}

// TableName specifies the table name for GORM
func (PartNote) TableName() string {
	return "part_notes"
}
