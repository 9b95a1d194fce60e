package gorm

import (
	"skyward-mro/shopfloor/internal/constants"
)

// Technician persists the roster entry. Skills, badges and the stats
// block are stored as JSON text; nothing queries inside them. Seq
// preserves roster order, which is the auto-assignment tie-break.
type Technician struct {
	ID        string             `gorm:"column:id;primaryKey;type:varchar(100)"`
	Seq       int                `gorm:"column:seq;index"`
	Name      string             `gorm:"column:name;type:text"`
	Photo     string             `gorm:"column:photo;type:text"`
	Role      constants.ShopRole `gorm:"column:role;type:varchar(20)"`
	SkillsJSON string            `gorm:"column:skills_json;type:text"`
	StatsJSON  string            `gorm:"column:stats_json;type:text"`
	BadgesJSON string            `gorm:"column:badges_json;type:text"`
	JoinDate   string            `gorm:"column:join_date;type:varchar(20)"`
}

// TableName specifies the table name for GORM
func (Technician) TableName() string {
	return "technicians"
}

// ShopUser covers managers and inspectors, distinguished by role.
type ShopUser struct {
	ID    string             `gorm:"column:id;primaryKey;type:varchar(100)"`
	Name  string             `gorm:"column:name;type:text"`
	Photo string             `gorm:"column:photo;type:text"`
	Role  constants.ShopRole `gorm:"column:role;index;type:varchar(20)"`
}

// TableName specifies the table name for GORM
func (ShopUser) TableName() string {
	return "shop_users"
}
