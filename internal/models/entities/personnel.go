package entities

import "skyward-mro/shopfloor/internal/constants"

// PeriodCounts tracks a per-day/week/month tally.
type PeriodCounts struct {
	Today int `json:"today"`
	Week  int `json:"week"`
	Month int `json:"month"`
}

// PeriodHours tracks hours worked per day/week/month.
type PeriodHours struct {
	Today float64 `json:"today"`
	Week  float64 `json:"week"`
	Month float64 `json:"month"`
}

// TechnicianStats is the mutable performance block owned by a technician.
type TechnicianStats struct {
	RepairedCount  PeriodCounts `json:"repaired_count"`
	AvgRepairTime  float64      `json:"avg_repair_time"`
	ScrapRate      float64      `json:"scrap_rate"`
	HoursWorked    PeriodHours  `json:"hours_worked"`
	Efficiency     float64      `json:"efficiency"`
	OnTimeDelivery float64      `json:"on_time_delivery"`
}

// TechnicianStatsPatch shallow-merges into TechnicianStats; nil fields
// leave the current value untouched.
type TechnicianStatsPatch struct {
	RepairedCount  *PeriodCounts `json:"repaired_count,omitempty"`
	AvgRepairTime  *float64      `json:"avg_repair_time,omitempty"`
	ScrapRate      *float64      `json:"scrap_rate,omitempty"`
	HoursWorked    *PeriodHours  `json:"hours_worked,omitempty"`
	Efficiency     *float64      `json:"efficiency,omitempty"`
	OnTimeDelivery *float64      `json:"on_time_delivery,omitempty"`
}

// Technician is a worker on the floor.
type Technician struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Photo    string             `json:"photo,omitempty"`
	Role     constants.ShopRole `json:"role"`
	Skills   []string           `json:"skills"`
	Stats    TechnicianStats    `json:"stats"`
	Badges   []string           `json:"badges"`
	JoinDate string             `json:"join_date,omitempty"`
}

// Clone returns a deep copy of the technician.
func (t *Technician) Clone() Technician {
	cp := *t
	cp.Skills = append([]string(nil), t.Skills...)
	cp.Badges = append([]string(nil), t.Badges...)
	return cp
}

// Manager is identity plus role only.
type Manager struct {
	ID    string             `json:"id"`
	Name  string             `json:"name"`
	Photo string             `json:"photo,omitempty"`
	Role  constants.ShopRole `json:"role"`
}

// Inspector is identity plus role only.
type Inspector struct {
	ID    string             `json:"id"`
	Name  string             `json:"name"`
	Photo string             `json:"photo,omitempty"`
	Role  constants.ShopRole `json:"role"`
}
