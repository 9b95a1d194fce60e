package constants

import (
	"database/sql/driver"
	"fmt"
)

// ShopRole identifies which dashboard a user belongs to
type ShopRole string

const (
	RoleTechnician ShopRole = "technician"
	RoleManager    ShopRole = "manager"
	RoleInspector  ShopRole = "inspector"
)

func (r ShopRole) String() string { return string(r) }

// Valid reports whether the role is one of the three known dashboards.
func (r ShopRole) Valid() bool {
	switch r {
	case RoleTechnician, RoleManager, RoleInspector:
		return true
	}
	return false
}

// Scan implements the sql.Scanner interface
func (r *ShopRole) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = ShopRole(v)
	case []byte:
		*r = ShopRole(v)
	default:
		return fmt.Errorf("ShopRole: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r ShopRole) Value() (driver.Value, error) { return string(r), nil }
