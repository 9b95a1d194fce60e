package db

import (
	"testing"

	gormModels "skyward-mro/shopfloor/internal/models/gorm"
)

func TestInitORMSQLite(t *testing.T) {
	orm, err := InitORM(":memory:")
	if err != nil {
		t.Fatalf("InitORM failed: %v", err)
	}
	if orm == nil {
		t.Fatal("InitORM returned nil handle")
	}
	if ORM != orm {
		t.Error("package-level ORM not set to the returned handle")
	}

	// migration ran: the snapshot tables answer queries
	var count int64
	if err := orm.Model(&gormModels.Part{}).Count(&count).Error; err != nil {
		t.Errorf("parts table not migrated: %v", err)
	}
	if err := orm.Model(&gormModels.Notification{}).Count(&count).Error; err != nil {
		t.Errorf("notifications table not migrated: %v", err)
	}
}
