package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	gormModels "skyward-mro/shopfloor/internal/models/gorm"
)

var ORM *gorm.DB

// InitORM opens the snapshot store. Postgres DSNs get the postgres
// dialector; anything else (a file path or :memory:) is treated as
// SQLite so a single-box deployment needs no database server.
func InitORM(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.Contains(dsn, "host=") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to snapshot store: %w", err)
	}

	if err := db.AutoMigrate(
		&gormModels.Part{},
		&gormModels.PartHistory{},
		&gormModels.PartNote{},
		&gormModels.Technician{},
		&gormModels.ShopUser{},
		&gormModels.Notification{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate snapshot schema: %w", err)
	}

	ORM = db
	return db, nil
}
