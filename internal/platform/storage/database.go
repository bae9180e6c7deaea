package storage

import (
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"brandkit-server-go/internal/platform/config"
	"brandkit-server-go/internal/platform/errors"
	"brandkit-server-go/internal/platform/storage/migrations"
)

// Open initialises the SQLite database, runs migrations and returns the
// handle.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	path := cfg.Path
	if path == "" {
		path = filepath.Join("data", "brandkit.db")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(errors.KindStorage, "database.open", "failed to create data directory", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(errors.KindStorage, "database.open", "failed to open database", err)
	}

	if err := db.AutoMigrate(&User{}, &BrandKitRecord{}, &AssetRecord{}); err != nil {
		return nil, errors.Wrap(errors.KindStorage, "database.migrate", "auto migration failed", err)
	}

	manager := NewMigrationManager(db)
	manager.AddMigration(&migrations.Migration001Initial{})
	if err := manager.RunMigrations(); err != nil {
		return nil, err
	}
	return db, nil
}
