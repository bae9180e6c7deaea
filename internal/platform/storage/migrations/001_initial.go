// Package migrations holds versioned schema changes for the brand kit store.
package migrations

import (
	"gorm.io/gorm"
)

// Migration001Initial creates the core tables.
type Migration001Initial struct{}

func (m *Migration001Initial) Version() string {
	return "001_initial"
}

func (m *Migration001Initial) Description() string {
	return "Create users, brand kits and brand assets tables"
}

func (m *Migration001Initial) Up(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS brand_kits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_id INTEGER NOT NULL,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			industry VARCHAR(255),
			step VARCHAR(32) NOT NULL,
			palette JSON,
			typography JSON,
			selected_logo_id VARCHAR(64),
			uploaded_logo_ref TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return err
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_brand_kits_owner_id ON brand_kits(owner_id)`).Error; err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS brand_assets (
			id VARCHAR(64) PRIMARY KEY,
			kit_id INTEGER NOT NULL,
			kind VARCHAR(32) NOT NULL,
			data TEXT,
			url TEXT,
			prompt TEXT,
			position INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return err
	}
	return db.Exec(`CREATE INDEX IF NOT EXISTS idx_brand_assets_kit_id ON brand_assets(kit_id)`).Error
}

func (m *Migration001Initial) Down(db *gorm.DB) error {
	for _, table := range []string{"brand_assets", "brand_kits", "users"} {
		if err := db.Exec("DROP TABLE IF EXISTS " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
