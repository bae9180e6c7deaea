package storage

import (
	"time"

	"gorm.io/datatypes"
)

// User is the persisted account model.
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// BrandKitRecord is the persisted brand kit row. Palette and typography are
// stored as JSON documents.
type BrandKitRecord struct {
	ID              uint   `gorm:"primaryKey"`
	OwnerID         uint   `gorm:"index;not null"`
	Name            string `gorm:"not null"`
	Description     string
	Industry        string
	Step            string         `gorm:"not null"`
	Palette         datatypes.JSON `gorm:"type:json"`
	Typography      datatypes.JSON `gorm:"type:json"`
	SelectedLogoID  string
	UploadedLogoRef string
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

func (BrandKitRecord) TableName() string { return "brand_kits" }

// AssetRecord is one stored asset row. Position preserves stored order.
type AssetRecord struct {
	ID        string `gorm:"primaryKey"`
	KitID     uint   `gorm:"index;not null"`
	Kind      string `gorm:"not null"`
	Data      string
	URL       string
	Prompt    string
	Position  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (AssetRecord) TableName() string { return "brand_assets" }
