package models

import "time"

// Setting holds the storefront widget configuration of one shop.
// Config is an opaque JSON document, the store never looks inside.
type Setting struct {
	ID        uint64 `gorm:"primaryKey"`
	Shop      string `gorm:"size:255;uniqueIndex;not null"`
	Config    string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
