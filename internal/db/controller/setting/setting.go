// Package setting stores the widget configuration of each shop.
package setting

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/product-reviews/product-reviews/internal/db/models"
	"github.com/product-reviews/product-reviews/internal/shop"
)

const (
	shopQueryPattern = "shop = ?"
)

var (
	// ErrSettingNotFound is returned when a shop has never saved settings.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrShopEmpty is returned when the shop key is empty after normalization.
	ErrShopEmpty = errors.New("shop cannot be empty")
	// ErrConfigEmpty is returned when attempting to store an empty document.
	ErrConfigEmpty = errors.New("setting config cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves the settings of a shop.
func Get(db *gorm.DB, shopKey string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	key := shop.Normalize(shopKey)
	if key == "" {
		return nil, ErrShopEmpty
	}

	var setting models.Setting

	result := db.Where(shopQueryPattern, key).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, result.Error
	}

	return &setting, nil
}

// Set creates or replaces the settings of a shop. The document is stored as given.
func Set(db *gorm.DB, shopKey, config string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	key := shop.Normalize(shopKey)
	if key == "" {
		return nil, ErrShopEmpty
	}

	if config == "" {
		return nil, ErrConfigEmpty
	}

	setting := models.Setting{
		Shop:   key,
		Config: config,
	}

	// one row per shop, concurrent saves resolve to the last writer
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "shop"}},
		DoUpdates: clause.AssignmentColumns([]string{"config", "updated_at"}),
	}).Create(&setting)
	if result.Error != nil {
		return nil, result.Error
	}

	return Get(db, key)
}
