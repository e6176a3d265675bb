// Package models contains database model definitions.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewStatus controls whether a review is visible on the storefront.
type ReviewStatus string

const (
	// StatusPending is a review waiting for moderation.
	StatusPending ReviewStatus = "PENDING"
	// StatusPublished is a review shown by the storefront widget.
	StatusPublished ReviewStatus = "PUBLISHED"
	// StatusHidden is a review rejected or retracted by the merchant.
	StatusHidden ReviewStatus = "HIDDEN"
)

// Valid reports whether s is one of the known statuses.
func (s ReviewStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPublished, StatusHidden:
		return true
	}

	return false
}

// DefaultAuthor is stored when a review is submitted without a name.
const DefaultAuthor = "Anonymous"

// Review is a product review of one shop.
// Shop, ProductID, Rating and CreatedAt never change after creation.
type Review struct {
	// ID is a random UUID assigned on create.
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// Shop is the normalized shop domain owning the review.
	Shop string `gorm:"size:255;not null;index:idx_reviews_shop_product,priority:1" json:"shop"`
	// ProductID is the catalog id of the reviewed product.
	ProductID string `gorm:"size:255;not null;index:idx_reviews_shop_product,priority:2" json:"productId"`
	// ProductName and ProductImage are a display snapshot taken at submission.
	ProductName  string `gorm:"size:255" json:"productName,omitempty"`
	ProductImage string `gorm:"size:1024" json:"productImage,omitempty"`
	Rating       int    `gorm:"not null" json:"rating"`
	Title        string `gorm:"size:255" json:"title,omitempty"`
	Comment      string `gorm:"type:text;not null" json:"comment"`
	Author       string `gorm:"size:255" json:"author"`
	Email        string `gorm:"size:255" json:"email,omitempty"`
	// Status is changed by moderation only.
	Status ReviewStatus `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"status"`
	// Reply and ReplyDate are always written together.
	Reply     *string    `gorm:"type:text" json:"reply"`
	ReplyDate *time.Time `json:"replyDate"`
	CreatedAt time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// BeforeCreate assigns the id.
func (r *Review) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	return nil
}
