// Package review is the review store: create, query and moderate review rows.
//
// Shop keys are normalized here as well as at the HTTP boundary, so rows can
// not be written under a key no reader would ever look up.
package review

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/product-reviews/product-reviews/internal/db/models"
	"github.com/product-reviews/product-reviews/internal/shop"
)

const (
	idAndShopQueryPattern = "id = ? AND shop = ?"
	orderNewestFirst      = "created_at DESC"
)

var (
	// ErrReviewNotFound is returned when no review with the id exists for the shop.
	ErrReviewNotFound = errors.New("review not found")
	// ErrShopEmpty is returned when the shop key is empty after normalization.
	ErrShopEmpty = errors.New("shop cannot be empty")
	// ErrProductIDEmpty is returned when creating a review without product id.
	ErrProductIDEmpty = errors.New("product id cannot be empty")
	// ErrReviewIDEmpty is returned when updating a review without id.
	ErrReviewIDEmpty = errors.New("review id cannot be empty")
	// ErrStatusInvalid is returned for an unknown review status.
	ErrStatusInvalid = errors.New("review status is invalid")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Filter selects reviews of one shop. Empty fields do not filter.
type Filter struct {
	Shop      string
	ProductID string
	Status    models.ReviewStatus
}

// Create stores a new review. Id and timestamps are assigned by the store.
func Create(db *gorm.DB, r *models.Review) error {
	if db == nil {
		return ErrDBNil
	}

	r.Shop = shop.Normalize(r.Shop)
	if r.Shop == "" {
		return ErrShopEmpty
	}

	if r.ProductID == "" {
		return ErrProductIDEmpty
	}

	if r.Status == "" {
		r.Status = models.StatusPending
	}

	if !r.Status.Valid() {
		return ErrStatusInvalid
	}

	return db.Create(r).Error
}

// Find returns the reviews matching the filter, newest first.
// There is no limit, per shop volumes are assumed to be small.
func Find(db *gorm.DB, f Filter) ([]models.Review, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	key := shop.Normalize(f.Shop)
	if key == "" {
		return nil, ErrShopEmpty
	}

	if f.Status != "" && !f.Status.Valid() {
		return nil, ErrStatusInvalid
	}

	q := db.Where("shop = ?", key)

	if f.ProductID != "" {
		q = q.Where("product_id = ?", f.ProductID)
	}

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	reviews := make([]models.Review, 0)
	if err := q.Order(orderNewestFirst).Find(&reviews).Error; err != nil {
		return nil, err
	}

	return reviews, nil
}

// Get returns one review of the shop.
func Get(db *gorm.DB, shopKey, id string) (*models.Review, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if id == "" {
		return nil, ErrReviewIDEmpty
	}

	key := shop.Normalize(shopKey)
	if key == "" {
		return nil, ErrShopEmpty
	}

	var r models.Review

	result := db.Where(idAndShopQueryPattern, id, key).First(&r)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}

		return nil, result.Error
	}

	return &r, nil
}

// UpdateStatus sets the status of a review and returns the updated row.
func UpdateStatus(db *gorm.DB, shopKey, id string, status models.ReviewStatus) (*models.Review, error) {
	if !status.Valid() {
		return nil, ErrStatusInvalid
	}

	r, err := Get(db, shopKey, id)
	if err != nil {
		return nil, err
	}

	r.Status = status

	if err = db.Model(r).Update("status", status).Error; err != nil {
		return nil, err
	}

	return r, nil
}

// UpdateReply sets reply text and date of a review, overwriting any previous reply.
func UpdateReply(db *gorm.DB, shopKey, id, reply string, at time.Time) (*models.Review, error) {
	r, err := Get(db, shopKey, id)
	if err != nil {
		return nil, err
	}

	r.Reply = &reply
	r.ReplyDate = &at

	err = db.Model(r).Updates(map[string]interface{}{
		"reply":      reply,
		"reply_date": at,
	}).Error
	if err != nil {
		return nil, err
	}

	return r, nil
}
