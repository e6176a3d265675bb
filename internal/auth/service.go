package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/product-reviews/product-reviews/internal/db/models"
	"github.com/product-reviews/product-reviews/internal/shop"
)

// keyBytes is the entropy of a generated key, 256 bits.
const keyBytes = 32

// Service provides access key management and verification.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// GenerateKey generates a new secure random access key.
func GenerateKey() (string, error) {
	b := make([]byte, keyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// CreateKey issues a new key for the shop. The plaintext key is returned
// once and never stored.
func (s *Service) CreateKey(shopKey, label string) (string, *models.AccessKey, error) {
	if s.db == nil {
		return "", nil, ErrDBNil
	}

	key := shop.Normalize(shopKey)
	if key == "" {
		return "", nil, ErrShopEmpty
	}

	plain, err := GenerateKey()
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate access key: %w", err)
	}

	ak := &models.AccessKey{
		Shop:   key,
		Label:  label,
		Digest: models.DigestKey(plain),
	}

	if err = s.db.Create(ak).Error; err != nil {
		return "", nil, fmt.Errorf("failed to store access key: %w", err)
	}

	log.Info().Str("shop", key).Uint64("access_key_id", ak.ID).Str("label", label).Msg("access key created")

	return plain, ak, nil
}

// Authenticate looks the presented key up by its digest within the shop and
// records the time of use on the matching key.
func (s *Service) Authenticate(shopKey, presented string) (*models.AccessKey, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	key := shop.Normalize(shopKey)
	if key == "" {
		return nil, ErrShopEmpty
	}

	if presented == "" {
		return nil, ErrKeyEmpty
	}

	digest := models.DigestKey(presented)

	var ak models.AccessKey

	err := s.db.Where("shop = ? AND digest = ?", key, digest).Take(&ak).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidKey
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load access key: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(ak.Digest), []byte(digest)) != 1 {
		return nil, ErrInvalidKey
	}

	now := s.now()
	ak.LastUsedAt = &now

	if err = s.db.Model(&ak).Update("last_used_at", now).Error; err != nil {
		// a failed bookkeeping write does not deny access
		log.Warn().Err(err).Uint64("access_key_id", ak.ID).Msg("failed to record access key use")
	}

	return &ak, nil
}

// ListKeys returns the keys of a shop, oldest first.
func (s *Service) ListKeys(shopKey string) ([]models.AccessKey, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	key := shop.Normalize(shopKey)
	if key == "" {
		return nil, ErrShopEmpty
	}

	keys := make([]models.AccessKey, 0)
	if err := s.db.Where("shop = ?", key).Order("id ASC").Find(&keys).Error; err != nil {
		return nil, fmt.Errorf("failed to list access keys: %w", err)
	}

	return keys, nil
}

// RevokeKey deletes one key of a shop.
func (s *Service) RevokeKey(shopKey string, id uint64) error {
	if s.db == nil {
		return ErrDBNil
	}

	key := shop.Normalize(shopKey)
	if key == "" {
		return ErrShopEmpty
	}

	result := s.db.Where("id = ? AND shop = ?", id, key).Delete(&models.AccessKey{})
	if result.Error != nil {
		return fmt.Errorf("failed to revoke access key: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrKeyNotFound
	}

	log.Info().Str("shop", key).Uint64("access_key_id", id).Msg("access key revoked")

	return nil
}
