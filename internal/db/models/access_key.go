package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// AccessKey grants admin API access to one shop.
// Only the SHA-256 digest of the key is stored.
type AccessKey struct {
	ID         uint64 `gorm:"primaryKey"`
	Shop       string `gorm:"size:255;not null;uniqueIndex:idx_access_keys_shop_digest,priority:1"`
	Label      string `gorm:"size:100"`
	Digest     string `gorm:"size:64;not null;uniqueIndex:idx_access_keys_shop_digest,priority:2"`
	CreatedAt  time.Time
	LastUsedAt *time.Time
}

// DigestKey returns the hex SHA-256 digest of a plaintext access key.
// Keys are 256-bit random tokens, a fast digest is enough.
func DigestKey(key string) string {
	sum := sha256.Sum256([]byte(key))

	return hex.EncodeToString(sum[:])
}
