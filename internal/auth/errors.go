package auth

import "errors"

var (
	// ErrShopEmpty is returned when the shop key is empty after normalization.
	ErrShopEmpty = errors.New("shop cannot be empty")

	// ErrKeyEmpty is returned when no access key was presented.
	ErrKeyEmpty = errors.New("access key cannot be empty")

	// ErrInvalidKey is returned when the presented key matches no key of the shop.
	ErrInvalidKey = errors.New("invalid access key")

	// ErrKeyNotFound is returned when revoking an unknown key id.
	ErrKeyNotFound = errors.New("access key not found")

	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)
