// Package shop normalizes shop identifiers.
//
// Every lookup and storage key for a tenant goes through Normalize, so
// "https://A.myshopify.com/" and "a.myshopify.com" address the same shop.
package shop

import (
	"strings"
)

// Normalize strips surrounding spaces, a leading URL scheme and trailing
// slashes, and lower-cases the domain. The result is empty when nothing
// usable is left.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)

	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+len("://"):]
	}

	s = strings.TrimRight(s, "/")

	return strings.ToLower(strings.TrimSpace(s))
}
