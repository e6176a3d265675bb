// Package cors sets permissive CORS headers on every API response.
//
// The storefront widget runs on arbitrary shop origins, so every response,
// error responses included, allows any origin. Preflight requests are
// answered with 204 and no body.
package cors

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Config defines the config for the middleware.
type Config struct {
	// Next defines a function to skip this middleware when returned true.
	Next func(c *fiber.Ctx) bool

	AllowMethods []string
	AllowHeaders []string
	// MaxAge in seconds, 0 omits the header.
	MaxAge int
}

// ConfigDefault is the default config.
var ConfigDefault = Config{
	AllowMethods: []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodOptions},
	AllowHeaders: []string{fiber.HeaderContentType, fiber.HeaderAuthorization, "X-Shop-Domain"},
	MaxAge:       86400, //nolint:mnd
}

// New creates the CORS middleware.
func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) > 0 {
		cfg = config[0]
	}

	methods := strings.Join(cfg.AllowMethods, ", ")
	headers := strings.Join(cfg.AllowHeaders, ", ")

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		h := &c.Response().Header
		h.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		h.Set(fiber.HeaderAccessControlAllowMethods, methods)
		h.Set(fiber.HeaderAccessControlAllowHeaders, headers)

		if c.Method() != fiber.MethodOptions {
			return c.Next()
		}

		if cfg.MaxAge > 0 {
			h.Set(fiber.HeaderAccessControlMaxAge, strconv.Itoa(cfg.MaxAge))
		}

		c.Status(fiber.StatusNoContent)

		return nil
	}
}
