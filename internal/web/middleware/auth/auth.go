// Package auth provides the admin access key middleware.
//
// Admin requests carry the shop domain in the X-Shop-Domain header and an
// access key as bearer token. The middleware verifies the pair and stores
// the normalized shop in the request locals, every admin handler scopes its
// queries to that shop.
package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/product-reviews/product-reviews/internal/auth"
	"github.com/product-reviews/product-reviews/internal/shop"
	"github.com/product-reviews/product-reviews/internal/web/handler"
)

const bearerPrefix = "bearer "

// RequireShopKey creates Fiber middleware that requires a valid shop access key.
func RequireShopKey(authService *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// preflight requests never carry credentials
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		shopKey := shop.Normalize(c.Get(handler.HeaderShopDomain))
		if shopKey == "" {
			return handler.Unauthorized("missing " + handler.HeaderShopDomain + " header")
		}

		token := BearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return handler.Unauthorized("missing bearer access key")
		}

		_, err := authService.Authenticate(shopKey, token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidKey) {
				log.Warn().Str("shop", shopKey).Str("ip", c.IP()).Msg("rejected admin access key")

				return handler.Unauthorized("invalid access key")
			}

			return handler.Persistence(err)
		}

		c.Locals(handler.LocalsShop, shopKey)

		return c.Next()
	}
}

// BearerToken extracts the token of an Authorization header value.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}

	return strings.TrimSpace(header[len(bearerPrefix):])
}
