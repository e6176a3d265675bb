// Package settings serves the widget configuration to the storefront.
package settings

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/product-reviews/product-reviews/internal/config"
	"github.com/product-reviews/product-reviews/internal/db/controller/setting"
	"github.com/product-reviews/product-reviews/internal/web/handler"
)

const (
	// Path is the storefront settings endpoint.
	Path = handler.PublicPath + "/settings"
)

// Service is the storefront settings handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Response carries the stored document, null when the shop saved none.
type Response struct {
	Config json.RawMessage `json:"config"`
}

var null = json.RawMessage("null")

// Init initializes the storefront settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg

	app.Get(Path, s.Get)
}

// Get returns the widget configuration of a shop.
func (s *Service) Get(c *fiber.Ctx) error {
	shopKey, err := handler.RequiredShopQuery(c)
	if err != nil {
		return err
	}

	stored, err := setting.Get(s.db, shopKey)

	switch {
	case errors.Is(err, setting.ErrSettingNotFound):
		return c.JSON(Response{Config: null})
	case err != nil:
		return handler.Persistence(err)
	}

	if !json.Valid([]byte(stored.Config)) {
		log.Error().Str("shop", shopKey).Msg("stored widget settings are not valid JSON")

		return c.JSON(Response{Config: null})
	}

	return c.JSON(Response{Config: json.RawMessage(stored.Config)})
}
