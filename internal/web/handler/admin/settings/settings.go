// Package settings lets a merchant read and save the widget configuration
// of their shop.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/product-reviews/product-reviews/internal/auth"
	"github.com/product-reviews/product-reviews/internal/config"
	"github.com/product-reviews/product-reviews/internal/db/controller/setting"
	"github.com/product-reviews/product-reviews/internal/metrics"
	"github.com/product-reviews/product-reviews/internal/web/handler"
	authmw "github.com/product-reviews/product-reviews/internal/web/middleware/auth"
)

const (
	// Path is the admin settings endpoint.
	Path = handler.AdminPath + "/settings"
)

// ErrConfigNotObject is returned when the saved document is not a JSON object.
var ErrConfigNotObject = errors.New("config must be a JSON object")

// Service is the admin settings handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *handler.XValidator
}

// SaveRequest is the body of a settings save. Config is either the
// document itself or the document serialized into a string.
type SaveRequest struct {
	Config json.RawMessage `json:"config" validate:"required"`
}

// Response is the widget configuration of the authenticated shop.
type Response struct {
	Config json.RawMessage `json:"config"`
	// Default is set when the shop never saved settings and Config holds
	// the configured defaults.
	Default bool `json:"default"`
}

// Init initializes the admin settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.validator = handler.NewValidator()

	app.Get(Path, authmw.RequireShopKey(authService), s.Get)
	app.Post(Path, authmw.RequireShopKey(authService), s.Post)
}

// Get returns the saved settings, or the configured defaults.
func (s *Service) Get(c *fiber.Ctx) error {
	shopKey := handler.ShopFromLocals(c)

	stored, err := setting.Get(s.db, shopKey)

	switch {
	case errors.Is(err, setting.ErrSettingNotFound):
		return c.JSON(s.defaults())
	case err != nil:
		return handler.Persistence(err)
	}

	if !json.Valid([]byte(stored.Config)) {
		log.Error().Str("shop", shopKey).Msg("stored widget settings are not valid JSON, returning defaults")

		return c.JSON(s.defaults())
	}

	return c.JSON(Response{Config: json.RawMessage(stored.Config)})
}

func (s *Service) defaults() Response {
	if s.cfg.Widget.DefaultConfig == "" {
		return Response{Config: json.RawMessage("null"), Default: true}
	}

	return Response{Config: json.RawMessage(s.cfg.Widget.DefaultConfig), Default: true}
}

// Post replaces the settings of the shop.
func (s *Service) Post(c *fiber.Ctx) error {
	shopKey := handler.ShopFromLocals(c)

	req := new(SaveRequest)
	if err := s.validator.BindJSON(c, req); err != nil {
		return err
	}

	doc, err := Document(req.Config)
	if err != nil {
		return handler.Validation(err.Error(), map[string]string{"config": "object"})
	}

	saved, err := setting.Set(s.db, shopKey, doc)
	if err != nil {
		return handler.Persistence(err)
	}

	metrics.SettingsSaved.Inc()

	log.Info().Str("shop", shopKey).Int("size", len(doc)).Msg("widget settings saved")

	return c.JSON(Response{Config: json.RawMessage(saved.Config)})
}

// Document returns the compact form of a config value. A JSON string is
// unwrapped first, the result must be a JSON object.
func Document(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)

	if len(raw) > 0 && raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return "", ErrConfigNotObject
		}

		raw = bytes.TrimSpace([]byte(inner))
	}

	if len(raw) == 0 || raw[0] != '{' || !json.Valid(raw) {
		return "", ErrConfigNotObject
	}

	var out bytes.Buffer
	if err := json.Compact(&out, raw); err != nil {
		return "", ErrConfigNotObject
	}

	return out.String(), nil
}
