package settings

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/product-reviews/product-reviews/internal/config"
	"github.com/product-reviews/product-reviews/internal/db/controller/setting"
	"github.com/product-reviews/product-reviews/internal/db/models"
	"github.com/product-reviews/product-reviews/internal/web/handler"
	"github.com/product-reviews/product-reviews/internal/web/middleware/cors"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Setting{}), "failed to migrate test database")

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	app.Use(handler.APIPath, cors.New())

	s := &Service{}
	s.Init(app, &config.Config{}, db)

	return app, db
}

func TestGet(t *testing.T) {
	app, db := setupTestApp(t)

	_, err := setting.Set(db, "a.myshopify.com", `{"primaryColor":"#111111","fontSize":14}`)
	require.NoError(t, err)

	_, err = setting.Set(db, "broken.myshopify.com", `{"primaryColor":`)
	require.NoError(t, err)

	testCases := []struct {
		name   string
		query  string
		status int
		body   string
	}{
		{name: "saved settings", query: "?shop=a.myshopify.com", status: fiber.StatusOK, body: `{"config":{"primaryColor":"#111111","fontSize":14}}`},
		{name: "shop is normalized", query: "?shop=https://a.myshopify.com/", status: fiber.StatusOK, body: `{"config":{"primaryColor":"#111111","fontSize":14}}`},
		{name: "never saved", query: "?shop=b.myshopify.com", status: fiber.StatusOK, body: `{"config":null}`},
		{name: "unreadable document", query: "?shop=broken.myshopify.com", status: fiber.StatusOK, body: `{"config":null}`},
		{name: "missing shop", status: fiber.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, Path+tc.query, nil), -1)
			require.NoError(t, err)

			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			if tc.body != "" {
				assert.JSONEq(t, tc.body, string(body))
			}
		})
	}
}
