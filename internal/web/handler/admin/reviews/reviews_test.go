package reviews

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/product-reviews/product-reviews/internal/auth"
	"github.com/product-reviews/product-reviews/internal/config"
	"github.com/product-reviews/product-reviews/internal/db/controller/review"
	"github.com/product-reviews/product-reviews/internal/db/models"
	reviewlogic "github.com/product-reviews/product-reviews/internal/review"
	"github.com/product-reviews/product-reviews/internal/web/handler"
	publicreviews "github.com/product-reviews/product-reviews/internal/web/handler/public/reviews"
)

var now = time.Date(2026, time.May, 15, 12, 0, 0, 0, time.UTC)

type testApp struct {
	app  *fiber.App
	db   *gorm.DB
	svc  *Service
	keys map[string]string
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Review{}, &models.AccessKey{}), "failed to migrate test database")

	authService := auth.NewService(db)
	keys := make(map[string]string)

	for _, shop := range []string{"a.myshopify.com", "b.myshopify.com"} {
		key, _, err := authService.CreateKey(shop, "test")
		require.NoError(t, err)

		keys[shop] = key
	}

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})

	s := &Service{now: func() time.Time { return now }}
	s.Init(app, &config.Config{}, db, authService)

	public := &publicreviews.Service{}
	public.Init(app, &config.Config{}, db)

	return &testApp{app: app, db: db, svc: s, keys: keys}
}

func (ta *testApp) do(t *testing.T, shop, method, target, body string) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, r)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	if shop != "" {
		req.Header.Set(handler.HeaderShopDomain, shop)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+ta.keys[shop])
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)

	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, b
}

func (ta *testApp) seed(t *testing.T, r models.Review) models.Review {
	t.Helper()

	if r.Shop == "" {
		r.Shop = "a.myshopify.com"
	}

	if r.Comment == "" {
		r.Comment = "text"
	}

	require.NoError(t, review.Create(ta.db, &r))

	return r
}

func errorKind(t *testing.T, body []byte) handler.Kind {
	t.Helper()

	var er handler.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &er), string(body))
	require.NotNil(t, er.Error)

	return er.Error.Kind
}

func TestUnauthorized(t *testing.T) {
	ta := setupTestApp(t)

	for _, target := range []string{Path, DashboardPath} {
		status, body := ta.do(t, "", http.MethodGet, target, "")
		assert.Equal(t, fiber.StatusUnauthorized, status)
		assert.Equal(t, handler.KindUnauthorized, errorKind(t, body))
	}
}

func TestList(t *testing.T) {
	ta := setupTestApp(t)

	ta.seed(t, models.Review{ProductID: "1", Rating: 5, Status: models.StatusPublished, CreatedAt: now.Add(-time.Hour)})
	ta.seed(t, models.Review{ProductID: "1", Rating: 2, Status: models.StatusPending, CreatedAt: now.Add(-2 * time.Hour)})
	ta.seed(t, models.Review{ProductID: "2", Rating: 1, Status: models.StatusHidden, CreatedAt: now.Add(-3 * time.Hour)})
	ta.seed(t, models.Review{Shop: "b.myshopify.com", ProductID: "1", Rating: 4, Status: models.StatusPublished})

	testCases := []struct {
		name   string
		query  string
		status int
		count  int
	}{
		{name: "all of the shop", status: fiber.StatusOK, count: 3},
		{name: "by product", query: "?productId=1", status: fiber.StatusOK, count: 2},
		{name: "by status", query: "?status=pending", status: fiber.StatusOK, count: 1},
		{name: "by product and status", query: "?productId=2&status=HIDDEN", status: fiber.StatusOK, count: 1},
		{name: "unknown status", query: "?status=DELETED", status: fiber.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := ta.do(t, "a.myshopify.com", http.MethodGet, Path+tc.query, "")
			require.Equal(t, tc.status, status, string(body))

			if tc.status != fiber.StatusOK {
				assert.Equal(t, handler.KindValidation, errorKind(t, body))
				return
			}

			var out []models.Review
			require.NoError(t, json.Unmarshal(body, &out))
			assert.Len(t, out, tc.count)

			for _, r := range out {
				assert.Equal(t, "a.myshopify.com", r.Shop)
			}
		})
	}
}

func TestCreate(t *testing.T) {
	ta := setupTestApp(t)

	status, body := ta.do(t, "a.myshopify.com", http.MethodPost, Path,
		`{"productId":"7","productName":"Mug","productImage":"//cdn.shopify.com/mug.png","rating":5,"title":"Nice","comment":"Love it","email":"c@example.com"}`)
	require.Equal(t, fiber.StatusCreated, status, string(body))

	var created models.Review
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, models.StatusPublished, created.Status, "merchant reviews are published right away")
	assert.Equal(t, "a.myshopify.com", created.Shop)
	assert.Equal(t, models.DefaultAuthor, created.Author)
	assert.Equal(t, "Nice", created.Title)

	status, body = ta.do(t, "", http.MethodGet, publicreviews.Path+"?shop=a.myshopify.com&productId=7", "")
	require.Equal(t, fiber.StatusOK, status)

	var listed []publicreviews.PublicReview
	require.NoError(t, json.Unmarshal(body, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	status, body = ta.do(t, "a.myshopify.com", http.MethodPost, Path, `{"productId":"7","rating":9,"comment":"x"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, handler.KindValidation, errorKind(t, body))
}

func TestReply(t *testing.T) {
	ta := setupTestApp(t)

	r := ta.seed(t, models.Review{ProductID: "1", Rating: 2, Status: models.StatusPending})
	target := strings.Replace(ReplyPath, ":id", r.ID, 1)

	for _, at := range []time.Time{now, now.Add(time.Hour)} {
		ta.svc.now = func() time.Time { return at }

		status, body := ta.do(t, "a.myshopify.com", http.MethodPost, target, `{"reply":"  Thanks for the feedback  "}`)
		require.Equal(t, fiber.StatusOK, status, string(body))

		var got models.Review
		require.NoError(t, json.Unmarshal(body, &got))
		require.NotNil(t, got.Reply)
		require.NotNil(t, got.ReplyDate)
		assert.Equal(t, "Thanks for the feedback", *got.Reply)
		assert.True(t, at.Equal(*got.ReplyDate), "reply date follows the latest reply")
		assert.Equal(t, models.StatusPending, got.Status)

		stored, err := review.Get(ta.db, "a.myshopify.com", r.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.ReplyDate)
		assert.True(t, at.Equal(*stored.ReplyDate))
	}

	ta.svc.now = func() time.Time { return now }

	testCases := []struct {
		name   string
		shop   string
		target string
		body   string
		status int
		kind   handler.Kind
	}{
		{name: "unknown id", shop: "a.myshopify.com", target: strings.Replace(ReplyPath, ":id", "missing", 1), body: `{"reply":"x"}`, status: fiber.StatusNotFound, kind: handler.KindNotFound},
		{name: "review of another shop", shop: "b.myshopify.com", target: target, body: `{"reply":"x"}`, status: fiber.StatusNotFound, kind: handler.KindNotFound},
		{name: "empty reply", shop: "a.myshopify.com", target: target, body: `{"reply":" "}`, status: fiber.StatusBadRequest, kind: handler.KindValidation},
		{name: "malformed", shop: "a.myshopify.com", target: target, body: `reply`, status: fiber.StatusBadRequest, kind: handler.KindMalformed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := ta.do(t, tc.shop, http.MethodPost, tc.target, tc.body)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.kind, errorKind(t, body))
		})
	}
}

func TestStatus(t *testing.T) {
	ta := setupTestApp(t)

	r := ta.seed(t, models.Review{ProductID: "1", Rating: 4, Status: models.StatusPending})
	target := strings.Replace(StatusPath, ":id", r.ID, 1)

	publicCount := func() int {
		status, body := ta.do(t, "", http.MethodGet, publicreviews.Path+"?shop=a.myshopify.com&productId=1", "")
		require.Equal(t, fiber.StatusOK, status)

		var out []publicreviews.PublicReview
		require.NoError(t, json.Unmarshal(body, &out))

		return len(out)
	}

	steps := []struct {
		to      string
		action  reviewlogic.Action
		visible int
	}{
		{to: "PUBLISHED", action: reviewlogic.ActionApprove, visible: 1},
		{to: "hidden", action: reviewlogic.ActionRetract, visible: 0},
		{to: "PUBLISHED", action: reviewlogic.ActionRestore, visible: 1},
		{to: "PUBLISHED", action: reviewlogic.ActionNone, visible: 1},
		{to: "PENDING", action: reviewlogic.ActionHold, visible: 0},
	}

	for _, step := range steps {
		status, body := ta.do(t, "a.myshopify.com", http.MethodPost, target, `{"status":"`+step.to+`"}`)
		require.Equal(t, fiber.StatusOK, status, string(body))

		var got StatusResponse
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, step.action, got.Action)
		assert.Equal(t, models.ReviewStatus(strings.ToUpper(step.to)), got.Review.Status)
		assert.Equal(t, step.visible, publicCount(), "after moving to %s", step.to)
	}

	status, body := ta.do(t, "a.myshopify.com", http.MethodPost, target, `{"status":"ARCHIVED"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, handler.KindValidation, errorKind(t, body))

	status, body = ta.do(t, "a.myshopify.com", http.MethodPost,
		strings.Replace(StatusPath, ":id", "missing", 1), `{"status":"HIDDEN"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, handler.KindNotFound, errorKind(t, body))

	status, _ = ta.do(t, "b.myshopify.com", http.MethodPost, target, `{"status":"HIDDEN"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestDashboard(t *testing.T) {
	ta := setupTestApp(t)

	lastMonth := time.Date(2026, time.April, 20, 0, 0, 0, 0, time.UTC)

	ta.seed(t, models.Review{ProductID: "1", ProductName: "Mug", Rating: 5, Status: models.StatusPublished, CreatedAt: now.Add(-time.Hour)})
	ta.seed(t, models.Review{ProductID: "1", Rating: 4, Status: models.StatusPublished, CreatedAt: now.Add(-2 * time.Hour)})
	ta.seed(t, models.Review{ProductID: "2", Rating: 3, Status: models.StatusPublished, CreatedAt: now.Add(-3 * time.Hour)})
	ta.seed(t, models.Review{ProductID: "2", Rating: 1, Status: models.StatusPublished, CreatedAt: lastMonth})
	ta.seed(t, models.Review{ProductID: "2", Rating: 1, Status: models.StatusPublished, CreatedAt: lastMonth})
	ta.seed(t, models.Review{ProductID: "3", Rating: 1, Status: models.StatusPending, CreatedAt: now.Add(-time.Minute)})
	ta.seed(t, models.Review{Shop: "b.myshopify.com", ProductID: "1", Rating: 1, Status: models.StatusPublished})

	status, body := ta.do(t, "a.myshopify.com", http.MethodGet, DashboardPath, "")
	require.Equal(t, fiber.StatusOK, status, string(body))

	var d reviewlogic.Dashboard
	require.NoError(t, json.Unmarshal(body, &d))

	assert.Equal(t, 6, d.TotalReviews)
	assert.Equal(t, "2.8", d.AverageRating)
	assert.Equal(t, 1, d.StatusCounts[models.StatusPending])
	assert.Equal(t, 5, d.StatusCounts[models.StatusPublished])
	assert.Equal(t, reviewlogic.Growth{Current: 3, Previous: 2, Percent: 50}, d.Growth)

	require.Len(t, d.Products, 3)
	assert.Equal(t, "3", d.Products[0].ProductID, "products ordered by their latest review")
	assert.Equal(t, "Mug", d.Products[1].ProductName)
	assert.Equal(t, "4.5", d.Products[1].AvgRating)
	assert.Equal(t, reviewlogic.UnnamedProduct, d.Products[2].ProductName)

	total := 0
	for _, p := range d.Products {
		total += p.ReviewCount
	}

	assert.Equal(t, d.TotalReviews, total)
}
