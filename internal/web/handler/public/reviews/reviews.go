// Package reviews serves the storefront review endpoints: listing the
// published reviews of a product, its rating summary and submitting a
// new review.
package reviews

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/product-reviews/product-reviews/internal/config"
	"github.com/product-reviews/product-reviews/internal/db/controller/review"
	"github.com/product-reviews/product-reviews/internal/db/models"
	"github.com/product-reviews/product-reviews/internal/metrics"
	reviewlogic "github.com/product-reviews/product-reviews/internal/review"
	"github.com/product-reviews/product-reviews/internal/shop"
	"github.com/product-reviews/product-reviews/internal/web/handler"
)

const (
	// Path is the storefront review collection.
	Path = handler.PublicPath + "/reviews"

	// SubmitAliasPath accepts submissions from older widget builds.
	SubmitAliasPath = handler.PublicPath + "/submit-review"

	// SummaryPath is the rating headline of one product.
	SummaryPath = Path + "/summary"
)

// Service is the storefront reviews handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *handler.XValidator
}

// SubmitRequest is the body of a storefront submission.
type SubmitRequest struct {
	Shop         string `json:"shop" validate:"required,max=255"`
	ProductID    string `json:"productId" validate:"required,max=255"`
	ProductName  string `json:"productName" validate:"max=255"`
	ProductImage string `json:"productImage" validate:"max=1024"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Title        string `json:"title" validate:"max=255"`
	Comment      string `json:"comment" validate:"required,max=5000"`
	Author       string `json:"author" validate:"max=255"`
	Email        string `json:"email" validate:"omitempty,email,max=255"`
}

// Trim normalizes the shop and strips surrounding spaces.
func (r *SubmitRequest) Trim() {
	r.Shop = shop.Normalize(r.Shop)
	r.ProductID = strings.TrimSpace(r.ProductID)
	r.ProductName = strings.TrimSpace(r.ProductName)
	r.ProductImage = strings.TrimSpace(r.ProductImage)
	r.Title = strings.TrimSpace(r.Title)
	r.Comment = strings.TrimSpace(r.Comment)
	r.Author = strings.TrimSpace(r.Author)
	r.Email = strings.TrimSpace(r.Email)
}

// PublicReview is a review as shown on the storefront. Shop, email and
// status are not exposed.
type PublicReview struct {
	ID        string     `json:"id"`
	ProductID string     `json:"productId"`
	Author    string     `json:"author"`
	Rating    int        `json:"rating"`
	Title     string     `json:"title,omitempty"`
	Comment   string     `json:"comment"`
	CreatedAt time.Time  `json:"createdAt"`
	Reply     *string    `json:"reply"`
	ReplyDate *time.Time `json:"replyDate"`
}

// Init initializes the storefront reviews handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.validator = handler.NewValidator()

	app.Get(Path, s.List)
	app.Get(SummaryPath, s.Summary)
	app.Post(Path, s.Submit)
	app.Post(SubmitAliasPath, s.Submit)
}

// productQuery returns the normalized shop and product id query parameters.
func productQuery(c *fiber.Ctx) (string, string, error) {
	shopKey, err := handler.RequiredShopQuery(c)
	if err != nil {
		return "", "", err
	}

	productID := strings.TrimSpace(c.Query("productId"))
	if productID == "" {
		return "", "", handler.MissingField("productId")
	}

	return shopKey, productID, nil
}

func (s *Service) published(shopKey, productID string) ([]models.Review, error) {
	return review.Find(s.db, review.Filter{
		Shop:      shopKey,
		ProductID: productID,
		Status:    models.StatusPublished,
	})
}

// List returns the published reviews of one product, newest first.
func (s *Service) List(c *fiber.Ctx) error {
	shopKey, productID, err := productQuery(c)
	if err != nil {
		return err
	}

	reviews, err := s.published(shopKey, productID)
	if err != nil {
		return handler.Persistence(err)
	}

	out := make([]PublicReview, 0, len(reviews))
	for i := range reviews {
		out = append(out, toPublic(&reviews[i]))
	}

	return c.JSON(out)
}

// Summary returns the average rating and count of the published reviews of one product.
func (s *Service) Summary(c *fiber.Ctx) error {
	shopKey, productID, err := productQuery(c)
	if err != nil {
		return err
	}

	reviews, err := s.published(shopKey, productID)
	if err != nil {
		return handler.Persistence(err)
	}

	return c.JSON(reviewlogic.Summary(productID, reviews))
}

// Submit stores a storefront review. It waits for moderation before it is listed.
func (s *Service) Submit(c *fiber.Ctx) error {
	req := new(SubmitRequest)
	if err := s.validator.BindJSON(c, req); err != nil {
		return err
	}

	author := req.Author
	if author == "" {
		author = models.DefaultAuthor
	}

	r := &models.Review{
		Shop:         req.Shop,
		ProductID:    req.ProductID,
		ProductName:  req.ProductName,
		ProductImage: req.ProductImage,
		Rating:       req.Rating,
		Title:        req.Title,
		Comment:      req.Comment,
		Author:       author,
		Email:        req.Email,
		Status:       reviewlogic.InitialStatus(false),
	}

	if err := review.Create(s.db, r); err != nil {
		if errors.Is(err, review.ErrShopEmpty) {
			return handler.MissingField("shop")
		}

		return handler.Persistence(err)
	}

	metrics.ReviewsSubmitted.WithLabelValues(metrics.SourceStorefront).Inc()

	log.Info().
		Str("shop", r.Shop).
		Str("product_id", r.ProductID).
		Str("review_id", r.ID).
		Int("rating", r.Rating).
		Msg("storefront review submitted")

	return c.JSON(handler.OK{OK: true})
}

func toPublic(r *models.Review) PublicReview {
	return PublicReview{
		ID:        r.ID,
		ProductID: r.ProductID,
		Author:    r.Author,
		Rating:    r.Rating,
		Title:     r.Title,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		Reply:     r.Reply,
		ReplyDate: r.ReplyDate,
	}
}
