// Package reviews serves the merchant side of the reviews: listing every
// review of the shop, writing reviews, moderation, replies and the dashboard.
package reviews

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/product-reviews/product-reviews/internal/auth"
	"github.com/product-reviews/product-reviews/internal/config"
	"github.com/product-reviews/product-reviews/internal/db/controller/review"
	"github.com/product-reviews/product-reviews/internal/db/models"
	"github.com/product-reviews/product-reviews/internal/metrics"
	reviewlogic "github.com/product-reviews/product-reviews/internal/review"
	"github.com/product-reviews/product-reviews/internal/web/handler"
	authmw "github.com/product-reviews/product-reviews/internal/web/middleware/auth"
)

const (
	// Path is the admin review collection.
	Path = handler.AdminPath + "/reviews"

	// ReplyPath sets the merchant reply of one review.
	ReplyPath = Path + "/:id/reply"

	// StatusPath moves one review to another status.
	StatusPath = Path + "/:id/status"

	// DashboardPath is the admin overview.
	DashboardPath = handler.AdminPath + "/dashboard"
)

// Service is the admin reviews handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *handler.XValidator
	now       func() time.Time
}

// CreateRequest is the body of a review written by the merchant.
type CreateRequest struct {
	ProductID    string `json:"productId" validate:"required,max=255"`
	ProductName  string `json:"productName" validate:"max=255"`
	ProductImage string `json:"productImage" validate:"max=1024"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Title        string `json:"title" validate:"max=255"`
	Comment      string `json:"comment" validate:"required,max=5000"`
	Author       string `json:"author" validate:"max=255"`
	Email        string `json:"email" validate:"omitempty,email,max=255"`
}

// Trim strips surrounding spaces.
func (r *CreateRequest) Trim() {
	r.ProductID = strings.TrimSpace(r.ProductID)
	r.ProductName = strings.TrimSpace(r.ProductName)
	r.ProductImage = strings.TrimSpace(r.ProductImage)
	r.Title = strings.TrimSpace(r.Title)
	r.Comment = strings.TrimSpace(r.Comment)
	r.Author = strings.TrimSpace(r.Author)
	r.Email = strings.TrimSpace(r.Email)
}

// ReplyRequest is the body of a reply.
type ReplyRequest struct {
	Reply string `json:"reply" validate:"required,max=5000"`
}

// Trim strips surrounding spaces.
func (r *ReplyRequest) Trim() {
	r.Reply = strings.TrimSpace(r.Reply)
}

// StatusRequest is the body of a status change.
type StatusRequest struct {
	Status models.ReviewStatus `json:"status" validate:"required,oneof=PENDING PUBLISHED HIDDEN"`
}

// Trim accepts the status in any case.
func (r *StatusRequest) Trim() {
	r.Status = models.ReviewStatus(strings.ToUpper(strings.TrimSpace(string(r.Status))))
}

// StatusResponse is the reviewed row and the moderation step taken.
type StatusResponse struct {
	Action reviewlogic.Action `json:"action"`
	Review *models.Review     `json:"review"`
}

// Init initializes the admin reviews handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.validator = handler.NewValidator()

	if s.now == nil {
		s.now = time.Now
	}

	requireKey := authmw.RequireShopKey(authService)

	app.Get(Path, requireKey, s.List)
	app.Post(Path, requireKey, s.Create)
	app.Post(ReplyPath, requireKey, s.Reply)
	app.Post(StatusPath, requireKey, s.Status)
	app.Get(DashboardPath, requireKey, s.Dashboard)
}

// List returns every review of the shop, newest first, optionally
// filtered by product and status.
func (s *Service) List(c *fiber.Ctx) error {
	f := review.Filter{
		Shop:      handler.ShopFromLocals(c),
		ProductID: strings.TrimSpace(c.Query("productId")),
		Status:    models.ReviewStatus(strings.ToUpper(strings.TrimSpace(c.Query("status")))),
	}

	if f.Status != "" && !f.Status.Valid() {
		return handler.Validation("unknown status "+string(f.Status), map[string]string{"status": "oneof"})
	}

	reviews, err := review.Find(s.db, f)
	if err != nil {
		return handler.Persistence(err)
	}

	return c.JSON(reviews)
}

// Create stores a review written by the merchant, published right away.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(CreateRequest)
	if err := s.validator.BindJSON(c, req); err != nil {
		return err
	}

	author := req.Author
	if author == "" {
		author = models.DefaultAuthor
	}

	r := &models.Review{
		Shop:         handler.ShopFromLocals(c),
		ProductID:    req.ProductID,
		ProductName:  req.ProductName,
		ProductImage: req.ProductImage,
		Rating:       req.Rating,
		Title:        req.Title,
		Comment:      req.Comment,
		Author:       author,
		Email:        req.Email,
		Status:       reviewlogic.InitialStatus(true),
	}

	if err := review.Create(s.db, r); err != nil {
		return handler.Persistence(err)
	}

	metrics.ReviewsSubmitted.WithLabelValues(metrics.SourceAdmin).Inc()

	log.Info().
		Str("shop", r.Shop).
		Str("product_id", r.ProductID).
		Str("review_id", r.ID).
		Msg("admin review created")

	return c.Status(fiber.StatusCreated).JSON(r)
}

// Reply sets or replaces the merchant reply of a review.
func (s *Service) Reply(c *fiber.Ctx) error {
	req := new(ReplyRequest)
	if err := s.validator.BindJSON(c, req); err != nil {
		return err
	}

	shopKey := handler.ShopFromLocals(c)

	r, err := review.UpdateReply(s.db, shopKey, c.Params("id"), req.Reply, s.now().UTC())
	if err != nil {
		return storeError(err)
	}

	metrics.RepliesSet.Inc()

	log.Info().Str("shop", shopKey).Str("review_id", r.ID).Msg("review reply set")

	return c.JSON(r)
}

// Status moves a review to another status.
func (s *Service) Status(c *fiber.Ctx) error {
	req := new(StatusRequest)
	if err := s.validator.BindJSON(c, req); err != nil {
		return err
	}

	shopKey := handler.ShopFromLocals(c)
	id := c.Params("id")

	current, err := review.Get(s.db, shopKey, id)
	if err != nil {
		return storeError(err)
	}

	action, err := reviewlogic.Transition(current.Status, req.Status)
	if err != nil {
		return handler.Validation(err.Error(), map[string]string{"status": "oneof"})
	}

	updated, err := review.UpdateStatus(s.db, shopKey, id, req.Status)
	if err != nil {
		return storeError(err)
	}

	metrics.ModerationActions.WithLabelValues(string(action)).Inc()

	log.Info().
		Str("shop", shopKey).
		Str("review_id", id).
		Str("from", string(current.Status)).
		Str("to", string(req.Status)).
		Str("action", string(action)).
		Msg("review status changed")

	return c.JSON(StatusResponse{Action: action, Review: updated})
}

// Dashboard returns totals, average rating, monthly growth and the
// reviews grouped by product.
func (s *Service) Dashboard(c *fiber.Ctx) error {
	reviews, err := review.Find(s.db, review.Filter{Shop: handler.ShopFromLocals(c)})
	if err != nil {
		return handler.Persistence(err)
	}

	return c.JSON(reviewlogic.Summarize(reviews, s.now()))
}

// storeError maps review store errors to API errors.
func storeError(err error) error {
	switch {
	case errors.Is(err, review.ErrReviewNotFound), errors.Is(err, review.ErrReviewIDEmpty):
		return handler.NotFound("review not found")
	case errors.Is(err, review.ErrStatusInvalid):
		return handler.Validation(err.Error(), map[string]string{"status": "oneof"})
	default:
		return handler.Persistence(err)
	}
}
