package review

import (
	"time"

	"github.com/product-reviews/product-reviews/internal/db/models"
)

// Dashboard is the admin overview of one shop.
type Dashboard struct {
	TotalReviews  int                         `json:"totalReviews"`
	AverageRating string                      `json:"averageRating"`
	StatusCounts  map[models.ReviewStatus]int `json:"statusCounts"`
	Growth        Growth                      `json:"growth"`
	Products      []ProductGroup              `json:"products"`
}

// ProductSummary is the rating headline of one product on the storefront.
type ProductSummary struct {
	ProductID     string `json:"productId"`
	AverageRating string `json:"averageRating"`
	ReviewCount   int    `json:"reviewCount"`
}

// Summarize builds the dashboard for all reviews of one shop.
// Rating average and growth only count published reviews, the status
// counts and product groups cover every review.
func Summarize(reviews []models.Review, now time.Time) Dashboard {
	published := Published(reviews)

	d := Dashboard{
		TotalReviews:  len(reviews),
		AverageRating: AverageRating(published),
		StatusCounts: map[models.ReviewStatus]int{
			models.StatusPending:   0,
			models.StatusPublished: 0,
			models.StatusHidden:    0,
		},
		Growth:   MonthOverMonthGrowth(published, now),
		Products: GroupByProduct(reviews),
	}

	for i := range reviews {
		d.StatusCounts[reviews[i].Status]++
	}

	return d
}

// Summary returns the headline of one product from its published reviews.
func Summary(productID string, published []models.Review) ProductSummary {
	return ProductSummary{
		ProductID:     productID,
		AverageRating: AverageRating(published),
		ReviewCount:   len(published),
	}
}

// Published returns the reviews the storefront may show, in input order.
func Published(reviews []models.Review) []models.Review {
	out := make([]models.Review, 0, len(reviews))

	for i := range reviews {
		if Visible(&reviews[i]) {
			out = append(out, reviews[i])
		}
	}

	return out
}
