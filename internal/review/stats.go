package review

import (
	"math"
	"strconv"
	"time"

	"github.com/product-reviews/product-reviews/internal/db/models"
)

const (
	// ZeroRating is the average of an empty review set.
	ZeroRating = "0.0"

	// UnnamedProduct labels a group none of whose reviews carry a product name.
	UnnamedProduct = "Unnamed product"
)

// ProductGroup is the per product block of the admin dashboard.
type ProductGroup struct {
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductImage string          `json:"productImage,omitempty"`
	ReviewCount  int             `json:"reviewCount"`
	AvgRating    string          `json:"avgRating"`
	LatestDate   time.Time       `json:"latestDate"`
	Reviews      []models.Review `json:"reviews"`
}

// Growth compares the number of reviews of this and last calendar month.
type Growth struct {
	Current  int     `json:"current"`
	Previous int     `json:"previous"`
	Percent  float64 `json:"percent"`
}

// roundOne rounds half away from zero to one decimal.
func roundOne(f float64) float64 {
	return math.Round(f*10) / 10 //nolint:mnd
}

// AverageRating returns the mean rating with one decimal, ZeroRating for no reviews.
func AverageRating(reviews []models.Review) string {
	if len(reviews) == 0 {
		return ZeroRating
	}

	sum := 0
	for i := range reviews {
		sum += reviews[i].Rating
	}

	return strconv.FormatFloat(roundOne(float64(sum)/float64(len(reviews))), 'f', 1, 64)
}

// GroupByProduct partitions reviews by product id, keeping the order in
// which products first appear. Input sorted newest first yields groups
// sorted by their latest review.
func GroupByProduct(reviews []models.Review) []ProductGroup {
	index := make(map[string]int)
	groups := make([]ProductGroup, 0)

	for i := range reviews {
		r := reviews[i]

		gi, ok := index[r.ProductID]
		if !ok {
			gi = len(groups)
			index[r.ProductID] = gi
			groups = append(groups, ProductGroup{ProductID: r.ProductID})
		}

		g := &groups[gi]
		g.Reviews = append(g.Reviews, r)

		if g.ProductName == "" && r.ProductName != "" {
			g.ProductName = r.ProductName
		}

		if g.ProductImage == "" && r.ProductImage != "" {
			g.ProductImage = r.ProductImage
		}

		if r.CreatedAt.After(g.LatestDate) {
			g.LatestDate = r.CreatedAt
		}
	}

	for i := range groups {
		g := &groups[i]
		g.ReviewCount = len(g.Reviews)
		g.AvgRating = AverageRating(g.Reviews)

		if g.ProductName == "" {
			g.ProductName = UnnamedProduct
		}
	}

	return groups
}

// monthStart returns the first instant of the UTC calendar month of t.
func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthOverMonthGrowth counts reviews created in the calendar month of now
// and in the month before, and returns the relative change in percent.
// Without reviews last month growth is 100 if there are any this month, else 0.
func MonthOverMonthGrowth(reviews []models.Review, now time.Time) Growth {
	thisMonth := monthStart(now)
	nextMonth := thisMonth.AddDate(0, 1, 0)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	var g Growth

	for i := range reviews {
		c := reviews[i].CreatedAt

		switch {
		case !c.Before(thisMonth) && c.Before(nextMonth):
			g.Current++
		case !c.Before(lastMonth) && c.Before(thisMonth):
			g.Previous++
		}
	}

	g.Percent = GrowthPercent(g.Current, g.Previous)

	return g
}

// GrowthPercent is (current - previous) / previous * 100 with one decimal.
func GrowthPercent(current, previous int) float64 {
	if previous == 0 {
		if current > 0 {
			return 100 //nolint:mnd
		}

		return 0
	}

	return roundOne(float64(current-previous) / float64(previous) * 100) //nolint:mnd
}
