package review

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/product-reviews/product-reviews/internal/db/models"
)

var now = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func rv(productID string, rating int, created time.Time) models.Review {
	return models.Review{
		ProductID: productID,
		Rating:    rating,
		Status:    models.StatusPublished,
		CreatedAt: created,
	}
}

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    string
	}{
		{"empty", nil, ZeroRating},
		{"single", []int{4}, "4.0"},
		{"exact", []int{4, 5}, "4.5"},
		{"rounds half up", []int{4, 4, 4, 5}, "4.3"},
		{"rounds down", []int{5, 5, 4}, "4.7"},
		{"thirds", []int{1, 2, 2}, "1.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews := make([]models.Review, 0, len(tt.ratings))
			for _, r := range tt.ratings {
				reviews = append(reviews, rv("p", r, now))
			}

			assert.Equal(t, tt.want, AverageRating(reviews))
		})
	}
}

func TestAverageRatingNeverNaN(t *testing.T) {
	assert.Equal(t, "0.0", AverageRating([]models.Review{}))
	assert.Equal(t, "0.0", AverageRating(nil))
}

func TestGroupByProduct(t *testing.T) {
	reviews := []models.Review{
		{ProductID: "2", ProductName: "Mug v2", Rating: 5, CreatedAt: now},
		{ProductID: "1", ProductName: "", Rating: 4, CreatedAt: now.Add(-time.Hour)},
		{ProductID: "2", ProductName: "Mug", Rating: 3, CreatedAt: now.Add(-2 * time.Hour)},
		{ProductID: "3", Rating: 1, CreatedAt: now.Add(-3 * time.Hour)},
		{ProductID: "1", ProductName: "Shirt", Rating: 5, CreatedAt: now.Add(-4 * time.Hour)},
	}

	groups := GroupByProduct(reviews)
	require.Len(t, groups, 3)

	assert.Equal(t, "2", groups[0].ProductID)
	assert.Equal(t, "Mug v2", groups[0].ProductName, "newest name wins as label")
	assert.Equal(t, 2, groups[0].ReviewCount)
	assert.Equal(t, "4.0", groups[0].AvgRating)
	assert.Equal(t, now, groups[0].LatestDate)

	assert.Equal(t, "1", groups[1].ProductID)
	assert.Equal(t, "Shirt", groups[1].ProductName)
	assert.Equal(t, "4.5", groups[1].AvgRating)
	assert.Equal(t, now.Add(-time.Hour), groups[1].LatestDate)

	assert.Equal(t, UnnamedProduct, groups[2].ProductName)

	total := 0
	for _, g := range groups {
		total += g.ReviewCount
	}

	assert.Equal(t, len(reviews), total, "every review lands in exactly one group")
}

func TestGroupByProductEmptyAndPure(t *testing.T) {
	assert.Empty(t, GroupByProduct(nil))

	reviews := []models.Review{rv("a", 5, now), rv("b", 1, now)}
	first := GroupByProduct(reviews)
	second := GroupByProduct(reviews)

	assert.Equal(t, first, second)
	assert.Equal(t, "a", reviews[0].ProductID)
}

func TestGrowthPercent(t *testing.T) {
	assert.InDelta(t, 0.0, GrowthPercent(0, 0), 0)
	assert.InDelta(t, 100.0, GrowthPercent(3, 0), 0)
	assert.InDelta(t, 50.0, GrowthPercent(15, 10), 0)
	assert.InDelta(t, -50.0, GrowthPercent(5, 10), 0)
	assert.InDelta(t, 33.3, GrowthPercent(4, 3), 1e-9)

	for _, c := range []int{0, 1, 7} {
		p := GrowthPercent(c, 0)
		assert.False(t, math.IsNaN(p) || math.IsInf(p, 0))
	}
}

func TestMonthOverMonthGrowth(t *testing.T) {
	thisMonth := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	reviews := []models.Review{
		rv("a", 5, now),
		rv("a", 5, thisMonth),                        // first instant of this month
		rv("a", 5, thisMonth.Add(-time.Nanosecond)),  // last instant of last month
		rv("a", 5, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)),
		rv("a", 5, time.Date(2026, time.January, 31, 23, 0, 0, 0, time.UTC)), // two months ago
	}

	g := MonthOverMonthGrowth(reviews, now)

	assert.Equal(t, 2, g.Current)
	assert.Equal(t, 2, g.Previous)
	assert.InDelta(t, 0.0, g.Percent, 0)
}

func TestMonthOverMonthGrowthAcrossYear(t *testing.T) {
	jan := time.Date(2027, time.January, 10, 0, 0, 0, 0, time.UTC)

	reviews := []models.Review{
		rv("a", 5, jan),
		rv("a", 5, jan.Add(-time.Hour)),
		rv("a", 5, time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)),
	}

	g := MonthOverMonthGrowth(reviews, jan)

	assert.Equal(t, 2, g.Current)
	assert.Equal(t, 1, g.Previous)
	assert.InDelta(t, 100.0, g.Percent, 0)
}

func TestMonthOverMonthGrowthNoPrevious(t *testing.T) {
	assert.InDelta(t, 0.0, MonthOverMonthGrowth(nil, now).Percent, 0)
	assert.InDelta(t, 100.0, MonthOverMonthGrowth([]models.Review{rv("a", 1, now)}, now).Percent, 0)
}
