// Package metrics exposes the business counters of the review service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReviewsSubmitted counts created reviews by source (storefront, admin).
	ReviewsSubmitted = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "reviews_submitted_total",
			Help: "Number of reviews created, by source.",
		},
		[]string{"source"},
	)

	// ModerationActions counts status changes by action.
	ModerationActions = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "review_moderation_actions_total",
			Help: "Number of review status changes, by moderation action.",
		},
		[]string{"action"},
	)

	// RepliesSet counts merchant replies written.
	RepliesSet = promauto.NewCounter( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "review_replies_total",
			Help: "Number of merchant replies set on reviews.",
		},
	)

	// SettingsSaved counts widget settings upserts.
	SettingsSaved = promauto.NewCounter( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "widget_settings_saved_total",
			Help: "Number of widget settings documents saved.",
		},
	)
)

// Review sources.
const (
	SourceStorefront = "storefront"
	SourceAdmin      = "admin"
)
