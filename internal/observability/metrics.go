// Package observability provides prometheus metrics for domain operations.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SignupsTotal counts successful account creations.
	SignupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "curiouslife_signups_total",
		Help: "Total number of successful signups",
	})

	// LikeTogglesTotal counts like toggles by resulting state.
	LikeTogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "curiouslife_like_toggles_total",
		Help: "Total number of like toggles by resulting state",
	}, []string{"result"})

	// ModerationActionsTotal counts admin moderation actions by kind.
	ModerationActionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "curiouslife_moderation_actions_total",
		Help: "Total number of admin moderation actions by kind",
	}, []string{"action"})

	// ContactEmailsTotal counts contact-form email deliveries by outcome.
	ContactEmailsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "curiouslife_contact_emails_total",
		Help: "Total number of contact emails by outcome",
	}, []string{"outcome"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "curiouslife_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// RecordLikeToggle increments the like-toggle counter for the resulting state.
func RecordLikeToggle(liked bool) {
	result := "unliked"
	if liked {
		result = "liked"
	}
	LikeTogglesTotal.WithLabelValues(result).Inc()
}
