package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parking_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "parking_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	StayEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parking_stay_events_total",
			Help: "Total number of stay lifecycle transitions",
		},
		[]string{"event"},
	)

	StayConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parking_stay_conflicts_total",
			Help: "Total number of rejected entries and activations",
		},
		[]string{"reason"},
	)

	FeesCollectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "parking_fees_collected_total",
			Help: "Sum of confirmed parking fees",
		},
	)

	PromotionsAppliedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parking_promotions_applied_total",
			Help: "Total number of paid stays discounted by a promotion",
		},
		[]string{"kind"},
	)

	ReservationsExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "parking_reservations_expired_total",
			Help: "Total number of pending reservations removed by the sweep",
		},
	)

	SpotsByState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "parking_spots",
			Help: "Number of catalog spots per state at the last availability query",
		},
		[]string{"state"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parking_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "parking_email_queue_length",
			Help: "Current length of email queue",
		},
	)

	MembershipsPurchasedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parking_memberships_purchased_total",
			Help: "Total number of membership purchases and renewals",
		},
		[]string{"plan"},
	)

	FeedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "parking_feed_clients",
			Help: "Number of connected availability feed clients",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordStayEvent(event string) {
	StayEventsTotal.WithLabelValues(event).Inc()
}

func RecordConflict(reason string) {
	StayConflictsTotal.WithLabelValues(reason).Inc()
}

// RecordPayment adds a confirmed fee. promotionKind is empty when no
// promotion applied.
func RecordPayment(fee float64, promotionKind string) {
	FeesCollectedTotal.Add(fee)
	if promotionKind != "" {
		PromotionsAppliedTotal.WithLabelValues(promotionKind).Inc()
	}
}

func RecordExpiredReservations(n int64) {
	if n > 0 {
		ReservationsExpiredTotal.Add(float64(n))
	}
}

func SetSpotCounts(occupied, reserved, available int) {
	SpotsByState.WithLabelValues("occupied").Set(float64(occupied))
	SpotsByState.WithLabelValues("reserved").Set(float64(reserved))
	SpotsByState.WithLabelValues("available").Set(float64(available))
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func RecordMembership(plan string) {
	MembershipsPurchasedTotal.WithLabelValues(plan).Inc()
}
