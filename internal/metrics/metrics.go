package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kinetica_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kinetica_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kinetica_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kinetica_auth_attempts_total",
			Help: "Total number of register, login and refresh attempts",
		},
		[]string{"action", "result"},
	)

	PurchasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kinetica_purchases_total",
			Help: "Total number of member package purchases",
		},
		[]string{"payment_method", "payment_status"},
	)

	SessionTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kinetica_session_transitions_total",
			Help: "Total number of session status changes",
		},
		[]string{"from", "to"},
	)

	LedgerAdjustmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kinetica_ledger_adjustments_total",
			Help: "Total number of sessions_remaining adjustments made by the session state machine",
		},
		[]string{"direction"},
	)

	LedgerClampedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kinetica_ledger_clamped_total",
			Help: "Total number of adjustments that hit the 0 floor or the sessions_total ceiling",
		},
	)

	LedgerOverridesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kinetica_ledger_overrides_total",
			Help: "Total number of administrative sessions_remaining overrides",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordRateLimited() {
	RateLimitedTotal.Inc()
}

func RecordAuthAttempt(action string, ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	AuthAttemptsTotal.WithLabelValues(action, result).Inc()
}

func RecordPurchase(paymentMethod, paymentStatus string) {
	PurchasesTotal.WithLabelValues(paymentMethod, paymentStatus).Inc()
}

func RecordSessionTransition(from, to string) {
	SessionTransitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordLedgerAdjustment counts one state-machine adjustment. direction is
// "debit" or "credit".
func RecordLedgerAdjustment(direction string, clamped bool) {
	LedgerAdjustmentsTotal.WithLabelValues(direction).Inc()
	if clamped {
		LedgerClampedTotal.Inc()
	}
}

func RecordLedgerOverride() {
	LedgerOverridesTotal.Inc()
}
