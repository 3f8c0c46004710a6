package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Login counter
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "platform_login_total",
			Help: "Total number of login attempts",
		},
	)

	// Authentication error counter
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platform_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // "missing_session", "session_expired", "invalid_credentials", etc.
	)

	// Tenant operation counter
	TenantOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platform_tenant_operations_total",
			Help: "Total number of tenant operations",
		},
		[]string{"operation"}, // "select", "switch", "suspend", "reactivate", etc.
	)

	// Content operation counter by entity type
	ContentOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platform_content_operations_total",
			Help: "Total number of content operations by entity and operation",
		},
		[]string{"entity", "operation"},
	)

	// Rate limiter decision counter
	RateLimitCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platform_rate_limit_decisions_total",
			Help: "Total number of rate limiter decisions by route and outcome",
		},
		[]string{"route", "outcome"}, // outcome is "allowed" or "limited"
	)

	// Lead capture counter
	LeadCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "platform_leads_total",
			Help: "Total number of marketing leads captured",
		},
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platform_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "platform_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "platform_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "query", "insert", "update", "delete"
	)
)

// Gauge metrics
var (
	// Active sessions
	ActiveSessionsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "platform_active_sessions",
			Help: "Number of currently active sessions",
		},
	)

	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "platform_info",
			Help: "Information about the platform service",
		},
		[]string{"version"},
	)

	// Rate limiter tracked keys
	RateLimitKeysGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "platform_rate_limit_keys",
			Help: "Number of keys currently tracked by the in-memory rate limiter",
		},
	)
)

func init() {
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(TenantOperationCounter)
	prometheus.MustRegister(ContentOperationCounter)
	prometheus.MustRegister(RateLimitCounter)
	prometheus.MustRegister(LeadCounter)
	prometheus.MustRegister(HTTPRequestCounter)

	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	prometheus.MustRegister(ActiveSessionsGauge)
	prometheus.MustRegister(InfoGauge)
	prometheus.MustRegister(RateLimitKeysGauge)

	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}

// IncreaseActiveSessions increments the active sessions gauge
func IncreaseActiveSessions() {
	ActiveSessionsGauge.Inc()
}

// DecreaseActiveSessions decrements the active sessions gauge
func DecreaseActiveSessions() {
	ActiveSessionsGauge.Dec()
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordTenantOperation records a tenant operation
func RecordTenantOperation(operation string) {
	TenantOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordContentOperation records a content operation by entity type
func RecordContentOperation(entity, operation string) {
	ContentOperationCounter.With(prometheus.Labels{"entity": entity, "operation": operation}).Inc()
}

// RecordRateLimit records a rate limiter decision
func RecordRateLimit(route string, allowed bool) {
	outcome := "allowed"
	if !allowed {
		outcome = "limited"
	}
	RateLimitCounter.With(prometheus.Labels{"route": route, "outcome": outcome}).Inc()
}

// UpdateRateLimitKeys updates the tracked-keys gauge
func UpdateRateLimitKeys(count int) {
	RateLimitKeysGauge.Set(float64(count))
}
