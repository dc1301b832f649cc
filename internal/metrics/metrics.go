package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestsInFlight  prometheus.Gauge
	HTTPResponseSizeBytes *prometheus.HistogramVec
	ValidationErrors      *prometheus.CounterVec
	SignatureFailures     prometheus.Counter

	// Payment Metrics
	PaymentsInitialized   prometheus.Counter
	DuplicateAttempts     prometheus.Counter
	LedgerTransitions     *prometheus.CounterVec
	LedgerWriteErrors     *prometheus.CounterVec
	WebhookEvents         *prometheus.CounterVec
	WebhookDuration       prometheus.Histogram
	FraudAlertsCreated    *prometheus.CounterVec
	FraudAlertErrors      prometheus.Counter
	BookingLockAttempts   *prometheus.CounterVec
	SettlementsTotal      *prometheus.CounterVec
	SettledAmount         prometheus.Counter
	AlertsPublished       prometheus.Counter
	AlertNotificationsErr prometheus.Counter

	// Database Metrics
	DBConnectionsInUse prometheus.Gauge
	DBConnectionsIdle  prometheus.Gauge
	DBQueryDuration    *prometheus.HistogramVec
	DBQueriesTotal     *prometheus.CounterVec
	DBConnectionErrors prometheus.Counter

	// System Metrics
	ServiceUptime    prometheus.Gauge
	ServiceVersion   *prometheus.GaugeVec
	Goroutines       prometheus.Gauge
	MemoryUsageBytes *prometheus.GaugeVec
}

// NewMetrics registers every collector on reg. The binaries pass
// prometheus.DefaultRegisterer; tests pass a fresh registry each.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hypeconnect_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hypeconnect_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "hypeconnect_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
		HTTPResponseSizeBytes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hypeconnect_http_response_size_bytes",
				Help:    "Size of HTTP responses in bytes",
				Buckets: []float64{100, 1000, 10_000, 100_000, 1_000_000},
			},
			[]string{"method", "path", "status_code"},
		),
		ValidationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hypeconnect_validation_errors_total",
				Help: "Total number of request validation errors",
			},
			[]string{"field", "tag"},
		),
		SignatureFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hypeconnect_webhook_signature_failures_total",
				Help: "Total number of webhook deliveries with a missing or invalid signature",
			},
		),

		// Payment Metrics
		PaymentsInitialized: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hypeconnect_payments_initialized_total",
				Help: "Total number of payment attempts initialized with the gateway",
			},
		),
		DuplicateAttempts: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hypeconnect_payment_duplicate_attempts_total",
				Help: "Total number of initializations flagged as possible double submission",
			},
		),
		LedgerTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hypeconnect_ledger_transitions_total",
				Help: "Total number of ledger status transitions",
			},
			[]string{"status"},
		),
		LedgerWriteErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hypeconnect_ledger_write_errors_total",
				Help: "Total number of failed ledger writes",
			},
			[]string{"operation"},
		),
		WebhookEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hypeconnect_webhook_events_total",
				Help: "Total number of gateway webhook events by outcome",
			},
			[]string{"event", "outcome"},
		),
		WebhookDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hypeconnect_webhook_duration_seconds",
				Help:    "Duration of webhook event handling in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		FraudAlertsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hypeconnect_fraud_alerts_total",
				Help: "Total number of fraud alerts created",
			},
			[]string{"type", "severity"},
		),
		FraudAlertErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hypeconnect_fraud_alert_errors_total",
				Help: "Total number of fraud alerts that could not be stored",
			},
		),
		BookingLockAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hypeconnect_booking_lock_attempts_total",
				Help: "Total number of booking lock attempts by result",
			},
			[]string{"result"},
		),
		SettlementsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hypeconnect_settlements_total",
				Help: "Total number of settlements by result",
			},
			[]string{"result"},
		),
		SettledAmount: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hypeconnect_settled_amount_total",
				Help: "Sum of settled amounts in major currency units",
			},
		),
		AlertsPublished: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hypeconnect_fraud_alerts_published_total",
				Help: "Total number of fraud alerts published to the queue",
			},
		),
		AlertNotificationsErr: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hypeconnect_fraud_alert_notification_errors_total",
				Help: "Total number of failed admin notifications",
			},
		),

		// Database Metrics
		DBConnectionsInUse: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "hypeconnect_db_connections_in_use",
				Help: "Number of database connections currently in use",
			},
		),
		DBConnectionsIdle: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "hypeconnect_db_connections_idle",
				Help: "Number of idle database connections",
			},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hypeconnect_db_query_duration_seconds",
				Help:    "Duration of database queries in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"operation", "table"},
		),
		DBQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hypeconnect_db_queries_total",
				Help: "Total number of database queries",
			},
			[]string{"operation", "table", "status"},
		),
		DBConnectionErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hypeconnect_db_connection_errors_total",
				Help: "Total number of database connection errors",
			},
		),

		// System Metrics
		ServiceUptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "hypeconnect_service_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
		ServiceVersion: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "hypeconnect_service_version_info",
				Help: "Service version information (labels: version, commit, build_date)",
			},
			[]string{"version", "commit", "build_date"},
		),
		Goroutines: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "hypeconnect_goroutines",
				Help: "Number of goroutines currently running",
			},
		),
		MemoryUsageBytes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "hypeconnect_memory_usage_bytes",
				Help: "Memory usage in bytes",
			},
			[]string{"type"},
		),
	}
}

// --- Recording Methods ---

func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration, responseSize int) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration.Seconds())
	m.HTTPResponseSizeBytes.WithLabelValues(method, path, statusCode).Observe(float64(responseSize))
}

func (m *Metrics) RecordValidationError(field, tag string) {
	m.ValidationErrors.WithLabelValues(field, tag).Inc()
}

func (m *Metrics) RecordSignatureFailure() {
	m.SignatureFailures.Inc()
}

func (m *Metrics) RecordPaymentInitialized() {
	m.PaymentsInitialized.Inc()
}

func (m *Metrics) RecordDuplicateAttempt() {
	m.DuplicateAttempts.Inc()
}

func (m *Metrics) RecordLedgerTransition(status string) {
	m.LedgerTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordLedgerWriteError(operation string) {
	m.LedgerWriteErrors.WithLabelValues(operation).Inc()
}

func (m *Metrics) RecordWebhookEvent(event, outcome string, duration time.Duration) {
	m.WebhookEvents.WithLabelValues(event, outcome).Inc()
	m.WebhookDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordFraudAlert(alertType, severity string) {
	m.FraudAlertsCreated.WithLabelValues(alertType, severity).Inc()
}

func (m *Metrics) RecordFraudAlertError() {
	m.FraudAlertErrors.Inc()
}

func (m *Metrics) RecordLockAttempt(result string) {
	m.BookingLockAttempts.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordSettlement(result string, amount int64) {
	m.SettlementsTotal.WithLabelValues(result).Inc()
	if result == "success" {
		m.SettledAmount.Add(float64(amount))
	}
}

func (m *Metrics) RecordAlertPublished() {
	m.AlertsPublished.Inc()
}

func (m *Metrics) RecordAlertNotificationError() {
	m.AlertNotificationsErr.Inc()
}

func (m *Metrics) RecordDBQuery(operation, table, status string, duration time.Duration) {
	m.DBQueriesTotal.WithLabelValues(operation, table, status).Inc()
	m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

func (m *Metrics) RecordDBConnectionError() {
	m.DBConnectionErrors.Inc()
}

// UpdateSystemMetrics updates system-level metrics (goroutines, uptime, memory).
func (m *Metrics) UpdateSystemMetrics(uptime time.Duration, memStats *runtime.MemStats) {
	m.ServiceUptime.Set(uptime.Seconds())
	m.Goroutines.Set(float64(runtime.NumGoroutine()))

	m.MemoryUsageBytes.WithLabelValues("alloc").Set(float64(memStats.Alloc))
	m.MemoryUsageBytes.WithLabelValues("sys").Set(float64(memStats.Sys))
	m.MemoryUsageBytes.WithLabelValues("heap_alloc").Set(float64(memStats.HeapAlloc))
	m.MemoryUsageBytes.WithLabelValues("heap_inuse").Set(float64(memStats.HeapInuse))
}

func (m *Metrics) SetServiceVersion(version, commit, buildDate string) {
	m.ServiceVersion.WithLabelValues(version, commit, buildDate).Set(1)
}
