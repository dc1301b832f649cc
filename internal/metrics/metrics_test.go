package metrics_test

import (
	"testing"
	"time"

	"github.com/Behyna/hypeconnect/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestNewMetrics_RegistersOncePerRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.NewMetrics(reg)

	assert.Panics(t, func() { metrics.NewMetrics(reg) })
	assert.NotPanics(t, func() { metrics.NewMetrics(prometheus.NewRegistry()) })
}

func TestRecordSettlement(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())

	m.RecordSettlement("success", 25000)
	m.RecordSettlement("error", 30000)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.SettlementsTotal.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SettlementsTotal.WithLabelValues("error")))
	assert.Equal(t, float64(25000), testutil.ToFloat64(m.SettledAmount))
}

func TestRecordWebhookAndLock(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())

	m.RecordWebhookEvent("charge.success", "completed", 20*time.Millisecond)
	m.RecordLockAttempt("acquired")
	m.RecordLockAttempt("not_acquired")
	m.RecordLockAttempt("not_acquired")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.WebhookEvents.WithLabelValues("charge.success", "completed")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.BookingLockAttempts.WithLabelValues("not_acquired")))
}

func TestCollector_HealthCheck(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:collector?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	m := metrics.NewMetrics(prometheus.NewRegistry())
	collector := metrics.NewCollector(m, zap.NewNop(), db)

	require.NoError(t, collector.HealthCheck())
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DBQueriesTotal.WithLabelValues("ping", "health_check", "success")))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	assert.Error(t, collector.HealthCheck())
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DBConnectionErrors))
}

func TestCollector_StartStop(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:collector_loop?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	m := metrics.NewMetrics(prometheus.NewRegistry())
	collector := metrics.NewCollector(m, zap.NewNop(), db)

	collector.Start(5*time.Millisecond, "1.2.3")
	time.Sleep(20 * time.Millisecond)
	collector.Stop()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ServiceVersion.WithLabelValues("1.2.3", "unknown", time.Now().Format("2006-01-02"))))
}
