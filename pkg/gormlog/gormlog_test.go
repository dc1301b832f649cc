package gormlog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Behyna/hypeconnect/pkg/gormlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		in   string
		want gormLogger.LogLevel
	}{
		{in: "silent", want: gormLogger.Silent},
		{in: "error", want: gormLogger.Error},
		{in: "warn", want: gormLogger.Warn},
		{in: "info", want: gormLogger.Info},
		{in: "", want: gormLogger.Warn},
		{in: "verbose", want: gormLogger.Warn},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, gormlog.ParseLevel(tc.in))
		})
	}
}

func TestLogger_Trace(t *testing.T) {
	ctx := context.Background()
	statement := func() (string, int64) { return "UPDATE bookings SET status = 'processing'", 1 }

	testCases := []struct {
		name    string
		level   string
		begin   time.Time
		err     error
		entries int
		lvl     zapcore.Level
		msg     string
	}{
		{name: "failed statement", level: "warn", begin: time.Now(), err: errors.New("deadlock"),
			entries: 1, lvl: zapcore.ErrorLevel, msg: "SQL statement failed"},
		{name: "not found is quiet", level: "warn", begin: time.Now(), err: gorm.ErrRecordNotFound},
		{name: "slow statement", level: "warn", begin: time.Now().Add(-2 * time.Second),
			entries: 1, lvl: zapcore.WarnLevel, msg: "Slow SQL statement"},
		{name: "fast statement at warn", level: "warn", begin: time.Now()},
		{name: "fast statement at info", level: "info", begin: time.Now(),
			entries: 1, lvl: zapcore.DebugLevel, msg: "SQL statement"},
		{name: "silent drops failures", level: "silent", begin: time.Now(), err: errors.New("deadlock")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			l := gormlog.New(zap.New(core), tc.level)

			l.Trace(ctx, tc.begin, statement, tc.err)

			require.Equal(t, tc.entries, logs.Len())
			if tc.entries == 0 {
				return
			}
			entry := logs.All()[0]
			assert.Equal(t, tc.lvl, entry.Level)
			assert.Equal(t, tc.msg, entry.Message)
			assert.Equal(t, "UPDATE bookings SET status = 'processing'", entry.ContextMap()["sql"])
		})
	}
}

func TestLogger_LogMode(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := gormlog.New(zap.New(core), "warn")

	quiet := base.LogMode(gormLogger.Silent)
	quiet.Warn(context.Background(), "pool %s", "exhausted")
	assert.Zero(t, logs.Len())

	base.Warn(context.Background(), "pool %s", "exhausted")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "pool exhausted", logs.All()[0].Message)
}

func TestLogger_WithSlowThreshold(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := gormlog.New(zap.New(core), "warn").WithSlowThreshold(10 * time.Millisecond)

	l.Trace(context.Background(), time.Now().Add(-50*time.Millisecond),
		func() (string, int64) { return "SELECT 1", 1 }, nil)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Slow SQL statement", logs.All()[0].Message)
}
