package repository_test

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Behyna/hypeconnect/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	return openTestDB(t, dsn, 1)
}

// newPooledTestDB opens a file database with several connections, so
// concurrent callers really run on separate connections.
func newPooledTestDB(t *testing.T, conns int) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bookings.db")
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)

	return openTestDB(t, dsn, conns)
}

func openTestDB(t *testing.T, dsn string, conns int) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(conns)

	require.NoError(t, db.AutoMigrate(
		&model.TransactionRecord{},
		&model.FraudAlert{},
		&model.Booking{},
		&model.HypemanWallet{},
		&model.WalletEntry{},
	))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}
