package database

import (
	"fmt"

	"github.com/Behyna/hypeconnect/internal/config"
	"github.com/Behyna/hypeconnect/internal/model"
	"github.com/Behyna/hypeconnect/pkg/mysql"
	"github.com/Behyna/hypeconnect/pkg/postgres"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewConnection(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case config.DriverMySQL:
		return mysql.NewConnection(cfg.Database.Mysql, logger)
	case config.DriverPostgres:
		return postgres.NewConnection(cfg.Database.Postgres, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// Migrate creates or updates the payment tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.TransactionRecord{},
		&model.FraudAlert{},
		&model.Booking{},
		&model.HypemanWallet{},
		&model.WalletEntry{},
	)
}
