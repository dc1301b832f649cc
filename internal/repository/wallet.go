package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/hypeconnect/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrWalletEntryExisted = errors.New("WALLET_ENTRY_EXISTED")
	ErrWalletNotFound     = errors.New("WALLET_NOT_FOUND")
)

type WalletRepository interface {
	Credit(ctx context.Context, entry *model.WalletEntry) error
	FindByHypemanID(ctx context.Context, hypemanID string) (model.HypemanWallet, error)
}

type wallet struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &wallet{db: db}
}

// Credit records the entry and adds its amount to the hypeman balance. The
// entry reference is unique, so a reference is credited at most once. A
// conflicting entry is skipped rather than failed so an open transaction
// stays usable.
func (w *wallet) Credit(ctx context.Context, entry *model.WalletEntry) error {
	db := GetTx(ctx, w.db)

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return ErrWalletEntryExisted
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrWalletEntryExisted
	}

	now := time.Now()
	hw := model.HypemanWallet{
		HypemanID: entry.HypemanID,
		Balance:   entry.Amount,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "hypeman_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"balance":    gorm.Expr("hypeman_wallets.balance + ?", entry.Amount),
			"updated_at": now,
		}),
	}).Create(&hw).Error
}

func (w *wallet) FindByHypemanID(ctx context.Context, hypemanID string) (model.HypemanWallet, error) {
	var hw model.HypemanWallet

	err := GetTx(ctx, w.db).Where("hypeman_id = ?", hypemanID).First(&hw).Error
	if err == nil {
		return hw, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.HypemanWallet{}, ErrWalletNotFound
	}

	return model.HypemanWallet{}, err
}
