package model

import "time"

type HypemanWallet struct {
	HypemanID string    `gorm:"column:hypeman_id;primaryKey;type:varchar(128)"`
	Balance   int64     `gorm:"column:balance;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (HypemanWallet) TableName() string {
	return "hypeman_wallets"
}

type WalletEntry struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement;<-:create"`
	HypemanID string    `gorm:"column:hypeman_id;type:varchar(128);index;not null"`
	Reference string    `gorm:"column:reference;type:varchar(100);uniqueIndex;not null"`
	BookingID string    `gorm:"column:booking_id;type:varchar(128);not null"`
	Amount    int64     `gorm:"column:amount;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (WalletEntry) TableName() string {
	return "wallet_entries"
}
