package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/hypeconnect/internal/model"
	"gorm.io/gorm"
)

var (
	ErrTransactionExisted  = errors.New("TRANSACTION_EXISTED")
	ErrTransactionNotFound = errors.New("TRANSACTION_NOT_FOUND")
)

type StatusAggregate struct {
	Status      model.TxStatus
	Count       int64
	TotalAmount int64
}

type TransactionRepository interface {
	Create(ctx context.Context, record *model.TransactionRecord) error
	GetByReference(ctx context.Context, reference string) (*model.TransactionRecord, error)
	UpdateStatus(ctx context.Context, reference string, from model.TxStatus, update *model.TransactionRecord) error
	FindByUserID(ctx context.Context, userID string, limit int) ([]model.TransactionRecord, error)
	AggregateByStatus(ctx context.Context) ([]StatusAggregate, error)
	FindFailedSince(ctx context.Context, since time.Time) ([]model.TransactionRecord, error)
	FindOpenByUserSince(ctx context.Context, userID string, since time.Time) ([]model.TransactionRecord, error)
	FindInBatches(ctx context.Context, batchSize int, fn func(batch []model.TransactionRecord) error) error
}

type transaction struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transaction{db: db}
}

func (t *transaction) Create(ctx context.Context, record *model.TransactionRecord) error {
	db := GetTx(ctx, t.db)
	err := db.Create(record).Error
	if err == nil {
		return nil
	}

	if isDuplicateKey(err) {
		return ErrTransactionExisted
	}

	return err
}

func (t *transaction) GetByReference(ctx context.Context, reference string) (*model.TransactionRecord, error) {
	var record model.TransactionRecord

	err := GetTx(ctx, t.db).Where("reference = ?", reference).First(&record).Error
	if err == nil {
		return &record, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}

	return nil, err
}

// UpdateStatus applies the non-zero fields of update only while the record
// is still in status from.
func (t *transaction) UpdateStatus(ctx context.Context, reference string, from model.TxStatus,
	update *model.TransactionRecord) error {
	db := GetTx(ctx, t.db)
	result := db.Model(&model.TransactionRecord{}).
		Where("reference = ? AND status = ?", reference, from).
		Updates(update)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

func (t *transaction) FindByUserID(ctx context.Context, userID string, limit int) ([]model.TransactionRecord, error) {
	var records []model.TransactionRecord

	err := GetTx(ctx, t.db).Where("user_id = ?", userID).
		Order("initiated_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (t *transaction) AggregateByStatus(ctx context.Context) ([]StatusAggregate, error) {
	var rows []StatusAggregate

	err := GetTx(ctx, t.db).Model(&model.TransactionRecord{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(expected_amount), 0) AS total_amount").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (t *transaction) FindFailedSince(ctx context.Context, since time.Time) ([]model.TransactionRecord, error) {
	var records []model.TransactionRecord

	err := GetTx(ctx, t.db).
		Where("(status = ? AND failed_at >= ?) OR (status = ? AND rejected_at >= ?)",
			model.TxStatusFailed, since, model.TxStatusRejected, since).
		Order("updated_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (t *transaction) FindOpenByUserSince(ctx context.Context, userID string, since time.Time) ([]model.TransactionRecord, error) {
	var records []model.TransactionRecord

	err := GetTx(ctx, t.db).
		Where("user_id = ? AND status IN (?, ?) AND initiated_at >= ?",
			userID, model.TxStatusInitialized, model.TxStatusVerified, since).
		Order("initiated_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (t *transaction) FindInBatches(ctx context.Context, batchSize int, fn func(batch []model.TransactionRecord) error) error {
	var batch []model.TransactionRecord

	return GetTx(ctx, t.db).Model(&model.TransactionRecord{}).
		FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
			return fn(batch)
		}).Error
}
