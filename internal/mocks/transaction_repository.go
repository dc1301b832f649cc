package mocks

import (
	"context"
	"time"

	"github.com/Behyna/hypeconnect/internal/model"
	"github.com/Behyna/hypeconnect/internal/repository"
	"github.com/stretchr/testify/mock"
)

type TransactionRepository struct {
	mock.Mock
}

func (t *TransactionRepository) Create(ctx context.Context, record *model.TransactionRecord) error {
	args := t.Called(ctx, record)
	return args.Error(0)
}

func (t *TransactionRepository) GetByReference(ctx context.Context, reference string) (*model.TransactionRecord, error) {
	args := t.Called(ctx, reference)
	record, _ := args.Get(0).(*model.TransactionRecord)
	return record, args.Error(1)
}

func (t *TransactionRepository) UpdateStatus(ctx context.Context, reference string, from model.TxStatus,
	update *model.TransactionRecord) error {
	args := t.Called(ctx, reference, from, update)
	return args.Error(0)
}

func (t *TransactionRepository) FindByUserID(ctx context.Context, userID string, limit int) ([]model.TransactionRecord, error) {
	args := t.Called(ctx, userID, limit)
	records, _ := args.Get(0).([]model.TransactionRecord)
	return records, args.Error(1)
}

func (t *TransactionRepository) AggregateByStatus(ctx context.Context) ([]repository.StatusAggregate, error) {
	args := t.Called(ctx)
	rows, _ := args.Get(0).([]repository.StatusAggregate)
	return rows, args.Error(1)
}

func (t *TransactionRepository) FindFailedSince(ctx context.Context, since time.Time) ([]model.TransactionRecord, error) {
	args := t.Called(ctx, since)
	records, _ := args.Get(0).([]model.TransactionRecord)
	return records, args.Error(1)
}

func (t *TransactionRepository) FindOpenByUserSince(ctx context.Context, userID string, since time.Time) ([]model.TransactionRecord, error) {
	args := t.Called(ctx, userID, since)
	records, _ := args.Get(0).([]model.TransactionRecord)
	return records, args.Error(1)
}

func (t *TransactionRepository) FindInBatches(ctx context.Context, batchSize int,
	fn func(batch []model.TransactionRecord) error) error {
	args := t.Called(ctx, batchSize, fn)
	if batches, ok := args.Get(0).([][]model.TransactionRecord); ok {
		for _, batch := range batches {
			if err := fn(batch); err != nil {
				return err
			}
		}
	}
	return args.Error(1)
}
