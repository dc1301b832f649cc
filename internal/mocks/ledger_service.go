package mocks

import (
	"context"

	"github.com/Behyna/hypeconnect/internal/model"
	"github.com/Behyna/hypeconnect/internal/service"
	"github.com/stretchr/testify/mock"
)

type LedgerService struct {
	mock.Mock
}

func (l *LedgerService) RecordInitialized(ctx context.Context, cmd service.RecordInitializedCommand) (*model.TransactionRecord, error) {
	args := l.Called(ctx, cmd)
	record, _ := args.Get(0).(*model.TransactionRecord)
	return record, args.Error(1)
}

func (l *LedgerService) MarkVerified(ctx context.Context, reference, gatewayResponse string) error {
	args := l.Called(ctx, reference, gatewayResponse)
	return args.Error(0)
}

func (l *LedgerService) MarkCompleted(ctx context.Context, reference string) error {
	args := l.Called(ctx, reference)
	return args.Error(0)
}

func (l *LedgerService) MarkFailed(ctx context.Context, reference, reason string) error {
	args := l.Called(ctx, reference, reason)
	return args.Error(0)
}

func (l *LedgerService) MarkRejected(ctx context.Context, reference, reason string) error {
	args := l.Called(ctx, reference, reason)
	return args.Error(0)
}

func (l *LedgerService) Get(ctx context.Context, reference string) (*model.TransactionRecord, error) {
	args := l.Called(ctx, reference)
	record, _ := args.Get(0).(*model.TransactionRecord)
	return record, args.Error(1)
}

func (l *LedgerService) GetForUser(ctx context.Context, userID string, limit int) ([]model.TransactionRecord, error) {
	args := l.Called(ctx, userID, limit)
	records, _ := args.Get(0).([]model.TransactionRecord)
	return records, args.Error(1)
}

func (l *LedgerService) GetStats(ctx context.Context) (service.TransactionStats, error) {
	args := l.Called(ctx)
	return args.Get(0).(service.TransactionStats), args.Error(1)
}

func (l *LedgerService) GetRecentFailures(ctx context.Context, hoursBack int) ([]model.TransactionRecord, error) {
	args := l.Called(ctx, hoursBack)
	records, _ := args.Get(0).([]model.TransactionRecord)
	return records, args.Error(1)
}

func (l *LedgerService) FindDuplicateAttempts(ctx context.Context, userID string, withinMinutes int) ([]model.TransactionRecord, error) {
	args := l.Called(ctx, userID, withinMinutes)
	records, _ := args.Get(0).([]model.TransactionRecord)
	return records, args.Error(1)
}

func (l *LedgerService) Reconcile(ctx context.Context) (service.ReconcileReport, error) {
	args := l.Called(ctx)
	return args.Get(0).(service.ReconcileReport), args.Error(1)
}
