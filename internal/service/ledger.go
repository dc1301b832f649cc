package service

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/hypeconnect/internal/constants"
	"github.com/Behyna/hypeconnect/internal/metrics"
	"github.com/Behyna/hypeconnect/internal/model"
	"github.com/Behyna/hypeconnect/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const reconcileBatchSize = 500

type LedgerService interface {
	RecordInitialized(ctx context.Context, cmd RecordInitializedCommand) (*model.TransactionRecord, error)
	MarkVerified(ctx context.Context, reference, gatewayResponse string) error
	MarkCompleted(ctx context.Context, reference string) error
	MarkFailed(ctx context.Context, reference, reason string) error
	MarkRejected(ctx context.Context, reference, reason string) error
	Get(ctx context.Context, reference string) (*model.TransactionRecord, error)
	GetForUser(ctx context.Context, userID string, limit int) ([]model.TransactionRecord, error)
	GetStats(ctx context.Context) (TransactionStats, error)
	GetRecentFailures(ctx context.Context, hoursBack int) ([]model.TransactionRecord, error)
	FindDuplicateAttempts(ctx context.Context, userID string, withinMinutes int) ([]model.TransactionRecord, error)
	Reconcile(ctx context.Context) (ReconcileReport, error)
}

type ledger struct {
	txRepo  repository.TransactionRepository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewLedgerService(txRepo repository.TransactionRepository, m *metrics.Metrics, logger *zap.Logger) LedgerService {
	return &ledger{txRepo: txRepo, metrics: m, logger: logger}
}

func (l *ledger) RecordInitialized(ctx context.Context, cmd RecordInitializedCommand) (*model.TransactionRecord, error) {
	record := &model.TransactionRecord{
		Reference:      cmd.Reference,
		UserID:         cmd.UserID,
		Email:          cmd.Email,
		ExpectedAmount: cmd.ExpectedAmount,
		Metadata:       cmd.Metadata,
		Status:         model.TxStatusInitialized,
		InitiatedAt:    time.Now(),
		UpdatedAt:      time.Now(),
	}

	err := l.txRepo.Create(ctx, record)
	if err == nil {
		l.metrics.RecordLedgerTransition(string(model.TxStatusInitialized))
		return record, nil
	}

	l.metrics.RecordLedgerWriteError("initialize")

	if errors.Is(err, repository.ErrTransactionExisted) {
		l.logger.Error("Payment reference already recorded",
			zap.String("reference", cmd.Reference),
			zap.String("userID", cmd.UserID))
		return nil, NewServiceError(constants.ErrCodeDuplicateReference, ErrTransactionExists)
	}

	l.logger.Error("Failed to record initialized transaction",
		zap.String("reference", cmd.Reference),
		zap.Error(err))

	return nil, NewServiceError(constants.ErrCodeLedgerWrite, err)
}

func (l *ledger) MarkVerified(ctx context.Context, reference, gatewayResponse string) error {
	return l.transition(ctx, reference, model.TxStatusVerified, func(update *model.TransactionRecord, now time.Time) {
		update.VerifiedAt = &now
		if gatewayResponse != "" {
			update.GatewayResponse = &gatewayResponse
		}
	})
}

func (l *ledger) MarkCompleted(ctx context.Context, reference string) error {
	return l.transition(ctx, reference, model.TxStatusCompleted, func(update *model.TransactionRecord, now time.Time) {
		update.CompletedAt = &now
	})
}

func (l *ledger) MarkFailed(ctx context.Context, reference, reason string) error {
	return l.transition(ctx, reference, model.TxStatusFailed, func(update *model.TransactionRecord, now time.Time) {
		update.FailedAt = &now
		update.FailureReason = &reason
	})
}

func (l *ledger) MarkRejected(ctx context.Context, reference, reason string) error {
	return l.transition(ctx, reference, model.TxStatusRejected, func(update *model.TransactionRecord, now time.Time) {
		update.RejectedAt = &now
		update.FailureReason = &reason
	})
}

// transition reads the current status, checks the edge and writes the new
// status only if the stored status is still the one that was read.
func (l *ledger) transition(ctx context.Context, reference string, to model.TxStatus,
	fill func(update *model.TransactionRecord, now time.Time)) error {
	record, err := l.txRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return NewServiceError(constants.ErrCodeTransactionNotFound, ErrTransactionNotFound)
		}

		l.metrics.RecordLedgerWriteError(string(to))
		l.logger.Error("Failed to read transaction before status update",
			zap.String("reference", reference),
			zap.String("to", string(to)),
			zap.Error(err))
		return NewServiceError(constants.ErrCodeLedgerWrite, err)
	}

	next, err := record.Status.Transition(to)
	if err != nil {
		l.logger.Warn("Rejected ledger status transition",
			zap.String("reference", reference),
			zap.String("from", string(record.Status)),
			zap.String("to", string(to)))
		return err
	}

	now := time.Now()
	update := &model.TransactionRecord{Status: next, UpdatedAt: now}
	fill(update, now)

	err = l.txRepo.UpdateStatus(ctx, reference, record.Status, update)
	if err == nil {
		l.metrics.RecordLedgerTransition(string(next))
		return nil
	}

	if errors.Is(err, repository.ErrNoRowsAffected) {
		l.logger.Warn("Ledger status changed concurrently",
			zap.String("reference", reference),
			zap.String("expected", string(record.Status)),
			zap.String("to", string(to)))
		return ErrConcurrentUpdate
	}

	l.metrics.RecordLedgerWriteError(string(to))
	l.logger.Error("Failed to update transaction status",
		zap.String("reference", reference),
		zap.String("to", string(to)),
		zap.Error(err))

	return NewServiceError(constants.ErrCodeLedgerWrite, err)
}

func (l *ledger) Get(ctx context.Context, reference string) (*model.TransactionRecord, error) {
	record, err := l.txRepo.GetByReference(ctx, reference)
	if err == nil {
		return record, nil
	}

	if errors.Is(err, repository.ErrTransactionNotFound) {
		return nil, NewServiceError(constants.ErrCodeTransactionNotFound, ErrTransactionNotFound)
	}

	l.logger.Error("Failed to get transaction", zap.String("reference", reference), zap.Error(err))
	return nil, NewServiceError(ErrCodeDatabase, err)
}

func (l *ledger) GetForUser(ctx context.Context, userID string, limit int) ([]model.TransactionRecord, error) {
	records, err := l.txRepo.FindByUserID(ctx, userID, limit)
	if err != nil {
		l.logger.Error("Failed to get user transactions", zap.String("userID", userID), zap.Error(err))
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	return records, nil
}

func (l *ledger) GetStats(ctx context.Context) (TransactionStats, error) {
	rows, err := l.txRepo.AggregateByStatus(ctx)
	if err != nil {
		l.logger.Error("Failed to aggregate transactions", zap.Error(err))
		return TransactionStats{}, NewServiceError(ErrCodeDatabase, err)
	}

	stats := TransactionStats{
		ByStatus:      make(map[model.TxStatus]int64, len(rows)),
		AverageAmount: decimal.Zero,
	}

	for _, row := range rows {
		stats.ByStatus[row.Status] = row.Count
		stats.Total += row.Count
		stats.TotalAmount += row.TotalAmount
	}

	if stats.Total > 0 {
		stats.AverageAmount = decimal.NewFromInt(stats.TotalAmount).
			DivRound(decimal.NewFromInt(stats.Total), 2)
	}

	return stats, nil
}

func (l *ledger) GetRecentFailures(ctx context.Context, hoursBack int) ([]model.TransactionRecord, error) {
	since := time.Now().Add(-time.Duration(hoursBack) * time.Hour)

	records, err := l.txRepo.FindFailedSince(ctx, since)
	if err != nil {
		l.logger.Error("Failed to get recent failures", zap.Int("hoursBack", hoursBack), zap.Error(err))
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	return records, nil
}

func (l *ledger) FindDuplicateAttempts(ctx context.Context, userID string, withinMinutes int) ([]model.TransactionRecord, error) {
	since := time.Now().Add(-time.Duration(withinMinutes) * time.Minute)

	records, err := l.txRepo.FindOpenByUserSince(ctx, userID, since)
	if err != nil {
		l.logger.Error("Failed to find duplicate attempts", zap.String("userID", userID), zap.Error(err))
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	return records, nil
}

// Reconcile checks every record against the fields its status guarantees.
// It does not compare against the gateway.
func (l *ledger) Reconcile(ctx context.Context) (ReconcileReport, error) {
	report := ReconcileReport{Issues: []ReconcileIssue{}}

	err := l.txRepo.FindInBatches(ctx, reconcileBatchSize, func(batch []model.TransactionRecord) error {
		for i := range batch {
			report.Checked++
			for _, issue := range recordIssues(&batch[i]) {
				report.Issues = append(report.Issues, ReconcileIssue{
					Reference: batch[i].Reference,
					Status:    batch[i].Status,
					Issue:     issue,
				})
			}
		}
		return nil
	})
	if err != nil {
		l.logger.Error("Failed to reconcile transactions", zap.Error(err))
		return ReconcileReport{}, NewServiceError(ErrCodeDatabase, err)
	}

	l.logger.Info("Ledger reconciliation finished",
		zap.Int64("checked", report.Checked),
		zap.Int("issues", len(report.Issues)))

	return report, nil
}

func recordIssues(r *model.TransactionRecord) []string {
	var issues []string

	if r.UserID == "" {
		issues = append(issues, "missing userId")
	}
	if r.Email == "" {
		issues = append(issues, "missing email")
	}
	if r.ExpectedAmount <= 0 {
		issues = append(issues, "non-positive expectedAmount")
	}

	switch r.Status {
	case model.TxStatusVerified:
		if r.VerifiedAt == nil {
			issues = append(issues, "verified without verifiedAt")
		}
	case model.TxStatusCompleted:
		if r.CompletedAt == nil {
			issues = append(issues, "completed without completedAt")
		}
	case model.TxStatusFailed:
		if r.FailedAt == nil {
			issues = append(issues, "failed without failedAt")
		}
		if r.FailureReason == nil || *r.FailureReason == "" {
			issues = append(issues, "failed without failureReason")
		}
	case model.TxStatusRejected:
		if r.RejectedAt == nil {
			issues = append(issues, "rejected without rejectedAt")
		}
		if r.FailureReason == nil || *r.FailureReason == "" {
			issues = append(issues, "rejected without failureReason")
		}
	case model.TxStatusInitialized:
	default:
		issues = append(issues, "unknown status")
	}

	return issues
}
