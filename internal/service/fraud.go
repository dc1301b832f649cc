package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Behyna/hypeconnect/internal/constants"
	"github.com/Behyna/hypeconnect/internal/metrics"
	"github.com/Behyna/hypeconnect/internal/model"
	"github.com/Behyna/hypeconnect/internal/repository"
	"github.com/Behyna/hypeconnect/pkg/paystack"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultAlertLimit = 50
	maxAlertLimit     = 500
)

// criticalMetadataFields are compared between the ledger and the webhook,
// in this order.
var criticalMetadataFields = []string{
	model.MetaUserID,
	model.MetaBookingID,
	model.MetaEventID,
	model.MetaHypemanID,
}

type FraudService interface {
	ValidateAmount(ctx context.Context, reference string, actualAmount, maxVariance int64) ValidationResult
	ValidateMinorAmount(ctx context.Context, reference string, minorAmount, maxVariance int64) ValidationResult
	ValidateMetadata(ctx context.Context, reference string, webhookMetadata map[string]string) MetadataValidationResult
	IsAlreadyPaid(ctx context.Context, bookingID string) bool
	GetFraudAlerts(ctx context.Context, query GetAlertsQuery) ([]model.FraudAlert, error)
	ResolveFraudAlert(ctx context.Context, cmd ResolveAlertCommand) (*model.FraudAlert, error)
}

type fraud struct {
	txRepo      repository.TransactionRepository
	alertRepo   repository.FraudAlertRepository
	bookingRepo repository.BookingRepository
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

func NewFraudService(txRepo repository.TransactionRepository, alertRepo repository.FraudAlertRepository,
	bookingRepo repository.BookingRepository, m *metrics.Metrics, logger *zap.Logger) FraudService {
	return &fraud{txRepo: txRepo, alertRepo: alertRepo, bookingRepo: bookingRepo, metrics: m, logger: logger}
}

func (f *fraud) ValidateAmount(ctx context.Context, reference string, actualAmount, maxVariance int64) ValidationResult {
	return f.checkAmount(ctx, reference, decimal.NewFromInt(actualAmount), maxVariance)
}

// ValidateMinorAmount converts a kobo amount to major units before checking
// it. A fractional major amount never matches a whole-unit commitment.
func (f *fraud) ValidateMinorAmount(ctx context.Context, reference string, minorAmount, maxVariance int64) ValidationResult {
	return f.checkAmount(ctx, reference, paystack.ToMajor(minorAmount), maxVariance)
}

// checkAmount fails closed: no ledger entry, or no way to read it, is fraud.
// Whole-naira figures round the discrepancy away from zero so a fractional
// mismatch never reads as 0; the kobo figures are exact.
func (f *fraud) checkAmount(ctx context.Context, reference string, actual decimal.Decimal, maxVariance int64) ValidationResult {
	actualWhole := actual.Round(0).IntPart()
	actualMinor := paystack.ToMinorDecimal(actual)

	record, err := f.txRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			f.logger.Error("Webhook references unknown transaction",
				zap.String("reference", reference),
				zap.String("actualAmount", actual.String()))

			f.raiseAlert(ctx, &model.FraudAlert{
				Reference:      reference,
				Type:           model.AlertTypeUnknownTransaction,
				Severity:       model.SeverityCritical,
				ExpectedAmount:   0,
				ActualAmount:     actualWhole,
				Discrepancy:      actual.RoundUp(0).IntPart(),
				ActualMinor:      actualMinor,
				DiscrepancyMinor: actualMinor,
				Description:      fmt.Sprintf("payment of %s reported for a reference with no ledger entry", actual.String()),
			})

			return ValidationResult{
				FraudDetected:    true,
				ActualAmount:     actualWhole,
				Discrepancy:      actual.RoundUp(0).IntPart(),
				ActualMinor:      actualMinor,
				DiscrepancyMinor: actualMinor,
				Reason:           "unknown transaction",
			}
		}

		f.logger.Error("Failed to read ledger for amount validation",
			zap.String("reference", reference),
			zap.Error(err))

		return ValidationResult{
			FraudDetected: true,
			ActualAmount:  actualWhole,
			ActualMinor:   actualMinor,
			Reason:        "ledger unavailable",
		}
	}

	expected := decimal.NewFromInt(record.ExpectedAmount)
	discrepancy := actual.Sub(expected)

	result := ValidationResult{
		ExpectedAmount:   record.ExpectedAmount,
		ActualAmount:     actualWhole,
		Discrepancy:      discrepancy.RoundUp(0).IntPart(),
		ActualMinor:      actualMinor,
		DiscrepancyMinor: paystack.ToMinorDecimal(discrepancy),
	}

	if actual.IsInteger() && discrepancy.Abs().LessThanOrEqual(decimal.NewFromInt(maxVariance)) {
		result.Valid = true
		return result
	}

	result.FraudDetected = true
	result.Reason = fmt.Sprintf("amount mismatch: expected %s, got %s", expected.String(), actual.String())

	f.logger.Error("Payment amount mismatch",
		zap.String("reference", reference),
		zap.Int64("expected", record.ExpectedAmount),
		zap.String("actual", actual.String()),
		zap.String("discrepancy", discrepancy.String()))

	var bookingID *string
	if id := record.Metadata[model.MetaBookingID]; id != "" {
		bookingID = &id
	}

	f.raiseAlert(ctx, &model.FraudAlert{
		Reference:      reference,
		Type:           model.AlertTypeAmountMismatch,
		Severity:       model.SeverityCritical,
		BookingID:      bookingID,
		ExpectedAmount:   record.ExpectedAmount,
		ActualAmount:     result.ActualAmount,
		Discrepancy:      result.Discrepancy,
		ActualMinor:      result.ActualMinor,
		DiscrepancyMinor: result.DiscrepancyMinor,
		Description:      result.Reason,
	})

	return result
}

func (f *fraud) ValidateMetadata(ctx context.Context, reference string, webhookMetadata map[string]string) MetadataValidationResult {
	record, err := f.txRepo.GetByReference(ctx, reference)
	if err != nil {
		f.logger.Error("Failed to read ledger for metadata validation",
			zap.String("reference", reference),
			zap.Error(err))
		return MetadataValidationResult{Valid: false}
	}

	result := MetadataValidationResult{Valid: true}

	for _, key := range criticalMetadataFields {
		stored := record.Metadata[key]
		if stored == "" {
			continue
		}

		received := webhookMetadata[key]
		if received == stored {
			continue
		}

		result.Valid = false
		result.Mismatches = append(result.Mismatches, key)

		f.logger.Error("Webhook metadata does not match ledger",
			zap.String("reference", reference),
			zap.String("field", key),
			zap.String("stored", stored),
			zap.String("received", received))

		field := key
		var bookingID *string
		if id := record.Metadata[model.MetaBookingID]; id != "" {
			bookingID = &id
		}

		f.raiseAlert(ctx, &model.FraudAlert{
			Reference:      reference,
			Type:           model.AlertTypeMetadataTampering,
			Severity:       model.SeverityHigh,
			BookingID:      bookingID,
			Field:          &field,
			ExpectedAmount: record.ExpectedAmount,
			Description:    fmt.Sprintf("metadata field %s: stored %q, received %q", key, stored, received),
		})
	}

	return result
}

// IsAlreadyPaid fails open: a booking that cannot be read is reported as
// unpaid so a transient read error never blocks settlement for good. The
// booking lock still guards against settling twice.
func (f *fraud) IsAlreadyPaid(ctx context.Context, bookingID string) bool {
	bk, err := f.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if !errors.Is(err, repository.ErrBookingNotFound) {
			f.logger.Warn("Failed to read booking for double-charge check",
				zap.String("bookingID", bookingID),
				zap.Error(err))
		}
		return false
	}

	if !bk.Status.IsPaid() {
		return false
	}

	reference := model.UnknownReference
	if bk.PaystackReference != nil && *bk.PaystackReference != "" {
		reference = *bk.PaystackReference
	}

	f.logger.Warn("Payment received for booking that is already paid",
		zap.String("bookingID", bookingID),
		zap.String("status", string(bk.Status)),
		zap.String("paidReference", reference))

	id := bk.ID
	f.raiseAlert(ctx, &model.FraudAlert{
		Reference:      reference,
		Type:           model.AlertTypeDoubleChargeAttempt,
		Severity:       model.SeverityHigh,
		BookingID:      &id,
		ExpectedAmount: bk.Amount,
		Description:    fmt.Sprintf("booking %s is already %s", bk.ID, bk.Status),
	})

	return true
}

// raiseAlert stores the alert. A storage failure is logged and counted but
// never changes the validation outcome.
func (f *fraud) raiseAlert(ctx context.Context, alert *model.FraudAlert) {
	alert.ID = uuid.NewString()
	alert.Status = model.AlertStatusUnreviewed
	alert.Timestamp = time.Now()

	if err := f.alertRepo.Create(ctx, alert); err != nil {
		f.metrics.RecordFraudAlertError()
		f.logger.Error("Failed to store fraud alert",
			zap.String("reference", alert.Reference),
			zap.String("type", string(alert.Type)),
			zap.Error(err))
		return
	}

	f.metrics.RecordFraudAlert(string(alert.Type), string(alert.Severity))
}

func (f *fraud) GetFraudAlerts(ctx context.Context, query GetAlertsQuery) ([]model.FraudAlert, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultAlertLimit
	}
	if limit > maxAlertLimit {
		limit = maxAlertLimit
	}

	alerts, err := f.alertRepo.Find(ctx, repository.AlertFilter{
		Status:   query.Status,
		Type:     query.Type,
		Severity: query.Severity,
	}, limit)
	if err != nil {
		f.logger.Error("Failed to get fraud alerts", zap.Error(err))
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	return alerts, nil
}

func (f *fraud) ResolveFraudAlert(ctx context.Context, cmd ResolveAlertCommand) (*model.FraudAlert, error) {
	switch cmd.Resolution {
	case model.ResolutionFalsePositive, model.ResolutionConfirmedFraud, model.ResolutionOther:
	default:
		return nil, NewServiceError(constants.ErrCodeInvalidRequestBody, ErrInvalidResolution)
	}

	reviewedAt := time.Now()
	resolution := cmd.Resolution
	update := &model.FraudAlert{
		Status:     model.AlertStatusReviewed,
		Resolution: &resolution,
		ReviewedAt: &reviewedAt,
	}
	if cmd.ReviewedBy != "" {
		update.ReviewedBy = &cmd.ReviewedBy
	}
	if cmd.Notes != "" {
		update.ReviewNotes = &cmd.Notes
	}

	err := f.alertRepo.Resolve(ctx, cmd.AlertID, update)
	if err != nil && !errors.Is(err, repository.ErrNoRowsAffected) {
		f.logger.Error("Failed to resolve fraud alert", zap.String("alertID", cmd.AlertID), zap.Error(err))
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	alert, getErr := f.alertRepo.GetByID(ctx, cmd.AlertID)
	if getErr != nil {
		if errors.Is(getErr, repository.ErrFraudAlertNotFound) {
			return nil, NewServiceError(constants.ErrCodeAlertNotFound, ErrAlertNotFound)
		}
		return nil, NewServiceError(ErrCodeDatabase, getErr)
	}

	if errors.Is(err, repository.ErrNoRowsAffected) {
		f.logger.Warn("Fraud alert already reviewed",
			zap.String("alertID", cmd.AlertID),
			zap.String("reviewer", cmd.ReviewedBy))
		return nil, NewServiceError(constants.ErrCodeAlertReviewed, ErrAlertAlreadyReviewed)
	}

	f.logger.Info("Fraud alert resolved",
		zap.String("alertID", cmd.AlertID),
		zap.String("resolution", string(cmd.Resolution)),
		zap.String("reviewer", cmd.ReviewedBy))

	return alert, nil
}
