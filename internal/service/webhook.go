package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Behyna/hypeconnect/internal/constants"
	"github.com/Behyna/hypeconnect/internal/metrics"
	"github.com/Behyna/hypeconnect/internal/model"
	"go.uber.org/zap"
)

const (
	EventChargeSuccess = "charge.success"
	EventChargeFailed  = "charge.failed"

	GatewayStatusSuccess = "success"
)

// WebhookOptions bounds what a success notification may report. An empty
// Currency accepts any currency.
type WebhookOptions struct {
	MaxVariance int64
	Currency    string
}

// DeliveryGuard keeps two copies of the same delivery from being handled at
// the same time. Implementations fail open.
type DeliveryGuard interface {
	Acquire(ctx context.Context, key string) bool
	Release(ctx context.Context, key string)
}

type WebhookService interface {
	HandleEvent(ctx context.Context, event WebhookEvent) (WebhookOutcome, error)
}

type webhook struct {
	ledger     LedgerService
	fraud      FraudService
	settlement SettlementService
	guard      DeliveryGuard
	options    WebhookOptions
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewWebhookService(ledger LedgerService, fraud FraudService, settlement SettlementService, guard DeliveryGuard,
	options WebhookOptions, m *metrics.Metrics, logger *zap.Logger) WebhookService {
	return &webhook{
		ledger:     ledger,
		fraud:      fraud,
		settlement: settlement,
		guard:      guard,
		options:    options,
		metrics:    m,
		logger:     logger,
	}
}

// HandleEvent returns an error only when the ledger could not be written or
// read; every other outcome is acknowledged to the gateway.
func (w *webhook) HandleEvent(ctx context.Context, event WebhookEvent) (outcome WebhookOutcome, err error) {
	start := time.Now()
	defer func() {
		label := string(outcome)
		if err != nil {
			label = "error"
		}
		w.metrics.RecordWebhookEvent(event.Event, label, time.Since(start))
	}()

	if event.Event != EventChargeSuccess && event.Event != EventChargeFailed {
		w.logger.Debug("Ignoring webhook event", zap.String("event", event.Event))
		return OutcomeIgnored, nil
	}

	key := "webhook:" + event.Event + ":" + event.Reference
	if !w.guard.Acquire(ctx, key) {
		w.logger.Info("Delivery already in progress",
			zap.String("event", event.Event),
			zap.String("reference", event.Reference))
		return OutcomeDuplicate, nil
	}
	defer func() {
		if err != nil {
			w.guard.Release(context.WithoutCancel(ctx), key)
		}
	}()

	if event.Event == EventChargeFailed {
		return w.handleChargeFailed(ctx, event)
	}

	return w.handleChargeSuccess(ctx, event)
}

func (w *webhook) handleChargeSuccess(ctx context.Context, event WebhookEvent) (WebhookOutcome, error) {
	record, err := w.ledger.Get(ctx, event.Reference)
	if err != nil {
		if !errors.Is(err, ErrTransactionNotFound) {
			return "", err
		}

		// no commitment to compare against: the amount check raises the alert
		w.fraud.ValidateMinorAmount(ctx, event.Reference, event.Amount, w.options.MaxVariance)
		return OutcomeRejected, nil
	}

	switch record.Status {
	case model.TxStatusCompleted:
		w.logger.Info("Duplicate success delivery for completed payment", zap.String("reference", event.Reference))
		return OutcomeDuplicate, nil
	case model.TxStatusFailed, model.TxStatusRejected:
		w.logger.Warn("Success delivery for closed payment",
			zap.String("reference", event.Reference),
			zap.String("status", string(record.Status)))
		return OutcomeIgnored, nil
	}

	if reason := w.chargeMismatch(event); reason != "" {
		return w.reject(ctx, event.Reference, reason)
	}

	bookingID := record.Metadata[model.MetaBookingID]
	if bookingID == "" {
		return w.reject(ctx, event.Reference, "ledger entry has no booking")
	}

	if record.Status == model.TxStatusVerified && w.settlement.IsSettledWith(ctx, bookingID, event.Reference) {
		w.logger.Info("Booking settled by this reference, completing ledger", zap.String("reference", event.Reference))
		return w.complete(ctx, event.Reference)
	}

	if w.fraud.IsAlreadyPaid(ctx, bookingID) {
		return w.reject(ctx, event.Reference, "booking already paid")
	}

	lock := w.settlement.Lock(ctx, bookingID)
	if !lock.Acquired {
		return OutcomeDuplicate, nil
	}

	amount := w.fraud.ValidateMinorAmount(ctx, event.Reference, event.Amount, w.options.MaxVariance)
	meta := w.fraud.ValidateMetadata(ctx, event.Reference, event.Metadata)

	if !amount.Valid || !meta.Valid {
		w.settlement.Unlock(ctx, bookingID, lock.Token)
		return w.reject(ctx, event.Reference, rejectionReason(amount, meta))
	}

	if err := w.ledger.MarkVerified(ctx, event.Reference, event.GatewayResponse); err != nil {
		w.settlement.Unlock(ctx, bookingID, lock.Token)
		return w.ledgerOutcome(event.Reference, err, OutcomeFailed)
	}

	err = w.settlement.Settle(ctx, SettleCommand{
		BookingID: bookingID,
		Token:     lock.Token,
		Reference: event.Reference,
		UserID:    record.UserID,
		Amount:    record.ExpectedAmount,
	})
	if err != nil {
		w.settlement.Unlock(ctx, bookingID, lock.Token)
		if errors.Is(err, ErrAmountMismatch) || errors.Is(err, ErrPayerMismatch) {
			return w.reject(ctx, event.Reference, "booking does not match payment: "+err.Error())
		}
		if err := w.ledger.MarkFailed(ctx, event.Reference, "settlement failed: "+err.Error()); err != nil {
			return w.ledgerOutcome(event.Reference, err, OutcomeFailed)
		}
		return OutcomeFailed, nil
	}

	return w.complete(ctx, event.Reference)
}

func (w *webhook) handleChargeFailed(ctx context.Context, event WebhookEvent) (WebhookOutcome, error) {
	reason := event.GatewayResponse
	if reason == "" {
		reason = "charge failed"
	}

	err := w.ledger.MarkFailed(ctx, event.Reference, reason)
	if err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			w.logger.Warn("Failure delivery for unknown reference", zap.String("reference", event.Reference))
			return OutcomeIgnored, nil
		}
		return w.ledgerOutcome(event.Reference, err, OutcomeIgnored)
	}

	return OutcomeFailed, nil
}

// chargeMismatch names why a success notification cannot be trusted as a
// completed charge in the configured currency, or returns "".
func (w *webhook) chargeMismatch(event WebhookEvent) string {
	if event.Status != "" && !strings.EqualFold(event.Status, GatewayStatusSuccess) {
		return fmt.Sprintf("gateway status %q is not success", event.Status)
	}

	if w.options.Currency != "" && !strings.EqualFold(event.Currency, w.options.Currency) {
		return fmt.Sprintf("currency %q does not match %s", event.Currency, w.options.Currency)
	}

	return ""
}

func (w *webhook) reject(ctx context.Context, reference, reason string) (WebhookOutcome, error) {
	w.logger.Warn("Payment rejected", zap.String("reference", reference), zap.String("reason", reason))

	if err := w.ledger.MarkRejected(ctx, reference, reason); err != nil {
		return w.ledgerOutcome(reference, err, OutcomeRejected)
	}

	return OutcomeRejected, nil
}

func (w *webhook) complete(ctx context.Context, reference string) (WebhookOutcome, error) {
	if err := w.ledger.MarkCompleted(ctx, reference); err != nil {
		return w.ledgerOutcome(reference, err, OutcomeCompleted)
	}

	return OutcomeCompleted, nil
}

// ledgerOutcome surfaces ledger write failures. Lost races and refused
// transitions mean another delivery already moved the record, so they keep
// the fallback outcome.
func (w *webhook) ledgerOutcome(reference string, err error, fallback WebhookOutcome) (WebhookOutcome, error) {
	var serviceErr Error
	if errors.As(err, &serviceErr) && serviceErr.Code == constants.ErrCodeLedgerWrite {
		return "", err
	}

	w.logger.Warn("Ledger status not updated",
		zap.String("reference", reference),
		zap.Error(err))

	return fallback, nil
}

func rejectionReason(amount ValidationResult, meta MetadataValidationResult) string {
	var reasons []string
	if !amount.Valid {
		reasons = append(reasons, amount.Reason)
	}
	if !meta.Valid {
		if len(meta.Mismatches) > 0 {
			reasons = append(reasons, fmt.Sprintf("metadata mismatch: %s", strings.Join(meta.Mismatches, ", ")))
		} else {
			reasons = append(reasons, "metadata could not be verified")
		}
	}

	return strings.Join(reasons, "; ")
}
