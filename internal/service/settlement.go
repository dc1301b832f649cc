package service

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/hypeconnect/internal/metrics"
	"github.com/Behyna/hypeconnect/internal/model"
	"github.com/Behyna/hypeconnect/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SettleCommand carries what the ledger committed to: the amount and the
// payer. Settle refuses a booking that disagrees with either.
type SettleCommand struct {
	BookingID string
	Token     string
	Reference string
	UserID    string
	Amount    int64
}

type SettlementService interface {
	Lock(ctx context.Context, bookingID string) LockResult
	Unlock(ctx context.Context, bookingID, token string) bool
	Settle(ctx context.Context, cmd SettleCommand) error
	IsSettledWith(ctx context.Context, bookingID, reference string) bool
}

type settlement struct {
	bookingRepo repository.BookingRepository
	walletRepo  repository.WalletRepository
	txManager   repository.TxManager
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

func NewSettlementService(bookingRepo repository.BookingRepository, walletRepo repository.WalletRepository,
	txManager repository.TxManager, m *metrics.Metrics, logger *zap.Logger) SettlementService {
	return &settlement{bookingRepo: bookingRepo, walletRepo: walletRepo, txManager: txManager, metrics: m, logger: logger}
}

// Lock moves a pending booking to processing with a single conditional
// update and hands back the token that Unlock and Settle must present. A
// missing booking, a booking in any other status and a store error all
// report not acquired.
func (s *settlement) Lock(ctx context.Context, bookingID string) LockResult {
	token := uuid.NewString()

	err := s.bookingRepo.Lock(ctx, bookingID, token, time.Now())
	if err == nil {
		s.metrics.RecordLockAttempt("acquired")
		s.logger.Info("Booking locked for payment",
			zap.String("bookingID", bookingID),
			zap.String("token", token))
		return LockResult{Acquired: true, Token: token}
	}

	if errors.Is(err, repository.ErrNoRowsAffected) {
		s.metrics.RecordLockAttempt("not_acquired")
		s.logger.Info("Booking not pending, lock not acquired", zap.String("bookingID", bookingID))
		return LockResult{}
	}

	s.metrics.RecordLockAttempt("error")
	s.logger.Error("Failed to lock booking", zap.String("bookingID", bookingID), zap.Error(err))

	return LockResult{}
}

// Unlock returns the booking to pending only while token still holds the lock.
func (s *settlement) Unlock(ctx context.Context, bookingID, token string) bool {
	err := s.bookingRepo.Unlock(ctx, bookingID, token)
	if err == nil {
		s.logger.Info("Booking unlocked", zap.String("bookingID", bookingID))
		return true
	}

	if errors.Is(err, repository.ErrNoRowsAffected) {
		s.logger.Warn("Booking lock no longer held by this attempt",
			zap.String("bookingID", bookingID),
			zap.String("token", token))
		return false
	}

	s.logger.Error("Failed to unlock booking", zap.String("bookingID", bookingID), zap.Error(err))

	return false
}

// Settle confirms the locked booking and credits the hypeman wallet in one
// database transaction. A booking whose price or payer differs from the
// command is left untouched with ErrAmountMismatch or ErrPayerMismatch.
func (s *settlement) Settle(ctx context.Context, cmd SettleCommand) error {
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		bk, err := s.bookingRepo.GetByID(ctx, cmd.BookingID)
		if err != nil {
			return err
		}

		if bk.Amount != cmd.Amount {
			s.logger.Warn("Settlement amount differs from booking price",
				zap.String("bookingID", cmd.BookingID),
				zap.Int64("bookingAmount", bk.Amount),
				zap.Int64("amount", cmd.Amount))
			return ErrAmountMismatch
		}

		if cmd.UserID != "" && bk.UserID != cmd.UserID {
			s.logger.Warn("Settlement payer is not the booking owner",
				zap.String("bookingID", cmd.BookingID),
				zap.String("userID", cmd.UserID))
			return ErrPayerMismatch
		}

		if err := s.bookingRepo.Confirm(ctx, cmd.BookingID, cmd.Token, cmd.Reference, time.Now()); err != nil {
			if errors.Is(err, repository.ErrNoRowsAffected) {
				return ErrLockNotHeld
			}
			return err
		}

		entry := &model.WalletEntry{
			HypemanID: bk.HypemanID,
			Reference: cmd.Reference,
			BookingID: cmd.BookingID,
			Amount:    cmd.Amount,
			CreatedAt: time.Now(),
		}

		err = s.walletRepo.Credit(ctx, entry)
		if errors.Is(err, repository.ErrWalletEntryExisted) {
			s.logger.Warn("Wallet already credited for reference",
				zap.String("reference", cmd.Reference),
				zap.String("hypemanID", bk.HypemanID))
			return nil
		}

		return err
	})

	if err != nil {
		s.metrics.RecordSettlement("error", cmd.Amount)
		s.logger.Error("Settlement failed",
			zap.String("bookingID", cmd.BookingID),
			zap.String("reference", cmd.Reference),
			zap.Error(err))
		return err
	}

	s.metrics.RecordSettlement("success", cmd.Amount)
	s.logger.Info("Booking settled",
		zap.String("bookingID", cmd.BookingID),
		zap.String("reference", cmd.Reference),
		zap.Int64("amount", cmd.Amount))

	return nil
}

// IsSettledWith reports whether the booking was already confirmed by this
// very reference, which is the case when a retried delivery arrives after
// settlement but before the ledger was completed.
func (s *settlement) IsSettledWith(ctx context.Context, bookingID, reference string) bool {
	bk, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return false
	}

	return bk.Status.IsPaid() && bk.PaystackReference != nil && *bk.PaystackReference == reference
}
