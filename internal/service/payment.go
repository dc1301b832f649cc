package service

import (
	"context"
	"errors"

	"github.com/Behyna/hypeconnect/internal/constants"
	"github.com/Behyna/hypeconnect/internal/metrics"
	"github.com/Behyna/hypeconnect/internal/model"
	"github.com/Behyna/hypeconnect/internal/repository"
	"github.com/Behyna/hypeconnect/pkg/paystack"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const ReferencePrefix = "hc_"

type PaymentOptions struct {
	Currency               string
	CallbackURL            string
	DuplicateWindowMinutes int
}

type PaymentService interface {
	Initialize(ctx context.Context, cmd InitializePaymentCommand) (InitializePaymentResponse, error)
	Status(ctx context.Context, query PaymentStatusQuery) (PaymentStatusResponse, error)
}

type payment struct {
	ledger      LedgerService
	bookingRepo repository.BookingRepository
	gateway     paystack.Client
	options     PaymentOptions
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

func NewPaymentService(ledger LedgerService, bookingRepo repository.BookingRepository, gateway paystack.Client,
	options PaymentOptions, m *metrics.Metrics, logger *zap.Logger) PaymentService {
	return &payment{
		ledger:      ledger,
		bookingRepo: bookingRepo,
		gateway:     gateway,
		options:     options,
		metrics:     m,
		logger:      logger,
	}
}

// Initialize records the commitment in the ledger before the gateway ever
// sees the reference, so no webhook can arrive for an unrecorded payment.
// The expected amount is the booking's price, never a figure from the payer.
func (p *payment) Initialize(ctx context.Context, cmd InitializePaymentCommand) (InitializePaymentResponse, error) {
	bk, err := p.payableBooking(ctx, cmd.UserID, cmd.BookingID)
	if err != nil {
		return InitializePaymentResponse{}, err
	}

	reference := ReferencePrefix + uuid.NewString()
	response := InitializePaymentResponse{Reference: reference}

	attempts, err := p.ledger.FindDuplicateAttempts(ctx, cmd.UserID, p.options.DuplicateWindowMinutes)
	if err != nil {
		p.logger.Warn("Duplicate attempt check failed", zap.String("userID", cmd.UserID), zap.Error(err))
	}
	if len(attempts) > 0 {
		response.DuplicateAttempt = true
		p.metrics.RecordDuplicateAttempt()
		p.logger.Warn("Possible double submission",
			zap.String("userID", cmd.UserID),
			zap.String("bookingID", cmd.BookingID),
			zap.Int("openAttempts", len(attempts)))
	}

	metadata := model.Metadata{
		model.MetaUserID:    cmd.UserID,
		model.MetaBookingID: bk.ID,
		model.MetaHypemanID: bk.HypemanID,
	}
	if bk.EventID != nil && *bk.EventID != "" {
		metadata[model.MetaEventID] = *bk.EventID
	}

	_, err = p.ledger.RecordInitialized(ctx, RecordInitializedCommand{
		Reference:      reference,
		UserID:         cmd.UserID,
		Email:          cmd.Email,
		ExpectedAmount: bk.Amount,
		Metadata:       metadata,
	})
	if err != nil {
		return InitializePaymentResponse{}, err
	}

	callbackURL := cmd.CallbackURL
	if callbackURL == "" {
		callbackURL = p.options.CallbackURL
	}

	resp, err := p.gateway.Initialize(ctx, paystack.InitializeRequest{
		Email:       cmd.Email,
		Amount:      paystack.ToMinor(bk.Amount),
		Reference:   reference,
		Currency:    p.options.Currency,
		CallbackURL: callbackURL,
		Metadata:    metadata,
	})
	if err != nil {
		p.logger.Error("Gateway initialization failed",
			zap.String("reference", reference),
			zap.Error(err))

		if markErr := p.ledger.MarkFailed(ctx, reference, "gateway initialization failed"); markErr != nil {
			p.logger.Error("Failed to mark uninitialized payment as failed",
				zap.String("reference", reference),
				zap.Error(markErr))
		}

		if errors.Is(err, paystack.ErrTimeout) {
			return InitializePaymentResponse{}, NewServiceError(constants.ErrCodeGatewayTimeout, err)
		}
		return InitializePaymentResponse{}, NewServiceError(constants.ErrCodeGatewayError, err)
	}

	p.metrics.RecordPaymentInitialized()
	p.logger.Info("Payment initialized",
		zap.String("reference", reference),
		zap.String("userID", cmd.UserID),
		zap.String("bookingID", bk.ID),
		zap.Int64("amount", bk.Amount))

	response.AuthorizationURL = resp.Data.AuthorizationURL
	response.AccessCode = resp.Data.AccessCode

	return response, nil
}

// payableBooking loads the booking a payer asks to pay for. Someone else's
// booking reads as not found.
func (p *payment) payableBooking(ctx context.Context, userID, bookingID string) (*model.Booking, error) {
	bk, err := p.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, NewServiceError(constants.ErrCodeBookingNotFound, ErrBookingNotFound)
		}
		p.logger.Error("Failed to load booking", zap.String("bookingID", bookingID), zap.Error(err))
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	if bk.UserID != userID {
		p.logger.Warn("Payment requested for another user's booking",
			zap.String("userID", userID),
			zap.String("bookingID", bookingID))
		return nil, NewServiceError(constants.ErrCodeBookingNotFound, ErrBookingNotFound)
	}

	if bk.Status != model.BookingStatusPending {
		return nil, NewServiceError(constants.ErrCodeBookingNotPayable, ErrBookingNotPayable)
	}

	return bk, nil
}

// Status returns the ledger record with the gateway's view when the gateway
// answers. The ledger stays authoritative. A record the requester does not
// own reads as not found and is never looked up at the gateway.
func (p *payment) Status(ctx context.Context, query PaymentStatusQuery) (PaymentStatusResponse, error) {
	reference := query.Reference

	record, err := p.ledger.Get(ctx, reference)
	if err != nil {
		return PaymentStatusResponse{}, err
	}

	if !query.Admin && record.UserID != query.RequesterID {
		return PaymentStatusResponse{}, NewServiceError(constants.ErrCodeTransactionNotFound, ErrTransactionNotFound)
	}

	response := PaymentStatusResponse{Transaction: record}

	verified, err := p.gateway.Verify(ctx, reference)
	if err != nil {
		p.logger.Warn("Gateway verification unavailable", zap.String("reference", reference), zap.Error(err))
		return response, nil
	}

	response.GatewayStatus = verified.Data.Status
	response.PaidAt = verified.Data.PaidAt

	return response, nil
}
