package service

import "errors"

const (
	ErrCodeDatabase = "DATABASE_ERROR"
)

var (
	ErrTransactionExists    = errors.New("TRANSACTION_EXISTS")
	ErrTransactionNotFound  = errors.New("TRANSACTION_NOT_FOUND")
	ErrConcurrentUpdate     = errors.New("CONCURRENT_STATUS_UPDATE")
	ErrAlertNotFound        = errors.New("FRAUD_ALERT_NOT_FOUND")
	ErrAlertAlreadyReviewed = errors.New("FRAUD_ALERT_ALREADY_REVIEWED")
	ErrInvalidResolution    = errors.New("INVALID_RESOLUTION")
	ErrLockNotHeld          = errors.New("BOOKING_LOCK_NOT_HELD")
	ErrBookingNotFound      = errors.New("BOOKING_NOT_FOUND")
	ErrBookingNotPayable    = errors.New("BOOKING_NOT_PAYABLE")
	ErrAmountMismatch       = errors.New("SETTLEMENT_AMOUNT_MISMATCH")
	ErrPayerMismatch        = errors.New("SETTLEMENT_PAYER_MISMATCH")
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}
