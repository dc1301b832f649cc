package paystack

import "errors"

const (
	StatusOK           = 200
	StatusBadRequest   = 400
	StatusUnauthorized = 401
	StatusNotFound     = 404
)

const (
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeTransactionNotFound = "TRANSACTION_NOT_FOUND"
	ErrCodeTimeout             = "TIMEOUT"
	ErrCodeServerError         = "SERVER_ERROR"
	ErrCodeRejected            = "REQUEST_REJECTED"
)

var (
	ErrBadRequest          = errors.New(ErrCodeBadRequest)
	ErrUnauthorized        = errors.New(ErrCodeUnauthorized)
	ErrTransactionNotFound = errors.New(ErrCodeTransactionNotFound)
	ErrTimeout             = errors.New(ErrCodeTimeout)
	ErrServerError         = errors.New(ErrCodeServerError)
	ErrRejected            = errors.New(ErrCodeRejected)
)

var statusErrorMap = map[int]error{
	StatusBadRequest:   ErrBadRequest,
	StatusUnauthorized: ErrUnauthorized,
	StatusNotFound:     ErrTransactionNotFound,
}

func MapStatusToError(statusCode int) error {
	if err, exists := statusErrorMap[statusCode]; exists {
		return err
	}
	return ErrServerError
}
