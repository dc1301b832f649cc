package constants

const (
	ErrCodeTransactionNotFound = "TRANSACTION_NOT_FOUND"
	ErrCodeDuplicateReference  = "DUPLICATE_REFERENCE"
	ErrCodeBookingNotFound     = "BOOKING_NOT_FOUND"
	ErrCodeBookingNotPayable   = "BOOKING_NOT_PAYABLE"
	ErrCodeAlertNotFound       = "FRAUD_ALERT_NOT_FOUND"
	ErrCodeAlertReviewed       = "FRAUD_ALERT_ALREADY_REVIEWED"
	ErrCodeInvalidSignature    = "INVALID_SIGNATURE"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeGatewayError        = "PAYMENT_GATEWAY_ERROR"
	ErrCodeGatewayTimeout      = "PAYMENT_GATEWAY_TIMEOUT"
	ErrCodeLedgerWrite         = "LEDGER_WRITE_FAILED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
	ErrCodeInvalidRequestBody  = "INVALID_REQUEST_BODY"
	ErrCodeInvalidQuery        = "INVALID_QUERY"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeForbidden           = "FORBIDDEN"
)

const (
	ErrMsgTransactionNotFound = "transaction not found"
	ErrMsgDuplicateReference  = "payment reference already exists"
	ErrMsgBookingNotFound     = "booking not found"
	ErrMsgBookingNotPayable   = "booking is not awaiting payment"
	ErrMsgAlertNotFound       = "fraud alert not found"
	ErrMsgAlertReviewed       = "fraud alert already reviewed"
	ErrMsgInvalidSignature    = "invalid webhook signature"
	ErrMsgUnauthorized        = "unauthorized"
	ErrMsgGatewayError        = "payment could not be initialized"
	ErrMsgGatewayTimeout      = "payment gateway timeout"
	ErrMsgLedgerWrite         = "payment could not be recorded"
	ErrMsgInternalError       = "Internal server error"
	ErrMsgInvalidRequestBody  = "failed to parse request body"
	ErrMsgInvalidQuery        = "invalid query parameters"
	ErrMsgValidationFailed    = "request validation failed"
	ErrMsgForbidden           = "forbidden"
)

var errorMessages = map[string]string{
	ErrCodeTransactionNotFound: ErrMsgTransactionNotFound,
	ErrCodeDuplicateReference:  ErrMsgDuplicateReference,
	ErrCodeBookingNotFound:     ErrMsgBookingNotFound,
	ErrCodeBookingNotPayable:   ErrMsgBookingNotPayable,
	ErrCodeAlertNotFound:       ErrMsgAlertNotFound,
	ErrCodeAlertReviewed:       ErrMsgAlertReviewed,
	ErrCodeInvalidSignature:    ErrMsgInvalidSignature,
	ErrCodeUnauthorized:        ErrMsgUnauthorized,
	ErrCodeGatewayError:        ErrMsgGatewayError,
	ErrCodeGatewayTimeout:      ErrMsgGatewayTimeout,
	ErrCodeLedgerWrite:         ErrMsgLedgerWrite,
	ErrCodeInternalError:       ErrMsgInternalError,
	ErrCodeInvalidRequestBody:  ErrMsgInvalidRequestBody,
	ErrCodeInvalidQuery:        ErrMsgInvalidQuery,
	ErrCodeValidationFailed:    ErrMsgValidationFailed,
	ErrCodeForbidden:           ErrMsgForbidden,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidRequestBody, ErrCodeInvalidQuery:
		return 400
	case ErrCodeInvalidSignature, ErrCodeUnauthorized:
		return 401
	case ErrCodeForbidden:
		return 403
	case ErrCodeTransactionNotFound, ErrCodeAlertNotFound, ErrCodeBookingNotFound:
		return 404
	case ErrCodeDuplicateReference, ErrCodeAlertReviewed, ErrCodeBookingNotPayable:
		return 409
	case ErrCodeValidationFailed:
		return 422
	case ErrCodeGatewayError:
		return 502
	case ErrCodeGatewayTimeout:
		return 504
	default:
		return 500
	}
}
