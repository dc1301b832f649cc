package model

import (
	"errors"
	"time"
)

type TxStatus string

const (
	TxStatusInitialized TxStatus = "initialized"
	TxStatusVerified    TxStatus = "verified"
	TxStatusCompleted   TxStatus = "completed"
	TxStatusFailed      TxStatus = "failed"
	TxStatusRejected    TxStatus = "rejected"
)

var ErrInvalidTransition = errors.New("INVALID_STATUS_TRANSITION")

var allowedTransitions = map[TxStatus][]TxStatus{
	TxStatusInitialized: {TxStatusVerified, TxStatusFailed, TxStatusRejected},
	TxStatusVerified:    {TxStatusCompleted, TxStatusFailed, TxStatusRejected},
}

// Transition returns the next status when the edge s -> to is allowed.
// Re-applying the current status is accepted so status markers stay idempotent.
func (s TxStatus) Transition(to TxStatus) (TxStatus, error) {
	if s == to {
		return to, nil
	}

	for _, next := range allowedTransitions[s] {
		if next == to {
			return to, nil
		}
	}

	return s, ErrInvalidTransition
}

func (s TxStatus) IsTerminal() bool {
	return s == TxStatusCompleted || s == TxStatusFailed || s == TxStatusRejected
}

// Metadata keys written by the booking flow at initialization.
const (
	MetaUserID    = "userId"
	MetaBookingID = "bookingId"
	MetaEventID   = "eventId"
	MetaHypemanID = "hypemanId"
)

type Metadata map[string]string

type TransactionRecord struct {
	Reference       string     `gorm:"column:reference;primaryKey;type:varchar(100);<-:create" json:"reference"`
	UserID          string     `gorm:"column:user_id;type:varchar(128);index:idx_tx_user_initiated;<-:create" json:"userId"`
	Email           string     `gorm:"column:email;type:varchar(255);<-:create" json:"email"`
	ExpectedAmount  int64      `gorm:"column:expected_amount;not null;<-:create" json:"expectedAmount"`
	Metadata        Metadata   `gorm:"column:metadata;type:text;serializer:json;<-:create" json:"metadata"`
	Status          TxStatus   `gorm:"column:status;type:varchar(20);index;not null" json:"status"`
	GatewayResponse *string    `gorm:"column:gateway_response;type:text" json:"gatewayResponse,omitempty"`
	FailureReason   *string    `gorm:"column:failure_reason;type:text" json:"failureReason,omitempty"`
	InitiatedAt     time.Time  `gorm:"column:initiated_at;index:idx_tx_user_initiated;not null" json:"initiatedAt"`
	VerifiedAt      *time.Time `gorm:"column:verified_at" json:"verifiedAt,omitempty"`
	CompletedAt     *time.Time `gorm:"column:completed_at" json:"completedAt,omitempty"`
	FailedAt        *time.Time `gorm:"column:failed_at;index" json:"failedAt,omitempty"`
	RejectedAt      *time.Time `gorm:"column:rejected_at;index" json:"rejectedAt,omitempty"`
	UpdatedAt       time.Time  `gorm:"column:updated_at" json:"updatedAt"`
}

func (TransactionRecord) TableName() string {
	return "payment_transactions"
}
