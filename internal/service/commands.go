package service

import "github.com/Behyna/hypeconnect/internal/model"

type RecordInitializedCommand struct {
	Reference      string
	UserID         string
	Email          string
	ExpectedAmount int64
	Metadata       model.Metadata
}

// InitializePaymentCommand names the booking to pay for. The amount, the
// hypeman and the event are read from the booking itself.
type InitializePaymentCommand struct {
	UserID      string
	Email       string
	BookingID   string
	CallbackURL string
}

// PaymentStatusQuery carries who is asking; only the payer and admins may
// read a payment.
type PaymentStatusQuery struct {
	Reference   string
	RequesterID string
	Admin       bool
}

type ResolveAlertCommand struct {
	AlertID    string
	Resolution model.Resolution
	ReviewedBy string
	Notes      string
}

type GetAlertsQuery struct {
	Limit    int
	Status   model.AlertStatus
	Type     model.AlertType
	Severity model.Severity
}

// WebhookEvent is the parsed gateway notification. Amount is in the
// gateway's minor unit.
type WebhookEvent struct {
	Event           string
	Reference       string
	Amount          int64
	Currency        string
	Status          string
	Metadata        map[string]string
	GatewayResponse string
}

// FraudAlertMessage is the queue payload for admin notification.
type FraudAlertMessage struct {
	AlertID        string `json:"alert_id"`
	Reference      string `json:"reference"`
	Type           string `json:"type"`
	Severity       string `json:"severity"`
	ExpectedAmount int64  `json:"expected_amount"`
	ActualAmount   int64  `json:"actual_amount"`
	Discrepancy    int64  `json:"discrepancy"`
	ActualMinor    int64  `json:"actual_minor"`
	Description    string `json:"description"`
	CreatedAt      string `json:"created_at"`
}
