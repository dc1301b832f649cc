package service

import (
	"github.com/Behyna/hypeconnect/internal/model"
	"github.com/shopspring/decimal"
)

type TransactionStats struct {
	Total         int64                    `json:"total"`
	ByStatus      map[model.TxStatus]int64 `json:"byStatus"`
	TotalAmount   int64                    `json:"totalAmount"`
	AverageAmount decimal.Decimal          `json:"averageAmount"`
}

type ReconcileIssue struct {
	Reference string         `json:"reference"`
	Status    model.TxStatus `json:"status"`
	Issue     string         `json:"issue"`
}

type ReconcileReport struct {
	Checked int64            `json:"checked"`
	Issues  []ReconcileIssue `json:"issues"`
}

type ValidationResult struct {
	Valid          bool   `json:"valid"`
	FraudDetected  bool   `json:"fraudDetected"`
	ExpectedAmount int64  `json:"expectedAmount"`
	ActualAmount   int64  `json:"actualAmount"`
	Discrepancy    int64  `json:"discrepancy"`
	// ActualMinor and DiscrepancyMinor are exact, in kobo.
	ActualMinor      int64  `json:"actualMinor"`
	DiscrepancyMinor int64  `json:"discrepancyMinor"`
	Reason           string `json:"reason,omitempty"`
}

type MetadataValidationResult struct {
	Valid      bool     `json:"valid"`
	Mismatches []string `json:"mismatches,omitempty"`
}

type LockResult struct {
	Acquired bool
	Token    string
}

type InitializePaymentResponse struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorizationUrl"`
	AccessCode       string `json:"accessCode"`
	DuplicateAttempt bool   `json:"duplicateAttempt"`
}

type PaymentStatusResponse struct {
	Transaction   *model.TransactionRecord `json:"transaction"`
	GatewayStatus string                   `json:"gatewayStatus,omitempty"`
	PaidAt        string                   `json:"paidAt,omitempty"`
}

type WebhookOutcome string

const (
	OutcomeCompleted WebhookOutcome = "completed"
	OutcomeRejected  WebhookOutcome = "rejected"
	OutcomeFailed    WebhookOutcome = "failed"
	OutcomeDuplicate WebhookOutcome = "duplicate"
	OutcomeIgnored   WebhookOutcome = "ignored"
)
