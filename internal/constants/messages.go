package constants

const MessageErrorFormat = "%s is invalid"

const (
	PaymentInitialized  = "payment initialized"
	PaymentRetrieved    = "payment retrieved"
	PaymentsRetrieved   = "payments retrieved"
	WebhookAcknowledged = "webhook acknowledged"
	AlertsRetrieved     = "fraud alerts retrieved"
	AlertResolved       = "fraud alert resolved"
	StatsRetrieved      = "transaction stats retrieved"
	FailuresRetrieved   = "recent failures retrieved"
	ReconcileCompleted  = "reconciliation completed"
)
