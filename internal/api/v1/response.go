package v1

import "github.com/Behyna/hypeconnect/internal/model"

type WebhookAckResponse struct {
	Outcome string `json:"outcome"`
}

type ListPaymentsResponse struct {
	Payments []model.TransactionRecord `json:"payments"`
	Total    int                       `json:"total"`
}

type ListAlertsResponse struct {
	Alerts []model.FraudAlert `json:"alerts"`
	Total  int                `json:"total"`
}
