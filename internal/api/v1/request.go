package v1

// InitializePaymentRequest names only the booking; its price and hypeman are
// read server-side.
type InitializePaymentRequest struct {
	Email       string `json:"email" validate:"required,email"`
	BookingID   string `json:"bookingId" validate:"required,max=128"`
	CallbackURL string `json:"callbackUrl" validate:"omitempty,url"`
}

type ListPaymentsRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

type GetAlertsRequest struct {
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=500"`
	Status   string `query:"status" validate:"omitempty,oneof=unreviewed reviewed"`
	Type     string `query:"type" validate:"omitempty,oneof=amount_mismatch unknown_transaction metadata_tampering double_charge_attempt"`
	Severity string `query:"severity" validate:"omitempty,oneof=critical high medium"`
}

type ResolveAlertRequest struct {
	Resolution string `json:"resolution" validate:"required,oneof=false_positive confirmed_fraud other"`
	Notes      string `json:"notes" validate:"max=2000"`
}

type RecentFailuresRequest struct {
	Hours int `query:"hours" validate:"omitempty,min=1,max=720"`
}
