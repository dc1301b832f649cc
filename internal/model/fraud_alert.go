package model

import "time"

type AlertType string

const (
	AlertTypeAmountMismatch      AlertType = "amount_mismatch"
	AlertTypeUnknownTransaction  AlertType = "unknown_transaction"
	AlertTypeMetadataTampering   AlertType = "metadata_tampering"
	AlertTypeDoubleChargeAttempt AlertType = "double_charge_attempt"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
)

type AlertStatus string

const (
	AlertStatusUnreviewed AlertStatus = "unreviewed"
	AlertStatusReviewed   AlertStatus = "reviewed"
)

type Resolution string

const (
	ResolutionFalsePositive  Resolution = "false_positive"
	ResolutionConfirmedFraud Resolution = "confirmed_fraud"
	ResolutionOther          Resolution = "other"
)

// UnknownReference marks double-charge alerts for bookings that carry no gateway reference.
const UnknownReference = "unknown"

type FraudAlert struct {
	ID             string      `gorm:"column:id;primaryKey;type:char(36);<-:create" json:"id"`
	Reference      string      `gorm:"column:reference;type:varchar(100);index;<-:create" json:"reference"`
	Type           AlertType   `gorm:"column:type;type:varchar(40);index;not null;<-:create" json:"type"`
	Severity       Severity    `gorm:"column:severity;type:varchar(20);not null;<-:create" json:"severity"`
	BookingID      *string     `gorm:"column:booking_id;type:varchar(128);<-:create" json:"bookingId,omitempty"`
	Field          *string     `gorm:"column:field;type:varchar(64);<-:create" json:"field,omitempty"`
	ExpectedAmount int64       `gorm:"column:expected_amount;<-:create" json:"expectedAmount"`
	ActualAmount   int64       `gorm:"column:actual_amount;<-:create" json:"actualAmount"`
	Discrepancy    int64       `gorm:"column:discrepancy;<-:create" json:"discrepancy"`
	// exact gateway figures in kobo; the whole-naira columns above are rounded
	ActualMinor      int64 `gorm:"column:actual_minor;<-:create" json:"actualMinor"`
	DiscrepancyMinor int64 `gorm:"column:discrepancy_minor;<-:create" json:"discrepancyMinor"`
	Description    string      `gorm:"column:description;type:text;<-:create" json:"description"`
	Status         AlertStatus `gorm:"column:status;type:varchar(20);index;not null" json:"status"`
	Resolution     *Resolution `gorm:"column:resolution;type:varchar(32)" json:"resolution,omitempty"`
	ReviewedBy     *string     `gorm:"column:reviewed_by;type:varchar(128)" json:"reviewedBy,omitempty"`
	ReviewNotes    *string     `gorm:"column:review_notes;type:text" json:"reviewNotes,omitempty"`
	ReviewedAt     *time.Time  `gorm:"column:reviewed_at" json:"reviewedAt,omitempty"`
	Published      bool        `gorm:"column:published;default:false;not null" json:"-"`
	PublishedAt    *time.Time  `gorm:"column:published_at" json:"-"`
	Timestamp      time.Time   `gorm:"column:created_at;index;not null;<-:create" json:"timestamp"`
}

func (FraudAlert) TableName() string {
	return "fraud_alerts"
}
