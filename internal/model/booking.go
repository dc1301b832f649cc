package model

import "time"

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusProcessing BookingStatus = "processing"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusFailed     BookingStatus = "failed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

func (s BookingStatus) IsPaid() bool {
	return s == BookingStatusConfirmed || s == BookingStatusCompleted
}

type BookingKind string

const (
	BookingKindVideo BookingKind = "booking"
	BookingKindHype  BookingKind = "hype"
)

type Booking struct {
	ID                string        `gorm:"column:id;primaryKey;type:varchar(128);<-:create"`
	Kind              BookingKind   `gorm:"column:kind;type:varchar(20);not null"`
	UserID            string        `gorm:"column:user_id;type:varchar(128)"`
	HypemanID         string        `gorm:"column:hypeman_id;type:varchar(128);index"`
	EventID           *string       `gorm:"column:event_id;type:varchar(128)"`
	Amount            int64         `gorm:"column:amount;not null"`
	Status            BookingStatus `gorm:"column:status;type:varchar(20);index;not null"`
	ProcessedAt       *time.Time    `gorm:"column:processed_at"`
	LockToken         *string       `gorm:"column:lock_token;type:char(36)"`
	PaystackReference *string       `gorm:"column:paystack_reference;type:varchar(100)"`
	ConfirmedAt       *time.Time    `gorm:"column:confirmed_at"`
	CreatedAt         time.Time     `gorm:"column:created_at"`
	UpdatedAt         time.Time     `gorm:"column:updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}
