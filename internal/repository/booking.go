package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/hypeconnect/internal/model"
	"gorm.io/gorm"
)

var ErrBookingNotFound = errors.New("BOOKING_NOT_FOUND")

type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	Lock(ctx context.Context, id, token string, processedAt time.Time) error
	Unlock(ctx context.Context, id, token string) error
	Confirm(ctx context.Context, id, token, reference string, confirmedAt time.Time) error
}

type booking struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &booking{db: db}
}

func (b *booking) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	var bk model.Booking

	err := GetTx(ctx, b.db).Where("id = ?", id).First(&bk).Error
	if err == nil {
		return &bk, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}

	return nil, err
}

// Lock is a single conditional UPDATE: pending -> processing. Concurrent
// callers race on the row and at most one of them sees a changed row.
func (b *booking) Lock(ctx context.Context, id, token string, processedAt time.Time) error {
	result := GetTx(ctx, b.db).Model(&model.Booking{}).
		Where("id = ? AND status = ?", id, model.BookingStatusPending).
		Updates(map[string]any{
			"status":       model.BookingStatusProcessing,
			"processed_at": processedAt,
			"lock_token":   token,
			"updated_at":   processedAt,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

func (b *booking) Unlock(ctx context.Context, id, token string) error {
	result := GetTx(ctx, b.db).Model(&model.Booking{}).
		Where("id = ? AND status = ? AND lock_token = ?", id, model.BookingStatusProcessing, token).
		Updates(map[string]any{
			"status":       model.BookingStatusPending,
			"processed_at": nil,
			"lock_token":   nil,
			"updated_at":   time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

func (b *booking) Confirm(ctx context.Context, id, token, reference string, confirmedAt time.Time) error {
	result := GetTx(ctx, b.db).Model(&model.Booking{}).
		Where("id = ? AND status = ? AND lock_token = ?", id, model.BookingStatusProcessing, token).
		Updates(map[string]any{
			"status":             model.BookingStatusConfirmed,
			"paystack_reference": reference,
			"confirmed_at":       confirmedAt,
			"lock_token":         nil,
			"updated_at":         confirmedAt,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}
