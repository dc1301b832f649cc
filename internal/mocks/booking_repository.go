package mocks

import (
	"context"
	"time"

	"github.com/Behyna/hypeconnect/internal/model"
	"github.com/stretchr/testify/mock"
)

type BookingRepository struct {
	mock.Mock
}

func (b *BookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	args := b.Called(ctx, id)
	bk, _ := args.Get(0).(*model.Booking)
	return bk, args.Error(1)
}

func (b *BookingRepository) Lock(ctx context.Context, id, token string, processedAt time.Time) error {
	args := b.Called(ctx, id, token, processedAt)
	return args.Error(0)
}

func (b *BookingRepository) Unlock(ctx context.Context, id, token string) error {
	args := b.Called(ctx, id, token)
	return args.Error(0)
}

func (b *BookingRepository) Confirm(ctx context.Context, id, token, reference string, confirmedAt time.Time) error {
	args := b.Called(ctx, id, token, reference, confirmedAt)
	return args.Error(0)
}
