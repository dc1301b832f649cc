package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type DeliveryGuard struct {
	mock.Mock
}

func (d *DeliveryGuard) Acquire(ctx context.Context, key string) bool {
	args := d.Called(ctx, key)
	return args.Bool(0)
}

func (d *DeliveryGuard) Release(ctx context.Context, key string) {
	d.Called(ctx, key)
}
