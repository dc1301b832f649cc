package mocks

import (
	"context"

	"github.com/Behyna/hypeconnect/internal/model"
	"github.com/stretchr/testify/mock"
)

type WalletRepository struct {
	mock.Mock
}

func (w *WalletRepository) Credit(ctx context.Context, entry *model.WalletEntry) error {
	args := w.Called(ctx, entry)
	return args.Error(0)
}

func (w *WalletRepository) FindByHypemanID(ctx context.Context, hypemanID string) (model.HypemanWallet, error) {
	args := w.Called(ctx, hypemanID)
	return args.Get(0).(model.HypemanWallet), args.Error(1)
}
