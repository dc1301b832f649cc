package mocks

import (
	"context"

	"github.com/Behyna/hypeconnect/internal/service"
	"github.com/stretchr/testify/mock"
)

type SettlementService struct {
	mock.Mock
}

func (s *SettlementService) Lock(ctx context.Context, bookingID string) service.LockResult {
	args := s.Called(ctx, bookingID)
	return args.Get(0).(service.LockResult)
}

func (s *SettlementService) Unlock(ctx context.Context, bookingID, token string) bool {
	args := s.Called(ctx, bookingID, token)
	return args.Bool(0)
}

func (s *SettlementService) Settle(ctx context.Context, cmd service.SettleCommand) error {
	args := s.Called(ctx, cmd)
	return args.Error(0)
}

func (s *SettlementService) IsSettledWith(ctx context.Context, bookingID, reference string) bool {
	args := s.Called(ctx, bookingID, reference)
	return args.Bool(0)
}
