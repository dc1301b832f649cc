package mocks

import (
	"context"

	"github.com/Behyna/hypeconnect/internal/service"
	"github.com/stretchr/testify/mock"
)

type AlertQueueService struct {
	mock.Mock
}

func (a *AlertQueueService) FindAlertsToQueue(ctx context.Context, limit int) ([]service.FraudAlertMessage, error) {
	args := a.Called(ctx, limit)
	msgs, _ := args.Get(0).([]service.FraudAlertMessage)
	return msgs, args.Error(1)
}

func (a *AlertQueueService) MarkAlertAsQueued(ctx context.Context, alertID string) error {
	args := a.Called(ctx, alertID)
	return args.Error(0)
}

type NotificationService struct {
	mock.Mock
}

func (n *NotificationService) NotifyFraudAlert(ctx context.Context, msg service.FraudAlertMessage) error {
	args := n.Called(ctx, msg)
	return args.Error(0)
}
