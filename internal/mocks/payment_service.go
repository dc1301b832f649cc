package mocks

import (
	"context"

	"github.com/Behyna/hypeconnect/internal/service"
	"github.com/stretchr/testify/mock"
)

type PaymentService struct {
	mock.Mock
}

func (p *PaymentService) Initialize(ctx context.Context, cmd service.InitializePaymentCommand) (service.InitializePaymentResponse, error) {
	args := p.Called(ctx, cmd)
	return args.Get(0).(service.InitializePaymentResponse), args.Error(1)
}

func (p *PaymentService) Status(ctx context.Context, query service.PaymentStatusQuery) (service.PaymentStatusResponse, error) {
	args := p.Called(ctx, query)
	return args.Get(0).(service.PaymentStatusResponse), args.Error(1)
}

type WebhookService struct {
	mock.Mock
}

func (w *WebhookService) HandleEvent(ctx context.Context, event service.WebhookEvent) (service.WebhookOutcome, error) {
	args := w.Called(ctx, event)
	return args.Get(0).(service.WebhookOutcome), args.Error(1)
}
