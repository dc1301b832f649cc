package mocks

import (
	"context"

	"github.com/Behyna/hypeconnect/pkg/mq"
	"github.com/Behyna/hypeconnect/pkg/paystack"
	"github.com/stretchr/testify/mock"
)

type PaystackClient struct {
	mock.Mock
}

func (p *PaystackClient) Initialize(ctx context.Context, request paystack.InitializeRequest) (paystack.InitializeResponse, error) {
	args := p.Called(ctx, request)
	return args.Get(0).(paystack.InitializeResponse), args.Error(1)
}

func (p *PaystackClient) Verify(ctx context.Context, reference string) (paystack.VerifyResponse, error) {
	args := p.Called(ctx, reference)
	return args.Get(0).(paystack.VerifyResponse), args.Error(1)
}

type Notifier struct {
	mock.Mock
}

func (n *Notifier) Send(ctx context.Context, text string) error {
	args := n.Called(ctx, text)
	return args.Error(0)
}

type Publisher struct {
	mock.Mock
}

func (p *Publisher) Publish(ctx context.Context, exchange string, routingKey string, body []byte) error {
	args := p.Called(ctx, exchange, routingKey, body)
	return args.Error(0)
}

type Consumer struct {
	mock.Mock
}

func (c *Consumer) Consume(ctx context.Context, prefetch int, queue string, handler mq.Handle) error {
	args := c.Called(ctx, prefetch, queue, handler)
	return args.Error(0)
}
