package consumers

import (
	"context"
	"encoding/json"

	"github.com/Behyna/hypeconnect/internal/publishers"
	"github.com/Behyna/hypeconnect/internal/service"
	"github.com/Behyna/hypeconnect/pkg/mq"
	"go.uber.org/zap"
)

type FraudAlertConsumer interface {
	Consume(ctx context.Context) error
}

type fraudAlertConsumer struct {
	service  service.NotificationService
	consumer mq.Consumer
	logger   *zap.Logger
}

func NewFraudAlertConsumer(service service.NotificationService, consumer mq.Consumer, logger *zap.Logger) FraudAlertConsumer {
	return &fraudAlertConsumer{service: service, consumer: consumer, logger: logger}
}

func (f *fraudAlertConsumer) Consume(ctx context.Context) error {
	return f.consumer.Consume(ctx, 1, publishers.FraudAlertQueue, f.handleMessage)
}

func (f *fraudAlertConsumer) handleMessage(ctx context.Context, body []byte) error {
	f.logger.Info("received fraud alert", zap.ByteString("body", body))

	var msg service.FraudAlertMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		f.logger.Warn("invalid fraud alert message", zap.Error(err))
		return err
	}

	return f.service.NotifyFraudAlert(ctx, msg)
}
