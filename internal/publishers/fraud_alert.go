package publishers

import (
	"context"
	"encoding/json"

	"github.com/Behyna/hypeconnect/internal/service"
	"github.com/Behyna/hypeconnect/pkg/mq"
	"go.uber.org/zap"
)

const (
	FraudAlertQueue = "payments.fraud_alerts"
	batchSize       = 100
)

type FraudAlertPublisher interface {
	Publish(ctx context.Context) error
}

type fraudAlertPublisher struct {
	service   service.AlertQueueService
	publisher mq.Publisher
	logger    *zap.Logger
}

func NewFraudAlertPublisher(service service.AlertQueueService, publisher mq.Publisher, logger *zap.Logger) FraudAlertPublisher {
	return &fraudAlertPublisher{service: service, publisher: publisher, logger: logger}
}

func (f *fraudAlertPublisher) Publish(ctx context.Context) error {
	alerts, err := f.service.FindAlertsToQueue(ctx, batchSize)
	if err != nil {
		return err
	}

	if len(alerts) == 0 {
		return nil
	}

	f.logger.Info("Publishing fraud alerts", zap.Int("count", len(alerts)))

	successCount := 0
	for _, alert := range alerts {
		body, _ := json.Marshal(alert)
		if err := f.publisher.Publish(ctx, "", FraudAlertQueue, body); err != nil {
			f.logger.Error("Failed to publish fraud alert",
				zap.Error(err),
				zap.String("alertID", alert.AlertID))
			continue
		}

		if err := f.service.MarkAlertAsQueued(ctx, alert.AlertID); err != nil {
			continue
		}

		successCount++
	}

	if successCount > 0 {
		f.logger.Info("Successfully published fraud alerts",
			zap.Int("published", successCount),
			zap.Int("total", len(alerts)))
	}

	return nil
}
