package service

import (
	"context"
	"time"

	"github.com/Behyna/hypeconnect/internal/metrics"
	"github.com/Behyna/hypeconnect/internal/repository"
	"go.uber.org/zap"
)

type AlertQueueService interface {
	FindAlertsToQueue(ctx context.Context, limit int) ([]FraudAlertMessage, error)
	MarkAlertAsQueued(ctx context.Context, alertID string) error
}

type alertQueue struct {
	alertRepo repository.FraudAlertRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewAlertQueueService(alertRepo repository.FraudAlertRepository, m *metrics.Metrics, logger *zap.Logger) AlertQueueService {
	return &alertQueue{alertRepo: alertRepo, metrics: m, logger: logger}
}

func (a *alertQueue) FindAlertsToQueue(ctx context.Context, limit int) ([]FraudAlertMessage, error) {
	a.logger.Debug("Finding fraud alerts to publish", zap.Int("batchSize", limit))

	alerts, err := a.alertRepo.FindUnpublished(limit)
	if err != nil {
		a.logger.Error("Failed to find unpublished fraud alerts", zap.Error(err))
		return nil, err
	}

	if len(alerts) == 0 {
		return nil, nil
	}

	messages := make([]FraudAlertMessage, 0, len(alerts))
	for _, alert := range alerts {
		messages = append(messages, FraudAlertMessage{
			AlertID:        alert.ID,
			Reference:      alert.Reference,
			Type:           string(alert.Type),
			Severity:       string(alert.Severity),
			ExpectedAmount: alert.ExpectedAmount,
			ActualAmount:   alert.ActualAmount,
			Discrepancy:    alert.Discrepancy,
			ActualMinor:    alert.ActualMinor,
			Description:    alert.Description,
			CreatedAt:      alert.Timestamp.UTC().Format(time.RFC3339),
		})
	}

	return messages, nil
}

func (a *alertQueue) MarkAlertAsQueued(ctx context.Context, alertID string) error {
	if err := a.alertRepo.MarkPublished(ctx, alertID, time.Now()); err != nil {
		a.logger.Error("Failed to mark fraud alert as published",
			zap.Error(err),
			zap.String("alertID", alertID))
		return err
	}

	a.metrics.RecordAlertPublished()
	a.logger.Debug("Marked fraud alert as published", zap.String("alertID", alertID))

	return nil
}
