package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Behyna/hypeconnect/internal/metrics"
	"github.com/Behyna/hypeconnect/pkg/mq"
	"github.com/Behyna/hypeconnect/pkg/paystack"
	"github.com/Behyna/hypeconnect/pkg/telegram"
	"go.uber.org/zap"
)

type NotificationService interface {
	NotifyFraudAlert(ctx context.Context, msg FraudAlertMessage) error
}

type notification struct {
	notifier telegram.Notifier
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewNotificationService(notifier telegram.Notifier, m *metrics.Metrics, logger *zap.Logger) NotificationService {
	return &notification{notifier: notifier, metrics: m, logger: logger}
}

// NotifyFraudAlert forwards the alert to the admin channel. Rate limits and
// outages come back as temporary errors so the delivery is requeued.
func (n *notification) NotifyFraudAlert(ctx context.Context, msg FraudAlertMessage) error {
	err := n.notifier.Send(ctx, FormatFraudAlert(msg))
	if err == nil {
		n.logger.Info("Fraud alert sent to admins",
			zap.String("alertID", msg.AlertID),
			zap.String("type", msg.Type))
		return nil
	}

	n.metrics.RecordAlertNotificationError()

	if telegram.IsRetryable(err) {
		n.logger.Warn("Fraud alert notification will be retried",
			zap.String("alertID", msg.AlertID),
			zap.Error(err))
		return mq.Temporary(err)
	}

	n.logger.Error("Fraud alert notification rejected",
		zap.String("alertID", msg.AlertID),
		zap.Error(err))

	return err
}

func FormatFraudAlert(msg FraudAlertMessage) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s\n", strings.ToUpper(msg.Severity), msg.Type)
	fmt.Fprintf(&b, "Reference: %s\n", msg.Reference)
	if msg.ExpectedAmount != 0 || msg.ActualAmount != 0 {
		actual := fmt.Sprintf("%d", msg.ActualAmount)
		if msg.ActualMinor%100 != 0 {
			actual = paystack.ToMajor(msg.ActualMinor).StringFixed(2)
		}
		fmt.Fprintf(&b, "Expected: %d\nActual: %s\nDiscrepancy: %d\n", msg.ExpectedAmount, actual, msg.Discrepancy)
	}
	if msg.Description != "" {
		fmt.Fprintf(&b, "%s\n", msg.Description)
	}
	fmt.Fprintf(&b, "Alert: %s at %s", msg.AlertID, msg.CreatedAt)

	return b.String()
}
