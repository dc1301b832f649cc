package main

import (
	"context"

	"github.com/Behyna/hypeconnect/internal/config"
	"github.com/Behyna/hypeconnect/internal/consumers"
	"github.com/Behyna/hypeconnect/internal/metrics"
	"github.com/Behyna/hypeconnect/internal/publishers"
	"github.com/Behyna/hypeconnect/internal/service"
	"github.com/Behyna/hypeconnect/pkg/httpclient"
	"github.com/Behyna/hypeconnect/pkg/mq"
	"github.com/Behyna/hypeconnect/pkg/telegram"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewMetrics,
			NewMQConnection,
			NewMQConsumer,

			NewNotifier,
			service.NewNotificationService,

			consumers.NewFraudAlertConsumer,
		),
		fx.Invoke(runFraudAlertConsumer),
	).Run()
}

func runFraudAlertConsumer(consumer consumers.FraudAlertConsumer, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle,
) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{publishers.FraudAlertQueue}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}
			logger.Info("queue declared", zap.String("queue", publishers.FraudAlertQueue))

			go func() {
				if err := consumer.Consume(appCtx); err != nil {
					logger.Error("consumer exited", zap.Error(err))
				}
			}()

			logger.Info("fraud alert notifier started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping fraud alert notifier")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}

func NewNotifier(cfg *config.Config) telegram.Notifier {
	client := httpclient.NewHTTPClient(cfg.Telegram.Timeout, httpclient.WithUserAgent("hypeconnect-alerts/1.0"))
	return telegram.NewNotifier(cfg.Telegram, client)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQConsumer(rabbitMQ *mq.RabbitMQ) (mq.Consumer, error) {
	return rabbitMQ.CreateConsumer()
}
