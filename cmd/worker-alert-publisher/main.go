package main

import (
	"context"
	"time"

	"github.com/Behyna/hypeconnect/internal/config"
	"github.com/Behyna/hypeconnect/internal/database"
	"github.com/Behyna/hypeconnect/internal/metrics"
	"github.com/Behyna/hypeconnect/internal/publishers"
	"github.com/Behyna/hypeconnect/internal/repository"
	"github.com/Behyna/hypeconnect/internal/service"
	"github.com/Behyna/hypeconnect/pkg/mq"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const defaultPublishInterval = 30 * time.Second

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewMetrics,

			database.NewConnection,
			NewMQConnection,
			NewMQPublisher,

			repository.NewFraudAlertRepository,

			service.NewAlertQueueService,

			publishers.NewFraudAlertPublisher,
		),
		fx.Invoke(runFraudAlertPublisher),
	).Run()
}

func runFraudAlertPublisher(cfg *config.Config, publisher publishers.FraudAlertPublisher, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle) {
	interval := cfg.Worker.PublishInterval
	if interval <= 0 {
		interval = defaultPublishInterval
	}

	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{publishers.FraudAlertQueue}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}

			logger.Info("queue declared", zap.String("queue", publishers.FraudAlertQueue))

			go func() {
				ticker := time.NewTicker(interval)
				defer ticker.Stop()

				for {
					select {
					case <-ticker.C:
						if err := publisher.Publish(appCtx); err != nil {
							logger.Error("failed to publish fraud alerts", zap.Error(err))
						}
					case <-appCtx.Done():
						logger.Info("publisher context cancelled")
						return
					}
				}
			}()

			logger.Info("fraud alert publisher started", zap.Duration("interval", interval))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping fraud alert publisher")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
}
