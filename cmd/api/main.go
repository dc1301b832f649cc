package main

import (
	"context"
	"time"

	"github.com/Behyna/hypeconnect/internal/api"
	v1 "github.com/Behyna/hypeconnect/internal/api/v1"
	"github.com/Behyna/hypeconnect/internal/api/v1/middleware"
	"github.com/Behyna/hypeconnect/internal/api/validator"
	"github.com/Behyna/hypeconnect/internal/cache"
	"github.com/Behyna/hypeconnect/internal/config"
	"github.com/Behyna/hypeconnect/internal/database"
	errmiddleware "github.com/Behyna/hypeconnect/internal/error"
	"github.com/Behyna/hypeconnect/internal/metrics"
	"github.com/Behyna/hypeconnect/internal/repository"
	"github.com/Behyna/hypeconnect/internal/service"
	"github.com/Behyna/hypeconnect/pkg/httpclient"
	"github.com/Behyna/hypeconnect/pkg/paystack"
	"github.com/Behyna/hypeconnect/pkg/redis"
	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceName = "hypeconnect-payments"

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewMetrics,
			NewConnectionDB,
			NewRedisClient,
			NewFiber,

			repository.NewTransactionRepository,
			repository.NewFraudAlertRepository,
			repository.NewBookingRepository,
			repository.NewWalletRepository,
			repository.NewTransactionManager,

			NewPaystackClient,
			NewDeliveryGuard,
			NewPaymentService,
			NewWebhookService,
			service.NewLedgerService,
			service.NewFraudService,
			service.NewSettlementService,

			NewValidator,
			NewHandler,
			metrics.NewCollector,
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(app *fiber.App, handler *v1.Handler, collector *metrics.Collector, m *metrics.Metrics,
	cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
	app.Use(middleware.HealthCheckMiddleware(serviceName, collector.HealthCheck))
	app.Use(middleware.HTTPMetricsMiddleware(m, logger))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api.SetupRoutes(app, handler, cfg, m, logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			collector.Start(15*time.Second, cfg.API.Version)

			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("http server stopped", zap.Error(err))
				}
			}()

			logger.Info("payment api started", zap.String("port", cfg.API.Port))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping payment api")
			collector.Stop()
			return app.ShutdownWithContext(ctx)
		},
	})
}

func NewFiber(logger *zap.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      serviceName,
		ErrorHandler: errmiddleware.ErrorHandler(logger),
	})
}

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := database.NewConnection(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", zap.Error(err))
		return nil, err
	}

	return db, nil
}

func NewRedisClient(cfg *config.Config, logger *zap.Logger) (goredis.UniversalClient, error) {
	return redis.NewClient(cfg.Redis, logger)
}

func NewDeliveryGuard(client goredis.UniversalClient, cfg *config.Config, logger *zap.Logger) service.DeliveryGuard {
	return cache.NewDeliveryGuard(client, cfg.Payments.DeliveryGuardTTL, logger)
}

func NewPaystackClient(cfg *config.Config) paystack.Client {
	client := httpclient.NewHTTPClient(cfg.Paystack.Timeout)
	return paystack.NewClient(cfg.Paystack, client)
}

func NewPaymentService(ledger service.LedgerService, bookingRepo repository.BookingRepository, gateway paystack.Client,
	cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) service.PaymentService {
	return service.NewPaymentService(ledger, bookingRepo, gateway, service.PaymentOptions{
		Currency:               cfg.Paystack.Currency,
		CallbackURL:            cfg.Paystack.CallbackURL,
		DuplicateWindowMinutes: cfg.Payments.DuplicateWindowMinutes,
	}, m, logger)
}

func NewWebhookService(ledger service.LedgerService, fraud service.FraudService, settlement service.SettlementService,
	guard service.DeliveryGuard, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) service.WebhookService {
	return service.NewWebhookService(ledger, fraud, settlement, guard, service.WebhookOptions{
		MaxVariance: cfg.Payments.MaxVariance,
		Currency:    cfg.Paystack.Currency,
	}, m, logger)
}

func NewValidator(m *metrics.Metrics) validator.IXValidator {
	return validator.NewXValidator(playground.New(), m)
}

func NewHandler(logger *zap.Logger, payment service.PaymentService, ledger service.LedgerService,
	fraud service.FraudService, webhook service.WebhookService, xv validator.IXValidator,
	m *metrics.Metrics, cfg *config.Config) *v1.Handler {
	return v1.NewHandler(logger, payment, ledger, fraud, webhook, xv, m, cfg.JWT.AdminRole)
}
