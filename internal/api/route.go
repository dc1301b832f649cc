package api

import (
	v1 "github.com/Behyna/hypeconnect/internal/api/v1"
	"github.com/Behyna/hypeconnect/internal/api/v1/middleware"
	"github.com/Behyna/hypeconnect/internal/config"
	"github.com/Behyna/hypeconnect/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const prefixV1 = "api/v1/"

func SetupRoutes(app *fiber.App, handler *v1.Handler, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) {
	auth := middleware.Auth(cfg.JWT.Secret)
	admin := middleware.RequireRole(cfg.JWT.AdminRole)

	app.Get("/ping", handler.Pong)

	app.Post(prefixV1+"payments/initialize", auth, handler.InitializePayment)
	app.Get(prefixV1+"payments", auth, handler.ListPayments)
	app.Get(prefixV1+"payments/:reference", auth, handler.GetPayment)

	app.Post(prefixV1+"webhooks/paystack", middleware.PaystackSignature(cfg.Paystack.SecretKey, m, logger),
		handler.PaystackWebhook)

	app.Get(prefixV1+"admin/fraud-alerts", auth, admin, handler.ListFraudAlerts)
	app.Post(prefixV1+"admin/fraud-alerts/:id/resolve", auth, admin, handler.ResolveFraudAlert)
	app.Get(prefixV1+"admin/transactions/stats", auth, admin, handler.TransactionStats)
	app.Get(prefixV1+"admin/transactions/failures", auth, admin, handler.RecentFailures)
	app.Post(prefixV1+"admin/transactions/reconcile", auth, admin, handler.Reconcile)
}
