package v1

import (
	"github.com/Behyna/hypeconnect/internal/api/contract"
	"github.com/Behyna/hypeconnect/internal/api/validator"
	"github.com/Behyna/hypeconnect/internal/metrics"
	"github.com/Behyna/hypeconnect/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	defaultPaymentsLimit = 20
	defaultFailureHours  = 24
)

type Handler struct {
	logger     *zap.Logger
	payment    service.PaymentService
	ledger     service.LedgerService
	fraud      service.FraudService
	webhook    service.WebhookService
	XValidator validator.IXValidator
	metrics    *metrics.Metrics
	adminRole  string
}

func NewHandler(logger *zap.Logger, payment service.PaymentService, ledger service.LedgerService,
	fraud service.FraudService, webhook service.WebhookService, XValidator validator.IXValidator,
	metrics *metrics.Metrics, adminRole string) *Handler {
	return &Handler{
		logger:     logger,
		payment:    payment,
		ledger:     ledger,
		fraud:      fraud,
		webhook:    webhook,
		XValidator: XValidator,
		metrics:    metrics,
		adminRole:  adminRole,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func success(c *fiber.Ctx, status int, message string, result any) error {
	return c.Status(status).JSON(contract.Response{
		Successful: true,
		Code:       "success",
		Message:    message,
		Result:     result,
	})
}
