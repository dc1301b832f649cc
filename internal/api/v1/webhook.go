package v1

import (
	"github.com/Behyna/hypeconnect/internal/constants"
	"github.com/Behyna/hypeconnect/internal/service"
	"github.com/Behyna/hypeconnect/pkg/paystack"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PaystackWebhook runs behind the signature middleware. It answers 200 for
// every handled outcome so the gateway stops retrying, and 500 only when the
// ledger could not be written.
func (h *Handler) PaystackWebhook(c *fiber.Ctx) error {
	event, err := paystack.ParseEvent(c.Body())
	if err != nil {
		h.logger.Warn("Signed webhook with unreadable body",
			zap.Error(err),
			zap.Int("bodySize", len(c.Body())))
		return success(c, fiber.StatusOK, constants.WebhookAcknowledged,
			WebhookAckResponse{Outcome: string(service.OutcomeIgnored)})
	}

	outcome, err := h.webhook.HandleEvent(c.UserContext(), service.WebhookEvent{
		Event:           event.Event,
		Reference:       event.Data.Reference,
		Amount:          event.Data.Amount,
		Currency:        event.Data.Currency,
		Status:          event.Data.Status,
		Metadata:        event.Data.Metadata(),
		GatewayResponse: event.Data.GatewayResponse,
	})
	if err != nil {
		h.logger.Error("Webhook processing failed",
			zap.Error(err),
			zap.String("event", event.Event),
			zap.String("reference", event.Data.Reference))
		return err
	}

	h.logger.Info("Webhook processed",
		zap.String("event", event.Event),
		zap.String("reference", event.Data.Reference),
		zap.String("outcome", string(outcome)))

	return success(c, fiber.StatusOK, constants.WebhookAcknowledged, WebhookAckResponse{Outcome: string(outcome)})
}
