package v1

import (
	"github.com/Behyna/hypeconnect/internal/api/v1/middleware"
	"github.com/Behyna/hypeconnect/internal/constants"
	"github.com/Behyna/hypeconnect/internal/model"
	"github.com/Behyna/hypeconnect/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (h *Handler) ListFraudAlerts(c *fiber.Ctx) error {
	var request GetAlertsRequest
	if responseError := h.XValidator.ValidateQuery(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		return c.JSON(responseError)
	}

	alerts, err := h.fraud.GetFraudAlerts(c.UserContext(), service.GetAlertsQuery{
		Limit:    request.Limit,
		Status:   model.AlertStatus(request.Status),
		Type:     model.AlertType(request.Type),
		Severity: model.Severity(request.Severity),
	})
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, constants.AlertsRetrieved, ListAlertsResponse{Alerts: alerts, Total: len(alerts)})
}

func (h *Handler) ResolveFraudAlert(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var request ResolveAlertRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		return c.JSON(responseError)
	}

	alertID := c.Params("id")

	alert, err := h.fraud.ResolveFraudAlert(c.UserContext(), service.ResolveAlertCommand{
		AlertID:    alertID,
		Resolution: model.Resolution(request.Resolution),
		ReviewedBy: claims.Subject,
		Notes:      request.Notes,
	})
	if err != nil {
		h.logger.Warn("Failed to resolve fraud alert",
			zap.Error(err),
			zap.String("alertID", alertID),
			zap.String("reviewer", claims.Subject))
		return err
	}

	return success(c, fiber.StatusOK, constants.AlertResolved, alert)
}

func (h *Handler) TransactionStats(c *fiber.Ctx) error {
	stats, err := h.ledger.GetStats(c.UserContext())
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, constants.StatsRetrieved, stats)
}

func (h *Handler) RecentFailures(c *fiber.Ctx) error {
	var request RecentFailuresRequest
	if responseError := h.XValidator.ValidateQuery(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		return c.JSON(responseError)
	}

	hours := request.Hours
	if hours == 0 {
		hours = defaultFailureHours
	}

	records, err := h.ledger.GetRecentFailures(c.UserContext(), hours)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, constants.FailuresRetrieved, ListPaymentsResponse{Payments: records, Total: len(records)})
}

func (h *Handler) Reconcile(c *fiber.Ctx) error {
	report, err := h.ledger.Reconcile(c.UserContext())
	if err != nil {
		return err
	}

	h.logger.Info("Reconciliation requested",
		zap.Int64("checked", report.Checked),
		zap.Int("issues", len(report.Issues)))

	return success(c, fiber.StatusOK, constants.ReconcileCompleted, report)
}
