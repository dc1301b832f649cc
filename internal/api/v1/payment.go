package v1

import (
	"github.com/Behyna/hypeconnect/internal/api/v1/middleware"
	"github.com/Behyna/hypeconnect/internal/constants"
	"github.com/Behyna/hypeconnect/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (h *Handler) InitializePayment(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var request InitializePaymentRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		h.logger.Warn("Invalid payment request", zap.String("userID", claims.Subject), zap.String("code", responseError.Code))
		return c.JSON(responseError)
	}

	resp, err := h.payment.Initialize(c.UserContext(), service.InitializePaymentCommand{
		UserID:      claims.Subject,
		Email:       request.Email,
		BookingID:   request.BookingID,
		CallbackURL: request.CallbackURL,
	})
	if err != nil {
		h.logger.Error("Failed to initialize payment",
			zap.Error(err),
			zap.String("userID", claims.Subject),
			zap.String("bookingID", request.BookingID))
		return err
	}

	return success(c, fiber.StatusCreated, constants.PaymentInitialized, resp)
}

// GetPayment returns a payment to its owner or to an admin. Anyone else gets
// not found.
func (h *Handler) GetPayment(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	reference := c.Params("reference")

	resp, err := h.payment.Status(c.UserContext(), service.PaymentStatusQuery{
		Reference:   reference,
		RequesterID: claims.Subject,
		Admin:       claims.Role == h.adminRole,
	})
	if err != nil {
		h.logger.Debug("Payment lookup failed",
			zap.String("reference", reference),
			zap.String("userID", claims.Subject),
			zap.Error(err))
		return err
	}

	return success(c, fiber.StatusOK, constants.PaymentRetrieved, resp)
}

func (h *Handler) ListPayments(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var request ListPaymentsRequest
	if responseError := h.XValidator.ValidateQuery(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		return c.JSON(responseError)
	}

	limit := request.Limit
	if limit == 0 {
		limit = defaultPaymentsLimit
	}

	records, err := h.ledger.GetForUser(c.UserContext(), claims.Subject, limit)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, constants.PaymentsRetrieved, ListPaymentsResponse{Payments: records, Total: len(records)})
}
