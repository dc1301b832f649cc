package middleware

import (
	"github.com/Behyna/hypeconnect/internal/api/contract"
	"github.com/Behyna/hypeconnect/internal/constants"
	"github.com/Behyna/hypeconnect/internal/metrics"
	"github.com/Behyna/hypeconnect/pkg/paystack"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PaystackSignature rejects deliveries whose body does not carry a valid
// HMAC-SHA512 signature for secretKey.
func PaystackSignature(secretKey string, m *metrics.Metrics, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if paystack.VerifySignature(secretKey, c.Body(), c.Get(paystack.SignatureHeader)) {
			return c.Next()
		}

		m.RecordSignatureFailure()
		logger.Warn("Rejected webhook with invalid signature",
			zap.String("ip", c.IP()),
			zap.Int("bodySize", len(c.Body())))

		return c.Status(fiber.StatusUnauthorized).JSON(contract.ResponseError{
			Code:    constants.ErrCodeInvalidSignature,
			Message: constants.GetErrorMessage(constants.ErrCodeInvalidSignature),
		})
	}
}
