package middleware

import (
	"errors"

	"github.com/Behyna/hypeconnect/internal/api/contract"
	"github.com/Behyna/hypeconnect/internal/constants"
	"github.com/Behyna/hypeconnect/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(contract.ResponseError{
				Code:    fiberCode(fiberErr.Code),
				Message: fiberErr.Message,
			})
		}

		logger.Error("Unhandled request error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(contract.ResponseError{
			Code:    constants.ErrCodeInternalError,
			Message: constants.GetErrorMessage(constants.ErrCodeInternalError),
		})
	}
}

func handleServiceError(c *fiber.Ctx, err service.Error) error {
	errorCode := err.Code

	status := constants.GetHTTPStatus(errorCode)
	if status == fiber.StatusInternalServerError && err.Code != constants.ErrCodeLedgerWrite {
		errorCode = constants.ErrCodeInternalError
	}

	return c.Status(status).JSON(contract.ResponseError{
		Code:    errorCode,
		Message: constants.GetErrorMessage(errorCode),
	})
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusUnauthorized:
		return constants.ErrCodeUnauthorized
	case fiber.StatusForbidden:
		return constants.ErrCodeForbidden
	case fiber.StatusBadRequest:
		return constants.ErrCodeInvalidRequestBody
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	default:
		return constants.ErrCodeInternalError
	}
}
