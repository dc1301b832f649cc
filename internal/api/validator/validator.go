package validator

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Behyna/hypeconnect/internal/api/contract"
	"github.com/Behyna/hypeconnect/internal/constants"
	"github.com/Behyna/hypeconnect/internal/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	sep = " and "
)

type Error struct {
	Error       bool
	FailedField string
	Tag         string
	Value       interface{}
}

type IXValidator interface {
	Validator(data any, message string, c *fiber.Ctx) (responseErr contract.Response)
	ValidateQuery(data any, message string, c *fiber.Ctx) (responseErr contract.Response)
	Validate(data interface{}) []Error
}

type XValidator struct {
	validator *validator.Validate
	metrics   *metrics.Metrics
}

func NewXValidator(validator *validator.Validate, metrics *metrics.Metrics) IXValidator {
	for key, function := range valid {
		_ = validator.RegisterValidation(key, function)
	}

	return &XValidator{
		validator: validator,
		metrics:   metrics,
	}
}

// Validator parses the request body into data, which must be a pointer, and
// validates it. A zero Response means the request is valid.
func (x XValidator) Validator(data any, message string, c *fiber.Ctx) (responseErr contract.Response) {
	if err := c.BodyParser(data); err != nil {
		c.Status(http.StatusBadRequest)
		return contract.Response{
			Code:    constants.ErrCodeInvalidRequestBody,
			Message: constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
		}
	}

	return x.check(data, message, c)
}

func (x XValidator) ValidateQuery(data any, message string, c *fiber.Ctx) (responseErr contract.Response) {
	if err := c.QueryParser(data); err != nil {
		c.Status(http.StatusBadRequest)
		return contract.Response{
			Code:    constants.ErrCodeInvalidQuery,
			Message: constants.GetErrorMessage(constants.ErrCodeInvalidQuery),
		}
	}

	return x.check(data, message, c)
}

func (x XValidator) check(data any, message string, c *fiber.Ctx) contract.Response {
	errs := x.Validate(data)
	if len(errs) == 0 || !errs[0].Error {
		return contract.Response{}
	}

	errMsgs := make([]string, 0, len(errs))
	for _, err := range errs {
		errMsgs = append(errMsgs, fmt.Sprintf(message, err.FailedField))

		if x.metrics != nil {
			x.metrics.RecordValidationError(err.FailedField, err.Tag)
		}
	}

	c.Status(http.StatusUnprocessableEntity)

	return contract.Response{
		Code:    constants.ErrCodeValidationFailed,
		Message: strings.Join(errMsgs, sep),
	}
}

func (x XValidator) Validate(data interface{}) []Error {
	var validationErrors []Error

	errs := x.validator.Struct(data)
	if errs != nil {
		verrs, ok := errs.(validator.ValidationErrors)
		if !ok {
			return []Error{{Error: true, FailedField: "request", Tag: "struct"}}
		}

		for _, err := range verrs {
			var elem Error
			elem.FailedField = err.Field()
			elem.Tag = err.Tag()
			elem.Value = err.Value()
			elem.Error = true
			validationErrors = append(validationErrors, elem)
		}
	}
	return validationErrors
}
