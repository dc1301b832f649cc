package paystack_test

import (
	"testing"

	"github.com/Behyna/hypeconnect/pkg/paystack"
	"github.com/stretchr/testify/assert"
)

func TestMapStatusToError(t *testing.T) {
	testCases := []struct {
		name          string
		statusCode    int
		expectedError error
	}{
		{name: "BadRequest", statusCode: 400, expectedError: paystack.ErrBadRequest},
		{name: "Unauthorized", statusCode: 401, expectedError: paystack.ErrUnauthorized},
		{name: "NotFound", statusCode: 404, expectedError: paystack.ErrTransactionNotFound},
		{name: "InternalServerError", statusCode: 500, expectedError: paystack.ErrServerError},
		{name: "BadGateway", statusCode: 502, expectedError: paystack.ErrServerError},
		{name: "TooManyRequests", statusCode: 429, expectedError: paystack.ErrServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := paystack.MapStatusToError(tc.statusCode)
			assert.Equal(t, tc.expectedError, err)
		})
	}
}
