package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Behyna/hypeconnect/internal/api/v1/middleware"
	"github.com/Behyna/hypeconnect/internal/metrics"
	"github.com/Behyna/hypeconnect/pkg/token"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHealthCheckMiddleware(t *testing.T) {
	testCases := []struct {
		name   string
		check  func() error
		status int
		want   string
	}{
		{name: "no check", check: nil, status: http.StatusOK, want: "healthy"},
		{name: "database up", check: func() error { return nil }, status: http.StatusOK, want: "healthy"},
		{name: "database down", check: func() error { return errors.New("refused") }, status: http.StatusServiceUnavailable, want: "unhealthy"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(middleware.HealthCheckMiddleware("payments", tc.check))

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.want, body["status"])
			assert.Equal(t, "payments", body["service"])
		})
	}
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())

	app := fiber.New()
	app.Use(middleware.HTTPMetricsMiddleware(m, zap.NewNop()))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestsTotal))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.HTTPRequestsInFlight))
}

func TestAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/me", middleware.Auth("secret"), func(c *fiber.Ctx) error {
		claims, ok := middleware.GetClaims(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(claims.Subject + ":" + claims.Role)
	})

	valid, err := token.Generate("secret", "user-1", "user", time.Hour)
	require.NoError(t, err)
	expired, err := token.Generate("secret", "user-1", "user", -time.Minute)
	require.NoError(t, err)

	testCases := []struct {
		name   string
		header string
		status int
	}{
		{name: "valid", header: "Bearer " + valid, status: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + valid, status: http.StatusOK},
		{name: "missing", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, status: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, status: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer abc.def.ghi", status: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", middleware.RequireRole("admin"), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
