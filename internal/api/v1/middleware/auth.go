package middleware

import (
	"strings"

	"github.com/Behyna/hypeconnect/pkg/token"
	"github.com/gofiber/fiber/v2"
)

const claimsContextKey = "authClaims"

// Auth validates the bearer token and stores its claims on the request.
func Auth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		claims, err := token.Parse(secret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(claimsContextKey, claims)
		return c.Next()
	}
}

// RequireRole must run after Auth.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := GetClaims(c)
		if !ok || claims.Role != role {
			return fiber.NewError(fiber.StatusForbidden, "insufficient role")
		}

		return c.Next()
	}
}

func GetClaims(c *fiber.Ctx) (*token.Claims, bool) {
	claims, ok := c.Locals(claimsContextKey).(*token.Claims)
	return claims, ok
}
