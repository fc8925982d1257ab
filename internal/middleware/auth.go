package middleware

import (
	"strings"

	"jinji/attendance-sync/internal/models"
	"jinji/attendance-sync/internal/service"

	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

// TokenParser verifies bearer tokens.
type TokenParser interface {
	ParseToken(token string) (*service.Claims, error)
}

// Auth rejects requests without a valid bearer token and stores the claims
// for handlers.
func Auth(parser TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: "missing bearer token"})
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := parser.ParseToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: err.Error()})
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// Claims returns the claims stored by Auth, or nil.
func Claims(c *fiber.Ctx) *service.Claims {
	claims, _ := c.Locals(claimsKey).(*service.Claims)
	return claims
}
