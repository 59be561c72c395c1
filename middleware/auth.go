package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/komunitas-muda/backoffice/services"
	"github.com/komunitas-muda/backoffice/utils"
)

// ClaimsKey is where AuthRequired stores the verified claims in locals.
const ClaimsKey = "admin_claims"

// AuthRequired verifies the Authorization bearer token and stores the
// claims for handlers to read.
func AuthRequired(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return utils.SendUnauthorized(c, "missing authorization header")
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header {
			return utils.SendUnauthorized(c, "authorization header must be a bearer token")
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			return utils.SendUnauthorized(c, "invalid or expired token")
		}

		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}

// ClaimsFromContext returns the claims AuthRequired stored, or nil on
// unauthenticated routes.
func ClaimsFromContext(c *fiber.Ctx) *services.AdminClaims {
	claims, _ := c.Locals(ClaimsKey).(*services.AdminClaims)
	return claims
}
