package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Abhishek200416/p2/internal/auth"
	"github.com/Abhishek200416/p2/internal/utils"
)

// RequireOwner guards owner-only routes. The status split is part of the
// contract: a missing or malformed Authorization header is 403, a header
// that is present but carries a bad or expired token is 401, and a valid
// token with the wrong role is 403.
func RequireOwner(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return utils.JSONError(c, fiber.StatusForbidden, "Not authenticated")
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return utils.JSONError(c, fiber.StatusForbidden, "Not authenticated")
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				return utils.JSONError(c, fiber.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrWrongRole):
				return utils.JSONError(c, fiber.StatusForbidden, "Insufficient permissions")
			default:
				return utils.JSONError(c, fiber.StatusUnauthorized, "Invalid token")
			}
		}
		c.Locals("claims", claims)
		return c.Next()
	}
}
