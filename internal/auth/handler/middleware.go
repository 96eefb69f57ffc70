package handler

import (
	"strings"

	"github.com/FJR5209/Dashboard-backend/internal/auth/service"
	apperrors "github.com/FJR5209/Dashboard-backend/internal/errors"
	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

// RequireAuth validates the bearer token and stores its claims in the
// request context for downstream handlers.
func (h *AuthHandler) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": apperrors.ErrMissingToken.Error(),
			})
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims, err := h.tokenService.VerifyToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": apperrors.ErrInvalidToken.Error(),
			})
		}

		c.Locals(claimsKey, claims)

		return c.Next()
	}
}

// RequireRole rejects requests whose verified claims lack the given role.
// Must run after RequireAuth.
func (h *AuthHandler) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := MustClaims(c)
		if claims.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": apperrors.ErrForbidden.Error(),
			})
		}

		return c.Next()
	}
}

// RequireSelfOrRole allows the acting user through for their own record,
// or anyone holding the given role.
func (h *AuthHandler) RequireSelfOrRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := MustClaims(c)
		if claims.UserID != c.Params("id") && claims.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": apperrors.ErrForbidden.Error(),
			})
		}

		return c.Next()
	}
}

// MustClaims returns the claims stored by RequireAuth. It panics when the
// middleware did not run, which is a routing bug, not a runtime condition.
func MustClaims(c *fiber.Ctx) *service.JWTCustomClaims {
	claims, ok := c.Locals(claimsKey).(*service.JWTCustomClaims)
	if !ok {
		panic("handler: route is missing the RequireAuth middleware")
	}
	return claims
}
