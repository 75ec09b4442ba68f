package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/feed-service/internal/domain"
	"github.com/spec-kit/feed-service/pkg/util"
)

// RequireRole ensures the authenticated principal holds one of the allowed
// roles. Runs after AuthMiddleware.Handle, so an unauthenticated request can
// never reach the role check.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return util.NewUnauthorized("Missing or invalid Bearer token provided.")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return util.NewForbidden("Forbidden")
		}
		return c.Next()
	}
}
