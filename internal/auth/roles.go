package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/pawup/shelter-api/pkg/util"
)

// RequireAccess ensures the authenticated identity carries one of the allowed
// access tags. It must run after AuthMiddleware.Handle.
func RequireAccess(allowed ...string) fiber.Handler {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, access := range allowed {
		allowedSet[access] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated(ErrMissingToken)
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[identity.Access]; !exists {
			return apperrors.NewForbidden("insufficient access")
		}
		return c.Next()
	}
}
