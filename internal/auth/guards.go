package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/cookfarm/pantry-service/pkg/util/errorutil"
)

// RequirePrincipal rejects requests that carry no authenticated caller.
func RequirePrincipal() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireOwner rejects an authenticated caller acting on another user's resources,
// identified by the named route parameter. Anonymous requests pass; whether they are
// allowed at all is decided by the authentication middleware.
func RequireOwner(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return c.Next()
		}
		if principal.User.ID != c.Params(param) {
			return apperrors.NewForbidden("cannot access another user's ingredients")
		}
		return c.Next()
	}
}
