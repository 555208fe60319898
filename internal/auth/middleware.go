package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cookfarm/pantry-service/internal/domain"
	"github.com/cookfarm/pantry-service/internal/repository"
	apperrors "github.com/cookfarm/pantry-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	User   *domain.User
	Claims *Claims
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens      *TokenManager
	revocations Revocations
	users       repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, revocations Revocations, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, revocations: revocations, users: users}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	return m.authenticate(c, true)
}

// Optional authenticates the caller when an Authorization header is present
// and lets anonymous requests through otherwise.
func (m *AuthMiddleware) Optional(c *fiber.Ctx) error {
	return m.authenticate(c, false)
}

// For returns Handle when required is set and Optional otherwise.
func (m *AuthMiddleware) For(required bool) fiber.Handler {
	if required {
		return m.Handle
	}
	return m.Optional
}

func (m *AuthMiddleware) authenticate(c *fiber.Ctx, required bool) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		if required {
			return apperrors.NewUnauthorized("missing authorization header")
		}
		return c.Next()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	revoked, err := m.revocations.IsRevoked(c.UserContext(), claims.ID)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if revoked {
		return apperrors.NewUnauthorized("token revoked")
	}

	user, err := m.users.GetByID(c.UserContext(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewUnauthorized("user not found")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{User: user, Claims: claims})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
