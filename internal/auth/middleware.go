package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/travel-order-service/internal/domain"
	"github.com/spec-kit/travel-order-service/internal/repository"
	apperrors "github.com/spec-kit/travel-order-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	TokenID string
	User    *domain.User
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens   *TokenManager
	registry TokenRegistry
	users    repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, registry TokenRegistry, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, registry: registry, users: users}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized(apperrors.MsgUnauthenticated)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized(apperrors.MsgUnauthenticated)
	}

	claims, err := m.tokens.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return apperrors.NewUnauthorized(apperrors.MsgUnauthenticated)
	}

	active, err := m.registry.Active(c.UserContext(), claims.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !active {
		return apperrors.NewUnauthorized(apperrors.MsgUnauthenticated)
	}

	user, err := m.users.GetByID(c.UserContext(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized(apperrors.MsgUnauthenticated)
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{TokenID: claims.ID, User: user})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
