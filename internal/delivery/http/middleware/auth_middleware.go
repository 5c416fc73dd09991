package middleware

import (
	"strings"

	"purposepay/internal/delivery/http/response"
	"purposepay/internal/domain/entity"
	"purposepay/internal/usecase"

	"github.com/labstack/echo/v4"
)

// KeyIdentity is the echo.Context key under which the authenticated
// account is stored for handlers.
const KeyIdentity = "identity"

// AuthMiddleware resolves opaque bearer tokens to accounts.
type AuthMiddleware struct {
	accountUsecase usecase.AccountUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(accountUsecase usecase.AccountUsecase) *AuthMiddleware {
	return &AuthMiddleware{accountUsecase: accountUsecase}
}

// Authenticate validates the bearer token and loads the calling account.
// The token is opaque: validation is a lookup of its hash, so a token
// revoked by logout or superseded by a newer login fails here immediately.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Authorization header is missing")
		}

		rawToken := strings.TrimPrefix(authHeader, "Bearer ")
		if rawToken == authHeader || rawToken == "" {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid token format, must be Bearer token")
		}

		identity, err := m.accountUsecase.Authenticate(c.Request().Context(), rawToken)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Missing, invalid or revoked session token")
		}

		c.Set(KeyIdentity, identity)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the account has a specific role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := IdentityFromContext(c)
			if identity == nil {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: identity missing")
			}

			if !identity.Roles.Contains(requiredRole) {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: require '"+string(requiredRole)+"' role")
			}

			return next(c)
		}
	}
}

// IdentityFromContext extracts the authenticated account from echo.Context.
// Returns nil for unauthenticated requests.
func IdentityFromContext(c echo.Context) *entity.User {
	identity, ok := c.Get(KeyIdentity).(*entity.User)
	if !ok {
		return nil
	}

	return identity
}
