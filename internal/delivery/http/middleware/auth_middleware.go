package middleware

import (
	"strings"

	"bazar/internal/domain/entity"
	"bazar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// identityKey is the echo context key carrying the resolved account.
const identityKey = "identity"

// AuthMiddleware resolves the bearer token of a request into an account.
type AuthMiddleware struct {
	identity usecase.IdentityUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(identity usecase.IdentityUsecase) *AuthMiddleware {
	return &AuthMiddleware{identity: identity}
}

// bearerToken extracts the bearer token from the Authorization header.
// It returns nil when no usable credential is present, so the usecase can
// distinguish "nothing presented" from "presented but dead".
func bearerToken(c echo.Context) *string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		return nil
	}

	return &token
}

// Authenticate validates the session token and stores the resolved account on
// the request context. Failures propagate to the error handler, which renders
// the single uniform 401 for every credential problem.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := m.identity.Resolve(c.Request().Context(), bearerToken(c))
		if err != nil {
			return errors.WithStack(err)
		}

		c.Set(identityKey, user)

		return next(c)
	}
}

// RequesterFrom returns the account the Authenticate middleware resolved, or
// nil on routes that never went through it.
func RequesterFrom(c echo.Context) *entity.User {
	user, _ := c.Get(identityKey).(*entity.User)

	return user
}
