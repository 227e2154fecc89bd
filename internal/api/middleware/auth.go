package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/amoghdiagnostic/site-api/internal/core/domain"
	"github.com/amoghdiagnostic/site-api/internal/core/ports"
)

// userContextKey is where Auth stores the loaded identity on the request
// context for downstream handlers.
const userContextKey = "auth_user"

// Auth verifies the Bearer token, re-loads the referenced user from the
// store, and attaches the identity to the request context. Tokens are
// stateless, so the account's existence and active flag are re-checked on
// every request rather than trusted from the token alone.
func Auth(tokens ports.TokenIssuer, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			userID, err := tokens.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "account no longer exists")
			}
			if !user.IsActive {
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrAccountInactive.Error())
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the identity attached by Auth, or nil when the route
// is not behind the middleware.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}

// SetCurrentUser injects an identity directly. Intended for tests.
func SetCurrentUser(c echo.Context, user *domain.User) {
	c.Set(userContextKey, user)
}
