package middleware

import (
	"context"
	"net/http"

	"themis-backend/internal/domain/user"

	"github.com/labstack/echo/v4"
)

const identityKey = "themis.identity"

// TokenValidator resolves a bearer token to the caller.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (*user.Identity, error)
}

// Auth rejects requests without a valid Authorization header and stores the caller on the context.
// extract turns the raw header into a token; an empty result means no token.
func Auth(v TokenValidator, extract func(string) string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tok := extract(c.Request().Header.Get(echo.HeaderAuthorization))
			if tok == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token is missing")
			}
			id, err := v.Validate(c.Request().Context(), tok)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "token is invalid")
			}
			id.IP = c.RealIP()
			c.Set(identityKey, *id)
			return next(c)
		}
	}
}

// IdentityFrom returns the caller stored by Auth.
func IdentityFrom(c echo.Context) (user.Identity, bool) {
	id, ok := c.Get(identityKey).(user.Identity)
	return id, ok
}
