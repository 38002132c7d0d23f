package middleware

import (
	"net/http"

	"themis-backend/internal/domain/user"

	"github.com/labstack/echo/v4"
)

// RequireRoles lets the request through only when the caller holds one of roles.
// It must run after Auth.
func RequireRoles(roles ...uint) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "token is missing")
			}
			if !user.HasRole(id.RoleID, roles...) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
