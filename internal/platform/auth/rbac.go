package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/blendwell/blendwell/internal/platform/apperr"
)

// RequireRole returns middleware that checks the principal's role against the
// allowed set. Admin passes every role check. A missing principal is a 401,
// a role mismatch a 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := PrincipalFromContext(c.Request().Context())
			if p == nil {
				return apperr.ToHTTP(apperr.ErrUnauthorized)
			}
			for _, required := range roles {
				if p.Role == required || p.Role == RoleAdmin {
					return next(c)
				}
			}
			return apperr.ToHTTP(apperr.ErrForbidden)
		}
	}
}
