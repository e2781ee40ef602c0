package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hmsdev/hms-backend/internal/common/rbac"
)

// RequirePermission rejects requests whose resolved user's role does not
// carry the given permission. It must run after JWTMiddleware.
func RequirePermission(perm rbac.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"message": "Not authorized",
				})
			}
			if !rbac.Allowed(user.Role, perm) {
				return c.JSON(http.StatusForbidden, map[string]string{
					"message": "Access denied: insufficient permissions",
				})
			}
			return next(c)
		}
	}
}
