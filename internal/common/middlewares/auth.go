package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	authmodels "github.com/hmsdev/hms-backend/internal/auth/models"
	authservices "github.com/hmsdev/hms-backend/internal/auth/services"
	"github.com/hmsdev/hms-backend/pkg/utils"
)

// ContextKeyUser is where the resolved user record is stored on the request
// context for audit stamping and permission checks.
const ContextKeyUser = "currentUser"

// JWTMiddleware verifies the bearer token and resolves it to a user record.
// Requests with a missing/invalid/expired token, an unknown user, or a
// deactivated account are rejected before any handler runs.
func JWTMiddleware(authService *authservices.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"message": "Not authorized, no token",
				})
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"message": "Invalid authorization header",
				})
			}

			claims, err := utils.ValidateToken(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"message": "Not authorized, token failed",
				})
			}

			user, err := authService.GetByID(claims.UserID)
			if err != nil {
				if errors.Is(err, authservices.ErrUserNotFound) {
					return c.JSON(http.StatusUnauthorized, map[string]string{
						"message": "Not authorized, user not found",
					})
				}
				return c.JSON(http.StatusInternalServerError, map[string]string{
					"message": "Internal Server Error",
				})
			}
			if !user.IsActive {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"message": "Account deactivated. Contact admin.",
				})
			}

			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user resolved by JWTMiddleware, or nil when the
// route is not behind it.
func CurrentUser(c echo.Context) *authmodels.User {
	user, _ := c.Get(ContextKeyUser).(*authmodels.User)
	return user
}
