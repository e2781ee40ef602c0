package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/hmsdev/hms-backend/internal/auth/models"
	"github.com/hmsdev/hms-backend/internal/auth/services"
	"github.com/hmsdev/hms-backend/internal/common/middlewares"
	"github.com/hmsdev/hms-backend/pkg/utils"
)

type AuthController struct {
	Service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{Service: service}
}

// Register creates a new account and immediately issues a token.
func (ac *AuthController) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid request payload",
		})
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Please fill all required fields",
		})
	}

	user, err := ac.Service.Register(req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"message": "Email already registered",
			})
		}
		log.Error().Err(err).Msg("Failed to register user")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Internal Server Error",
		})
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to issue token")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Internal Server Error",
		})
	}

	return c.JSON(http.StatusCreated, models.AuthResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		Department: user.Department,
		Token:      token,
	})
}

// Login validates credentials and issues a token.
func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid request payload",
		})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Please provide email and password",
		})
	}

	user, err := ac.Service.Authenticate(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"message": "Invalid email or password",
			})
		case errors.Is(err, services.ErrAccountDisabled):
			return c.JSON(http.StatusForbidden, map[string]string{
				"message": "Account deactivated. Contact admin.",
			})
		default:
			log.Error().Err(err).Msg("Failed to authenticate user")
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"message": "Internal Server Error",
			})
		}
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to issue token")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Internal Server Error",
		})
	}

	return c.JSON(http.StatusOK, models.AuthResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		Department: user.Department,
		Token:      token,
	})
}

// Me returns the user resolved by the auth middleware.
func (ac *AuthController) Me(c echo.Context) error {
	user := middlewares.CurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"message": "Not authorized",
		})
	}
	return c.JSON(http.StatusOK, user)
}
