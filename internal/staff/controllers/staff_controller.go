package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/hmsdev/hms-backend/internal/common/middlewares"
	"github.com/hmsdev/hms-backend/internal/staff/models"
	"github.com/hmsdev/hms-backend/internal/staff/services"
)

type StaffController struct {
	Service *services.StaffService
}

func NewStaffController(service *services.StaffService) *StaffController {
	return &StaffController{Service: service}
}

// Create adds a staff member.
func (sc *StaffController) Create(c echo.Context) error {
	var input models.StaffInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid request payload",
		})
	}
	if input.Name == "" || input.Email == "" || input.Phone == "" || input.Department == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Please fill all required fields",
		})
	}
	if !models.ValidRole(input.Role) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid staff role",
		})
	}

	user := middlewares.CurrentUser(c)
	staff, err := sc.Service.Create(input, user.ID)
	if err != nil {
		if errors.Is(err, services.ErrStaffEmailTaken) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"message": "Email already registered",
			})
		}
		log.Error().Err(err).Msg("Failed to create staff")
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": err.Error(),
		})
	}
	return c.JSON(http.StatusCreated, staff)
}

// List returns active staff, optionally filtered by search, role, department.
func (sc *StaffController) List(c echo.Context) error {
	filter := models.ListFilter{
		Search:     c.QueryParam("search"),
		Role:       c.QueryParam("role"),
		Department: c.QueryParam("department"),
	}

	staff, err := sc.Service.List(filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list staff")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Internal Server Error",
		})
	}
	return c.JSON(http.StatusOK, staff)
}

// Get returns one staff member by id.
func (sc *StaffController) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid staff id",
		})
	}

	staff, err := sc.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"message": "Staff not found",
			})
		}
		log.Error().Err(err).Msg("Failed to fetch staff")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Internal Server Error",
		})
	}
	return c.JSON(http.StatusOK, staff)
}

// Update replaces a staff member's mutable fields.
func (sc *StaffController) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid staff id",
		})
	}

	var input models.StaffInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid request payload",
		})
	}
	if input.Role != "" && !models.ValidRole(input.Role) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid staff role",
		})
	}

	staff, err := sc.Service.Update(id, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStaffNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{
				"message": "Staff not found",
			})
		case errors.Is(err, services.ErrStaffEmailTaken):
			return c.JSON(http.StatusBadRequest, map[string]string{
				"message": "Email already registered",
			})
		default:
			log.Error().Err(err).Msg("Failed to update staff")
			return c.JSON(http.StatusBadRequest, map[string]string{
				"message": err.Error(),
			})
		}
	}
	return c.JSON(http.StatusOK, staff)
}
