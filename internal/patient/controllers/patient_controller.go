package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/hmsdev/hms-backend/internal/common/middlewares"
	"github.com/hmsdev/hms-backend/internal/patient/models"
	"github.com/hmsdev/hms-backend/internal/patient/services"
	"github.com/hmsdev/hms-backend/ws"
)

type PatientController struct {
	Service *services.PatientService
}

func NewPatientController(service *services.PatientService) *PatientController {
	return &PatientController{Service: service}
}

// Create registers a new patient. OPD patients default to the OPD Floor
// pseudo-ward when no ward is supplied.
func (pc *PatientController) Create(c echo.Context) error {
	var input models.PatientInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid request payload",
		})
	}

	if input.Name == "" || input.Age <= 0 || input.Gender == "" || input.Contact == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Please fill all required fields",
		})
	}
	if input.Type == "OPD" && input.Ward == "" {
		input.Ward = "OPD Floor"
	}
	if !models.ValidType(input.Type) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid patient type",
		})
	}
	if !models.ValidWard(input.Ward) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid ward",
		})
	}
	if input.Status != "" && !models.ValidStatus(input.Status) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid patient status",
		})
	}

	user := middlewares.CurrentUser(c)
	patient, err := pc.Service.Create(input, user.ID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create patient")
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": err.Error(),
		})
	}

	ws.BroadcastEvent("patient.created", patient)
	return c.JSON(http.StatusCreated, patient)
}

// List returns a filtered page of patients.
func (pc *PatientController) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	filter := models.ListFilter{
		Search: c.QueryParam("search"),
		Ward:   c.QueryParam("ward"),
		Type:   c.QueryParam("type"),
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	patients, total, err := pc.Service.List(filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list patients")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Internal Server Error",
		})
	}

	pages := (total + filter.Limit - 1) / filter.Limit
	return c.JSON(http.StatusOK, map[string]interface{}{
		"patients": patients,
		"total":    total,
		"page":     filter.Page,
		"pages":    pages,
	})
}

// Stats returns today's admission counts and the weekly OPD/IPD series.
func (pc *PatientController) Stats(c echo.Context) error {
	stats, err := pc.Service.Stats()
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute patient stats")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Internal Server Error",
		})
	}
	return c.JSON(http.StatusOK, stats)
}

// Get returns a single patient by id.
func (pc *PatientController) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid patient id",
		})
	}

	patient, err := pc.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrPatientNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"message": "Patient not found",
			})
		}
		log.Error().Err(err).Msg("Failed to fetch patient")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Internal Server Error",
		})
	}
	return c.JSON(http.StatusOK, patient)
}

// Update replaces the mutable fields of a patient.
func (pc *PatientController) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid patient id",
		})
	}

	var input models.PatientInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid request payload",
		})
	}
	if input.Type != "" && !models.ValidType(input.Type) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid patient type",
		})
	}
	if input.Ward != "" && !models.ValidWard(input.Ward) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid ward",
		})
	}
	if input.Status != "" && !models.ValidStatus(input.Status) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid patient status",
		})
	}

	patient, err := pc.Service.Update(id, input)
	if err != nil {
		if errors.Is(err, services.ErrPatientNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"message": "Patient not found",
			})
		}
		log.Error().Err(err).Msg("Failed to update patient")
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": err.Error(),
		})
	}
	return c.JSON(http.StatusOK, patient)
}

// Delete removes a patient. Bills for the patient are kept.
func (pc *PatientController) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid patient id",
		})
	}

	if err := pc.Service.Delete(id); err != nil {
		if errors.Is(err, services.ErrPatientNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"message": "Patient not found",
			})
		}
		log.Error().Err(err).Msg("Failed to delete patient")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Internal Server Error",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Patient deleted"})
}
