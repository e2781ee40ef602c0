package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/hmsdev/hms-backend/internal/attendance/models"
	"github.com/hmsdev/hms-backend/internal/attendance/services"
	"github.com/hmsdev/hms-backend/internal/common/middlewares"
	"github.com/hmsdev/hms-backend/ws"
)

type AttendanceController struct {
	Service *services.AttendanceService
}

func NewAttendanceController(service *services.AttendanceService) *AttendanceController {
	return &AttendanceController{Service: service}
}

func validateMark(req models.MarkRequest) string {
	if req.StaffID == 0 || req.Date == "" || req.Status == "" {
		return "staffId, date and status are required"
	}
	if !models.ValidStatus(req.Status) {
		return "Invalid attendance status"
	}
	return ""
}

// Mark upserts one attendance record for a (staff, date) pair.
func (ac *AttendanceController) Mark(c echo.Context) error {
	var req models.MarkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid request payload",
		})
	}
	if msg := validateMark(req); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": msg})
	}

	user := middlewares.CurrentUser(c)
	record, err := ac.Service.Mark(req, user.ID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to mark attendance")
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": err.Error(),
		})
	}

	ws.BroadcastEvent("attendance.marked", record)
	return c.JSON(http.StatusCreated, record)
}

// MarkBulk upserts a batch of records in one call.
func (ac *AttendanceController) MarkBulk(c echo.Context) error {
	var req models.BulkMarkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid request payload",
		})
	}
	if len(req.Records) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "records is required",
		})
	}
	for _, record := range req.Records {
		if msg := validateMark(record); msg != "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": msg})
		}
	}

	user := middlewares.CurrentUser(c)
	records, err := ac.Service.MarkBulk(req.Records, user.ID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to mark attendance in bulk")
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": err.Error(),
		})
	}
	return c.JSON(http.StatusOK, records)
}

// List returns attendance records. With a date it becomes the daily roster
// view: one entry per active staff member, null attendance when unmarked.
func (ac *AttendanceController) List(c echo.Context) error {
	date := c.QueryParam("date")
	if date != "" {
		roster, err := ac.Service.DailyRoster(date)
		if err != nil {
			log.Error().Err(err).Msg("Failed to build daily roster")
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"message": "Internal Server Error",
			})
		}
		return c.JSON(http.StatusOK, roster)
	}

	staffID, _ := strconv.ParseInt(c.QueryParam("staffId"), 10, 64)
	records, err := ac.Service.List(models.ListFilter{
		StaffID: staffID,
		Month:   c.QueryParam("month"),
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to list attendance")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Internal Server Error",
		})
	}
	return c.JSON(http.StatusOK, records)
}

// Summary returns per-staff status counts for a month. Staff without
// records in the month are not included.
func (ac *AttendanceController) Summary(c echo.Context) error {
	month := c.QueryParam("month")
	if month == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "month is required",
		})
	}

	summary, err := ac.Service.MonthlySummary(month)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build monthly summary")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Internal Server Error",
		})
	}
	return c.JSON(http.StatusOK, summary)
}
