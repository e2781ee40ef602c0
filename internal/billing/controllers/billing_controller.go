package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/hmsdev/hms-backend/internal/billing/models"
	"github.com/hmsdev/hms-backend/internal/billing/services"
	"github.com/hmsdev/hms-backend/internal/common/middlewares"
	"github.com/hmsdev/hms-backend/ws"
)

type BillingController struct {
	Service *services.BillingService
}

func NewBillingController(service *services.BillingService) *BillingController {
	return &BillingController{Service: service}
}

// Create validates the line items and stores the bill. Nothing is persisted
// when validation fails.
func (bc *BillingController) Create(c echo.Context) error {
	var req models.CreateBillRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid request payload",
		})
	}

	if req.PatientID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "patientId is required",
		})
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "At least one bill item is required",
		})
	}
	for _, item := range req.Items {
		if item.ServiceName == "" || item.Quantity < 1 || item.UnitPrice < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"message": "Invalid bill item: serviceName, quantity and unitPrice are required",
			})
		}
	}
	if req.PaymentStatus != "" && !models.ValidPaymentStatus(req.PaymentStatus) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid payment status",
		})
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid payment method",
		})
	}

	user := middlewares.CurrentUser(c)
	bill, err := bc.Service.Create(req, user.ID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create bill")
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": err.Error(),
		})
	}

	ws.BroadcastEvent("bill.created", bill)
	return c.JSON(http.StatusCreated, bill)
}

// List returns a page of bills filtered by payment status.
func (bc *BillingController) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	bills, total, err := bc.Service.List(c.QueryParam("paymentStatus"), page, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list bills")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Internal Server Error",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"bills": bills,
		"total": total,
	})
}

// Stats returns today's collected revenue and the weekly series.
func (bc *BillingController) Stats(c echo.Context) error {
	stats, err := bc.Service.Stats()
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute bill stats")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Internal Server Error",
		})
	}
	return c.JSON(http.StatusOK, stats)
}

// ByPatient returns every bill for the given patient.
func (bc *BillingController) ByPatient(c echo.Context) error {
	patientID, err := strconv.ParseInt(c.Param("patientId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid patient id",
		})
	}

	bills, err := bc.Service.GetByPatient(patientID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list patient bills")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Internal Server Error",
		})
	}
	return c.JSON(http.StatusOK, bills)
}

// Get returns one bill including its line items.
func (bc *BillingController) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid bill id",
		})
	}

	bill, err := bc.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrBillNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"message": "Bill not found",
			})
		}
		log.Error().Err(err).Msg("Failed to fetch bill")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Internal Server Error",
		})
	}
	return c.JSON(http.StatusOK, bill)
}

// Update changes payment fields, notes, discount or tax.
func (bc *BillingController) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid bill id",
		})
	}

	var req models.UpdateBillRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid request payload",
		})
	}
	if req.PaymentStatus != nil && !models.ValidPaymentStatus(*req.PaymentStatus) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid payment status",
		})
	}
	if req.PaymentMethod != nil && !models.ValidPaymentMethod(*req.PaymentMethod) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid payment method",
		})
	}

	bill, err := bc.Service.Update(id, req)
	if err != nil {
		if errors.Is(err, services.ErrBillNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"message": "Bill not found",
			})
		}
		log.Error().Err(err).Msg("Failed to update bill")
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": err.Error(),
		})
	}
	return c.JSON(http.StatusOK, bill)
}
