package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authmodels "github.com/hmsdev/hms-backend/internal/auth/models"
	"github.com/hmsdev/hms-backend/internal/billing/services"
	"github.com/hmsdev/hms-backend/internal/common/middlewares"
)

func newCreateContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder, sqlmock.Sqlmock, *BillingController) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/bills", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middlewares.ContextKeyUser, &authmodels.User{ID: 1, Role: "Admin", IsActive: true})

	return c, rec, mock, NewBillingController(services.NewBillingService(db))
}

func TestCreate_RejectsMissingPatient(t *testing.T) {
	c, rec, mock, controller := newCreateContext(t, `{"items":[{"serviceName":"Consultation","quantity":1,"unitPrice":500,"total":500}]}`)

	require.NoError(t, controller.Create(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_RejectsEmptyItems(t *testing.T) {
	c, rec, mock, controller := newCreateContext(t, `{"patientId":1,"items":[]}`)

	require.NoError(t, controller.Create(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "At least one bill item is required")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_RejectsInvalidItemWithoutStoring(t *testing.T) {
	cases := []struct {
		name string
		item string
	}{
		{"missing service name", `{"serviceName":"","quantity":1,"unitPrice":500,"total":500}`},
		{"zero quantity", `{"serviceName":"Lab Tests","quantity":0,"unitPrice":500,"total":0}`},
		{"negative unit price", `{"serviceName":"Lab Tests","quantity":1,"unitPrice":-5,"total":-5}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec, mock, controller := newCreateContext(t,
				`{"patientId":1,"items":[`+tc.item+`]}`)

			require.NoError(t, controller.Create(c))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			// No SQL expectations were set, so any write would fail this check.
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreate_RejectsUnknownPaymentStatus(t *testing.T) {
	c, rec, mock, controller := newCreateContext(t,
		`{"patientId":1,"paymentStatus":"Overdue","items":[{"serviceName":"Consultation","quantity":1,"unitPrice":500,"total":500}]}`)

	require.NoError(t, controller.Create(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid payment status")
	assert.NoError(t, mock.ExpectationsWereMet())
}
