package routes

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	attendanceControllers "github.com/hmsdev/hms-backend/internal/attendance/controllers"
	attendanceServices "github.com/hmsdev/hms-backend/internal/attendance/services"
	authControllers "github.com/hmsdev/hms-backend/internal/auth/controllers"
	authServices "github.com/hmsdev/hms-backend/internal/auth/services"
	billingControllers "github.com/hmsdev/hms-backend/internal/billing/controllers"
	billingServices "github.com/hmsdev/hms-backend/internal/billing/services"
	"github.com/hmsdev/hms-backend/internal/common/middlewares"
	"github.com/hmsdev/hms-backend/internal/common/rbac"
	patientControllers "github.com/hmsdev/hms-backend/internal/patient/controllers"
	patientServices "github.com/hmsdev/hms-backend/internal/patient/services"
	staffControllers "github.com/hmsdev/hms-backend/internal/staff/controllers"
	staffServices "github.com/hmsdev/hms-backend/internal/staff/services"
	"github.com/hmsdev/hms-backend/pkg/metrics"
	"github.com/hmsdev/hms-backend/ws"
)

// Init wires services, controllers and middlewares onto the Echo instance.
func Init(e *echo.Echo, db *sql.DB) {
	authService := authServices.NewAuthService(db)
	patientService := patientServices.NewPatientService(db)
	staffService := staffServices.NewStaffService(db)
	billingService := billingServices.NewBillingService(db)
	attendanceService := attendanceServices.NewAttendanceService(db)

	authController := authControllers.NewAuthController(authService)
	patientController := patientControllers.NewPatientController(patientService)
	staffController := staffControllers.NewStaffController(staffService)
	billingController := billingControllers.NewBillingController(billingService)
	attendanceController := attendanceControllers.NewAttendanceController(attendanceService)

	protect := middlewares.JWTMiddleware(authService)

	api := e.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    "OK",
			"timestamp": time.Now(),
		})
	})

	auth := api.Group("/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)
	auth.GET("/me", authController.Me, protect)

	patients := api.Group("/patients", protect)
	patients.POST("", patientController.Create, middlewares.RequirePermission(rbac.PermRegisterPatients))
	patients.GET("", patientController.List)
	patients.GET("/stats", patientController.Stats)
	patients.GET("/:id", patientController.Get)
	patients.PUT("/:id", patientController.Update, middlewares.RequirePermission(rbac.PermUpdatePatients))
	patients.DELETE("/:id", patientController.Delete, middlewares.RequirePermission(rbac.PermDeletePatients))

	bills := api.Group("/bills", protect)
	bills.POST("", billingController.Create, middlewares.RequirePermission(rbac.PermCreateBills))
	bills.GET("", billingController.List)
	bills.GET("/stats", billingController.Stats)
	bills.GET("/patient/:patientId", billingController.ByPatient)
	bills.GET("/single/:id", billingController.Get)
	bills.PUT("/:id", billingController.Update, middlewares.RequirePermission(rbac.PermUpdateBills))

	staff := api.Group("/staff", protect)
	staff.POST("", staffController.Create, middlewares.RequirePermission(rbac.PermManageStaff))
	staff.GET("", staffController.List)
	staff.GET("/:id", staffController.Get)
	staff.PUT("/:id", staffController.Update, middlewares.RequirePermission(rbac.PermManageStaff))

	attendance := api.Group("/attendance", protect)
	attendance.POST("", attendanceController.Mark, middlewares.RequirePermission(rbac.PermMarkAttendance))
	attendance.POST("/bulk", attendanceController.MarkBulk, middlewares.RequirePermission(rbac.PermMarkAttendance))
	attendance.GET("", attendanceController.List)
	attendance.GET("/summary", attendanceController.Summary)

	e.GET("/metrics", metrics.Handler())
	e.GET("/ws/dashboard", ws.ServeWS(ws.HubInstance))
}
