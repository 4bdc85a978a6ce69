package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/cse-attendance/attendance-system/docs"
	"github.com/cse-attendance/attendance-system/internal/api/handler"
	"github.com/cse-attendance/attendance-system/internal/api/middleware"
	"github.com/cse-attendance/attendance-system/internal/core/ports"
)

// Services are the use cases exposed over HTTP.
type Services struct {
	Auth       ports.AuthService
	Roster     ports.RosterService
	Import     ports.ImportService
	Reports    ports.ReportService
	Attendance ports.AttendanceService
	Leaves     ports.LeaveService
	Dashboard  ports.DashboardService
}

// RouterConfig carries everything NewRouter needs besides the services.
type RouterConfig struct {
	JWTSecret string
	Log       zerolog.Logger
	// Health maps dependency names to the pings run by /health/ready.
	Health map[string]handler.Pinger
}

// NewRouter builds the Echo instance with every route registered.
func NewRouter(svc Services, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(cfg.Log))
	e.Use(echoprometheus.NewMiddleware("attendance_http"))

	// --- Operational endpoints (no auth) ---
	health := handler.NewHealthHandler(cfg.Health)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- v1 (authenticated) ---
	v1 := e.Group("/v1", middleware.Auth(cfg.JWTSecret))
	staff := []echo.MiddlewareFunc{middleware.Staff(), middleware.DepartmentScope()}
	anyone := middleware.AnyRole()

	students := handler.NewStudentHandler(svc.Roster, svc.Import, svc.Reports)
	sg := v1.Group("/students", staff...)
	sg.GET("", students.List)
	sg.POST("", students.Create)
	sg.GET("/export", students.Export)
	sg.GET("/import/template", students.Template)
	sg.POST("/import", students.Import)
	sg.PUT("/:id", students.Update)
	sg.DELETE("/:id", students.Delete)

	attendance := handler.NewAttendanceHandler(svc.Attendance)
	v1.POST("/attendance/sessions", attendance.Submit, staff...)
	v1.POST("/attendance/sessions/preview", attendance.Preview, staff...)
	v1.GET("/attendance/summary/:user_id", attendance.Summary, anyone)

	leaves := handler.NewLeaveHandler(svc.Leaves)
	v1.POST("/leaves", leaves.Apply, middleware.Student())
	v1.GET("/leaves", leaves.List, anyone)
	v1.PATCH("/leaves/:id", leaves.Review, anyone)

	dashboard := handler.NewDashboardHandler(svc.Dashboard)
	v1.GET("/dashboard", dashboard.Get, anyone)

	return e
}
