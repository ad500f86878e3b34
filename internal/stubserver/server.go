package stubserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Server is the in-memory API stub.
type Server struct {
	state     *state
	jwtSecret string
	log       zerolog.Logger
}

// errorResponse mirrors the real backend's envelope: clients read the
// "message" field for the human-readable cause.
type errorResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// New builds the Echo instance with every route of the booking API contract
// registered under the /api prefix.
func New(jwtSecret string, log zerolog.Logger) *echo.Echo {
	s := &Server{state: newState(), jwtSecret: jwtSecret, log: log}

	e := echo.New()
	e.HideBanner = true
	e.Validator = newValidator()
	e.HTTPErrorHandler = newErrorHandler(log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	// per-instance registry so tests can spin up several stubs
	reg := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "booking_stub",
		Registerer: reg,
	}))
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: reg,
	}))
	e.GET("/health", handleLiveness)

	api := e.Group("/api")

	// public, unauthenticated
	api.POST("/register", s.handleRegister)
	api.POST("/login", s.handleLogin)
	api.POST("/appointments/public/confirm/:token", s.handleConfirmAppointment)
	api.POST("/appointments/public/cancel/:token", s.handleCancelAppointment)
	api.GET("/public/booking/:businessId", s.handleBookingProfile)
	api.POST("/public/booking/:businessId/appointments", s.handleCreatePublicAppointment)

	// bearer-authenticated
	auth := api.Group("", s.bearerAuth)
	auth.GET("/profile", s.handleGetProfile)
	auth.PUT("/profile", s.handleUpdateProfile)

	auth.GET("/services", s.handleListServices)
	auth.POST("/services", s.handleCreateService)
	auth.GET("/services/:id", s.handleGetService)
	auth.PUT("/services/:id", s.handleUpdateService)
	auth.DELETE("/services/:id", s.handleDeleteService)

	auth.GET("/availability", s.handleListAvailability)
	auth.POST("/availability", s.handleCreateAvailability)
	auth.GET("/availability/:dayOfWeek", s.handleAvailabilityByDay)
	auth.DELETE("/availability/:id", s.handleDeleteAvailability)

	auth.GET("/appointments", s.handleListAppointments)
	auth.POST("/appointments", s.handleCreateAppointment)
	auth.GET("/appointments/date-range", s.handleAppointmentsByDateRange)
	auth.GET("/appointments/:id", s.handleGetAppointment)
	auth.PUT("/appointments/:id/status", s.handleUpdateAppointmentStatus)
	auth.DELETE("/appointments/:id", s.handleDeleteAppointment)

	auth.GET("/analytics", s.handleAnalytics)

	return e
}

// handleLiveness answers GET /health. State is all in-memory,
// so a reachable process is a healthy one.
func handleLiveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// newErrorHandler renders every error through the backend's JSON envelope
// and logs unexpected ones without leaking details to the client.
func newErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := "Internal server error"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			msg = fmt.Sprintf("%v", he.Message)
		} else {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		_ = c.JSON(code, errorResponse{
			Status:  code,
			Error:   http.StatusText(code),
			Message: msg,
		})
	}
}
