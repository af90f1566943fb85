// Package http provides the HTTP server for the dashboard.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/opspulse/dashboard/internal/service"
	v1 "github.com/opspulse/dashboard/internal/transport/http/v1"
)

// NewServer creates and configures the dashboard HTTP server.
func NewServer(svc *service.Service, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = v1.ErrorHandler

	// Middleware
	e.Use(middleware.Recover())
	e.Use(v1.CORS())
	e.Use(v1.Observe(logger))

	// Register routes
	v1.NewHandler(svc).RegisterRoutes(e)

	return e
}
