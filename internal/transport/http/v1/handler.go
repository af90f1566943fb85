// Package v1 provides HTTP handlers for the dashboard API.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/opspulse/dashboard/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Dashboard API
	e.GET("/agents", h.ListAgents)
	e.POST("/agents/:agent_id/command", h.SendCommand)
	e.GET("/leads/metrics", h.LeadMetrics)
	e.GET("/alerts/active", h.ActiveAlerts)
	e.POST("/alerts/:alert_id/resolve", h.ResolveAlert)
	e.GET("/workflows", h.ListWorkflows)
	e.POST("/workflows", h.CreateWorkflow)
	e.POST("/roi/calculate", h.CalculateROI)

	// Ingestion API (for agents and external feeds)
	e.POST("/agents/register", h.RegisterAgent)
	e.POST("/agents/:agent_id/heartbeat", h.Heartbeat)
	e.POST("/alerts", h.ReportAlert)
	e.POST("/leads", h.CreateLead)

	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// Health returns health status, including store reachability.
func (h *Handler) Health(c echo.Context) error {
	if err := h.service.Ping(c.Request().Context()); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// ok sends the success envelope with handler-specific fields merged in.
func ok(c echo.Context, fields map[string]interface{}) error {
	body := map[string]interface{}{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	return c.JSON(http.StatusOK, body)
}

// fail sends the 500 failure envelope carrying the error message.
func fail(c echo.Context, err error) error {
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
}

// badRequest sends the failure envelope with a 400 status.
func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
