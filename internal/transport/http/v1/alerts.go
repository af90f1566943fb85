package v1

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/opspulse/dashboard/internal/domain"
)

// AlertReportRequest is the body of an alert ingestion request.
type AlertReportRequest struct {
	Severity string `json:"severity,omitempty"`
	Message  string `json:"message"`
	AgentID  string `json:"agent_id,omitempty"`
}

// ActiveAlerts returns the unresolved alerts with a severity summary.
// GET /alerts/active
func (h *Handler) ActiveAlerts(c echo.Context) error {
	view, err := h.service.ActiveAlerts(c.Request().Context(), time.Now())
	if err != nil {
		return fail(c, err)
	}

	return ok(c, map[string]interface{}{
		"alerts":  view.Alerts,
		"summary": view.Summary,
	})
}

// ResolveAlert marks an alert resolved. Resolving twice is not an error.
// POST /alerts/:alert_id/resolve
func (h *Handler) ResolveAlert(c echo.Context) error {
	alertID := c.Param("alert_id")

	if err := h.service.ResolveAlert(c.Request().Context(), alertID); err != nil {
		return fail(c, err)
	}

	return ok(c, map[string]interface{}{
		"alertId": alertID,
		"message": "Alert resolved",
	})
}

// ReportAlert ingests an alert raised by an agent.
// POST /alerts
func (h *Handler) ReportAlert(c echo.Context) error {
	var req AlertReportRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Message == "" {
		return badRequest(c, "message is required")
	}

	alert, err := h.service.ReportAlert(c.Request().Context(),
		domain.Severity(req.Severity), req.Message, req.AgentID)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, map[string]interface{}{
		"alertId": alert.AlertID,
	})
}
