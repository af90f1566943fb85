package v1

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/opspulse/dashboard/internal/domain"
)

// LeadCreateRequest is the body of a lead ingestion request.
type LeadCreateRequest struct {
	Status string  `json:"status,omitempty"`
	Score  float64 `json:"score,omitempty"`
}

// LeadMetrics returns the five pipeline aggregates.
// GET /leads/metrics
func (h *Handler) LeadMetrics(c echo.Context) error {
	m, err := h.service.LeadMetrics(c.Request().Context(), time.Now())
	if err != nil {
		return fail(c, err)
	}

	return ok(c, map[string]interface{}{
		"totalLeads":      m.TotalLeads,
		"newToday":        m.NewToday,
		"pendingResearch": m.PendingResearch,
		"hotLeads":        m.HotLeads,
		"conversionRate":  m.ConversionRate,
	})
}

// CreateLead ingests a lead.
// POST /leads
func (h *Handler) CreateLead(c echo.Context) error {
	var req LeadCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	lead, err := h.service.CreateLead(c.Request().Context(),
		domain.LeadStatus(req.Status), req.Score)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, map[string]interface{}{
		"leadId": lead.LeadID,
		"status": lead.Status,
	})
}
