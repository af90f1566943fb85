package v1

import (
	"github.com/labstack/echo/v4"

	"github.com/opspulse/dashboard/internal/service"
)

// ListWorkflows returns every workflow with display defaults applied.
// GET /workflows
func (h *Handler) ListWorkflows(c echo.Context) error {
	items, err := h.service.ListWorkflows(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}

	return ok(c, map[string]interface{}{
		"workflows": items,
	})
}

// CreateWorkflow creates a workflow. A body that fails to bind falls back
// to an empty request, so creation never rejects malformed input; the
// server-owned fields are forced either way.
// POST /workflows
func (h *Handler) CreateWorkflow(c echo.Context) error {
	var req service.CreateWorkflowRequest
	_ = c.Bind(&req)

	id, err := h.service.CreateWorkflow(c.Request().Context(), req)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, map[string]interface{}{
		"workflowId": id,
		"message":    "Workflow created successfully",
	})
}
