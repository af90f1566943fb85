package v1

import (
	"github.com/labstack/echo/v4"
)

// CalculateROI computes the annualized ROI estimate from live counts.
// POST /roi/calculate
func (h *Handler) CalculateROI(c echo.Context) error {
	report, err := h.service.CalculateROI(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}

	return ok(c, map[string]interface{}{
		"roi": report,
	})
}
