package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/opspulse/dashboard/internal/metrics"
)

// corsHeaders is the fixed header set every response carries.
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "Content-Type, Authorization",
	"Access-Control-Allow-Methods": "GET, POST, PUT, DELETE, OPTIONS",
}

// CORS sets the fixed CORS headers on every response and short-circuits
// preflight requests with an empty 200.
func CORS() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Response().Header()
			for k, v := range corsHeaders {
				header.Set(k, v)
			}
			header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusOK)
			}
			return next(c)
		}
	}
}

// Observe records request metrics and a zerolog line for every request.
// Errors are resolved here so the recorded status is final.
func Observe(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			route := c.Path()
			if route == "" {
				route = req.URL.Path
			}

			metrics.HTTPRequestsTotal.WithLabelValues(
				req.Method, route, strconv.Itoa(status),
			).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(
				req.Method, route,
			).Observe(time.Since(start).Seconds())

			logger.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Str("remote_addr", c.RealIP()).
				Msg("request completed")

			return nil
		}
	}
}

// ErrorHandler collapses all failures into the two-tier error model:
// unmatched routes (including method mismatches) get the minimal not-found
// body, everything else the failure envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if he, ok := err.(*echo.HTTPError); ok {
		if he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed {
			_ = c.JSON(http.StatusNotFound, map[string]string{"error": "Endpoint not found"})
			return
		}
	}

	_ = c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
}
