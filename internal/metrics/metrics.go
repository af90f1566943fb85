// Package metrics defines the Prometheus collectors for the dashboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	CommandsAcknowledged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dashboard_agent_commands_acknowledged_total",
			Help: "Total agent commands acknowledged",
		},
	)

	AlertsReported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_alerts_reported_total",
			Help: "Total alerts reported",
		},
		[]string{"severity"},
	)

	AlertsResolved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dashboard_alerts_resolved_total",
			Help: "Total alert resolutions",
		},
	)

	WorkflowsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dashboard_workflows_created_total",
			Help: "Total workflows created",
		},
	)

	HeartbeatsReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dashboard_agent_heartbeats_total",
			Help: "Total agent heartbeats received",
		},
	)
)
