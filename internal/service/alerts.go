package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/opspulse/dashboard/internal/domain"
	"github.com/opspulse/dashboard/internal/metrics"
)

// activeAlertLimit caps how many unresolved alerts the dashboard shows.
const activeAlertLimit = 50

// AlertItem is the shaped view of a single alert.
type AlertItem struct {
	ID        string `json:"id"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Agent     string `json:"agent"`
	Timestamp string `json:"timestamp"`
}

// AlertSummary counts the returned alerts by severity. Severities outside
// the three known buckets count toward the total only.
type AlertSummary struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
}

// ActiveAlerts is the dashboard view of unresolved alerts.
type ActiveAlerts struct {
	Alerts  []AlertItem  `json:"alerts"`
	Summary AlertSummary `json:"summary"`
}

// ActiveAlerts fetches unresolved alerts, newest first, capped at 50, and
// shapes them with display defaults.
func (s *Service) ActiveAlerts(ctx context.Context, now time.Time) (*ActiveAlerts, error) {
	alerts, err := s.store.ListUnresolvedAlerts(ctx, activeAlertLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}

	view := &ActiveAlerts{Alerts: make([]AlertItem, 0, len(alerts))}
	for _, a := range alerts {
		severity := string(a.Severity)
		if severity == "" {
			severity = string(domain.SeverityInfo)
		}
		agent := a.AgentID
		if agent == "" {
			agent = "system"
		}
		ts := now
		if a.Timestamp != nil {
			ts = *a.Timestamp
		}

		view.Alerts = append(view.Alerts, AlertItem{
			ID:        a.AlertID,
			Severity:  severity,
			Message:   a.Message,
			Agent:     agent,
			Timestamp: ts.Format(time.RFC3339),
		})

		view.Summary.Total++
		switch domain.Severity(severity) {
		case domain.SeverityCritical:
			view.Summary.Critical++
		case domain.SeverityWarning:
			view.Summary.Warning++
		case domain.SeverityInfo:
			view.Summary.Info++
		}
	}
	return view, nil
}

// ResolveAlert marks an alert resolved with the configured identity. The
// update is unconditional: there is no existence check, and resolving an
// already-resolved alert succeeds again (resolution is one-way).
func (s *Service) ResolveAlert(ctx context.Context, alertID string) error {
	if err := s.store.ResolveAlert(ctx, alertID, s.config.Identity, time.Now()); err != nil {
		return fmt.Errorf("failed to resolve alert: %w", err)
	}
	metrics.AlertsResolved.Inc()
	return nil
}

// ReportAlert ingests an alert raised by an agent.
func (s *Service) ReportAlert(ctx context.Context, severity domain.Severity, message, agentID string) (*domain.Alert, error) {
	now := time.Now()
	alert := &domain.Alert{
		AlertID:   "alt_" + uuid.New().String()[:8],
		Severity:  severity,
		Message:   message,
		AgentID:   agentID,
		Timestamp: &now,
	}
	if err := s.store.CreateAlert(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}
	metrics.AlertsReported.WithLabelValues(string(severity)).Inc()
	return alert, nil
}
