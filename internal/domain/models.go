// Package domain defines the core domain models for the dashboard.
package domain

import (
	"encoding/json"
	"time"
)

// Agent represents a registered agent document.
type Agent struct {
	AgentID        string          `json:"agent_id"`
	Version        string          `json:"version,omitempty"`
	Description    string          `json:"description,omitempty"`
	Capabilities   json.RawMessage `json:"capabilities,omitempty"`
	UptimeHours    float64         `json:"uptime_hours"`
	TasksCompleted int             `json:"tasks_completed"`
	ErrorRate      float64         `json:"error_rate"`
	LastHeartbeat  *time.Time      `json:"last_heartbeat,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Lead represents a sales lead document.
type Lead struct {
	LeadID    string     `json:"lead_id"`
	Status    LeadStatus `json:"status"`
	Score     float64    `json:"score"`
	CreatedAt time.Time  `json:"created_at"`
}

// Alert represents an alert raised by an agent or the platform.
type Alert struct {
	AlertID    string     `json:"alert_id"`
	Severity   Severity   `json:"severity,omitempty"`
	Message    string     `json:"message"`
	AgentID    string     `json:"agent_id,omitempty"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
	Resolved   bool       `json:"resolved"`
	ResolvedBy string     `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// Workflow represents an automation workflow document.
type Workflow struct {
	WorkflowID     string          `json:"workflow_id"`
	Name           string          `json:"name,omitempty"`
	Description    string          `json:"description,omitempty"`
	Status         string          `json:"status,omitempty"`
	Trigger        string          `json:"trigger,omitempty"`
	Steps          json.RawMessage `json:"steps,omitempty"`
	CompletedToday int             `json:"completed_today"`
	CreatedBy      string          `json:"created_by,omitempty"`
	CreatedAt      *time.Time      `json:"created_at,omitempty"`
}
