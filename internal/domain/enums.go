package domain

import "time"

// AgentStatus is the derived liveness state of an agent. It is never
// persisted; readers recompute it from the last heartbeat.
type AgentStatus string

const (
	AgentStatusHealthy  AgentStatus = "healthy"
	AgentStatusDegraded AgentStatus = "degraded"
	AgentStatusOffline  AgentStatus = "offline"
)

// Heartbeat thresholds for status derivation.
const (
	healthyWithin  = 60 * time.Second
	degradedWithin = 300 * time.Second
)

// StatusAt derives an agent's status from its last heartbeat as of now.
// An agent that has never sent a heartbeat is offline.
func StatusAt(lastHeartbeat *time.Time, now time.Time) AgentStatus {
	if lastHeartbeat == nil {
		return AgentStatusOffline
	}
	elapsed := now.Sub(*lastHeartbeat)
	switch {
	case elapsed < healthyWithin:
		return AgentStatusHealthy
	case elapsed < degradedWithin:
		return AgentStatusDegraded
	default:
		return AgentStatusOffline
	}
}

// LeadStatus represents the pipeline state of a lead.
type LeadStatus string

const (
	LeadStatusPendingResearch LeadStatus = "PENDING_RESEARCH"
	LeadStatusContacted       LeadStatus = "CONTACTED"
	LeadStatusQualified       LeadStatus = "QUALIFIED"
	LeadStatusConverted       LeadStatus = "CONVERTED"
	LeadStatusLost            LeadStatus = "LOST"
)

// HotLeadThreshold is the score above which a lead counts as hot.
const HotLeadThreshold = 0.8

// Severity represents the severity of an alert.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Workflow statuses. Creation always starts a workflow as active.
const (
	WorkflowStatusActive   = "active"
	WorkflowStatusInactive = "inactive"
)
