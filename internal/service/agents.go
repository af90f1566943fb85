package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/opspulse/dashboard/internal/domain"
	"github.com/opspulse/dashboard/internal/metrics"
)

// defaultAgentVersion is reported for agents with no stored version.
const defaultAgentVersion = "1.0.0"

// AgentMetrics is the shaped metrics block of an agent record.
type AgentMetrics struct {
	Uptime         string  `json:"uptime"`
	TasksCompleted int     `json:"tasksCompleted"`
	ErrorRate      float64 `json:"errorRate"`
}

// AgentRecord is the dashboard view of a single agent.
type AgentRecord struct {
	Version      string             `json:"version"`
	Status       domain.AgentStatus `json:"status"`
	Description  string             `json:"description"`
	Capabilities []string           `json:"capabilities"`
	Metrics      AgentMetrics       `json:"metrics"`
}

// AgentStatuses fetches all agents and derives each one's status from its
// last heartbeat as of now. Stored status values are never trusted.
func (s *Service) AgentStatuses(ctx context.Context, now time.Time) (map[string]AgentRecord, error) {
	agents, err := s.store.ListAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}

	records := make(map[string]AgentRecord, len(agents))
	for _, a := range agents {
		version := a.Version
		if version == "" {
			version = defaultAgentVersion
		}

		caps := []string{}
		if a.Capabilities != nil {
			_ = json.Unmarshal(a.Capabilities, &caps)
		}

		records[a.AgentID] = AgentRecord{
			Version:      version,
			Status:       domain.StatusAt(a.LastHeartbeat, now),
			Description:  a.Description,
			Capabilities: caps,
			Metrics: AgentMetrics{
				Uptime:         fmt.Sprintf("%.1f hours", a.UptimeHours),
				TasksCompleted: a.TasksCompleted,
				ErrorRate:      a.ErrorRate,
			},
		}
	}
	return records, nil
}

// SendCommand acknowledges a command for an agent. The command is logged,
// not delivered: agents are expected to poll or be driven externally, so
// this is an acknowledgment stub rather than a dispatch mechanism.
func (s *Service) SendCommand(ctx context.Context, agentID, command string) {
	s.logger.Info().
		Str("agent_id", agentID).
		Str("command", command).
		Msg("agent command acknowledged")
	metrics.CommandsAcknowledged.Inc()
}

// RegisterAgent inserts or replaces an agent document.
func (s *Service) RegisterAgent(ctx context.Context, agentID, version, description string, capabilities []string) (*domain.Agent, error) {
	caps, _ := json.Marshal(capabilities)
	now := time.Now()
	agent := &domain.Agent{
		AgentID:      agentID,
		Version:      version,
		Description:  description,
		Capabilities: caps,
		CreatedAt:    now,
	}

	if err := s.store.UpsertAgent(ctx, agent); err != nil {
		return nil, fmt.Errorf("failed to register agent: %w", err)
	}
	return agent, nil
}

// Heartbeat stamps the agent's last heartbeat with the current time.
func (s *Service) Heartbeat(ctx context.Context, agentID string) error {
	if err := s.store.TouchAgentHeartbeat(ctx, agentID, time.Now()); err != nil {
		return fmt.Errorf("failed to record heartbeat: %w", err)
	}
	metrics.HeartbeatsReceived.Inc()
	return nil
}
