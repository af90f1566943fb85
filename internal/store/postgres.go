package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opspulse/dashboard/internal/domain"
)

// PostgresStore implements Store using PostgreSQL via a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL store with a connection pool.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	store := &PostgresStore{pool: pool}
	if err := store.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS agents (
			agent_id TEXT PRIMARY KEY,
			version TEXT,
			description TEXT,
			capabilities JSONB,
			uptime_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
			tasks_completed INTEGER NOT NULL DEFAULT 0,
			error_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
			last_heartbeat TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS leads (
			lead_id TEXT PRIMARY KEY,
			status TEXT NOT NULL,
			score DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_created ON leads(created_at)`,
		`CREATE TABLE IF NOT EXISTS alerts (
			alert_id TEXT PRIMARY KEY,
			severity TEXT,
			message TEXT NOT NULL,
			agent_id TEXT,
			ts TIMESTAMPTZ,
			resolved BOOLEAN NOT NULL DEFAULT FALSE,
			resolved_by TEXT,
			resolved_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_unresolved ON alerts(resolved, ts)`,
		`CREATE TABLE IF NOT EXISTS workflows (
			workflow_id TEXT PRIMARY KEY,
			name TEXT,
			description TEXT,
			status TEXT,
			trigger_type TEXT,
			steps JSONB,
			completed_today INTEGER NOT NULL DEFAULT 0,
			created_by TEXT,
			created_at TIMESTAMPTZ
		)`,
	}

	for _, m := range migrations {
		if _, err := s.pool.Exec(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Ping checks the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// UpsertAgent inserts or replaces an agent document.
func (s *PostgresStore) UpsertAgent(ctx context.Context, agent *domain.Agent) error {
	caps := "null"
	if agent.Capabilities != nil {
		caps = string(agent.Capabilities)
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO agents (agent_id, version, description, capabilities, uptime_hours, tasks_completed, error_rate, last_heartbeat, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (agent_id) DO UPDATE SET
			version = EXCLUDED.version,
			description = EXCLUDED.description,
			capabilities = EXCLUDED.capabilities,
			uptime_hours = EXCLUDED.uptime_hours,
			tasks_completed = EXCLUDED.tasks_completed,
			error_rate = EXCLUDED.error_rate,
			last_heartbeat = EXCLUDED.last_heartbeat
	`, agent.AgentID, agent.Version, agent.Description, caps,
		agent.UptimeHours, agent.TasksCompleted, agent.ErrorRate,
		agent.LastHeartbeat, agent.CreatedAt)
	return err
}

// TouchAgentHeartbeat stamps the agent's last heartbeat.
func (s *PostgresStore) TouchAgentHeartbeat(ctx context.Context, agentID string, at time.Time) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE agents SET last_heartbeat = $1 WHERE agent_id = $2`, at, agentID)
	return err
}

// GetAgent retrieves an agent by ID.
func (s *PostgresStore) GetAgent(ctx context.Context, agentID string) (*domain.Agent, error) {
	agent := &domain.Agent{}
	var version, description *string
	var caps []byte
	err := s.pool.QueryRow(ctx, `
		SELECT agent_id, version, description, capabilities, uptime_hours, tasks_completed, error_rate, last_heartbeat, created_at
		FROM agents WHERE agent_id = $1
	`, agentID).Scan(&agent.AgentID, &version, &description, &caps,
		&agent.UptimeHours, &agent.TasksCompleted, &agent.ErrorRate,
		&agent.LastHeartbeat, &agent.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if version != nil {
		agent.Version = *version
	}
	if description != nil {
		agent.Description = *description
	}
	if len(caps) > 0 {
		agent.Capabilities = caps
	}
	return agent, nil
}

// ListAgents lists all agents.
func (s *PostgresStore) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT agent_id, version, description, capabilities, uptime_hours, tasks_completed, error_rate, last_heartbeat, created_at
		FROM agents ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agents []domain.Agent
	for rows.Next() {
		var agent domain.Agent
		var version, description *string
		var caps []byte
		if err := rows.Scan(&agent.AgentID, &version, &description, &caps,
			&agent.UptimeHours, &agent.TasksCompleted, &agent.ErrorRate,
			&agent.LastHeartbeat, &agent.CreatedAt); err != nil {
			return nil, err
		}
		if version != nil {
			agent.Version = *version
		}
		if description != nil {
			agent.Description = *description
		}
		if len(caps) > 0 {
			agent.Capabilities = caps
		}
		agents = append(agents, agent)
	}
	return agents, rows.Err()
}

// CountAgents counts all agents.
func (s *PostgresStore) CountAgents(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM agents`).Scan(&count)
	return count, err
}

// CreateLead creates a new lead.
func (s *PostgresStore) CreateLead(ctx context.Context, lead *domain.Lead) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO leads (lead_id, status, score, created_at) VALUES ($1, $2, $3, $4)`,
		lead.LeadID, lead.Status, lead.Score, lead.CreatedAt)
	return err
}

// ListLeads lists all leads.
func (s *PostgresStore) ListLeads(ctx context.Context) ([]domain.Lead, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT lead_id, status, score, created_at FROM leads ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []domain.Lead
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(&lead.LeadID, &lead.Status, &lead.Score, &lead.CreatedAt); err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// CountLeads counts all leads.
func (s *PostgresStore) CountLeads(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM leads`).Scan(&count)
	return count, err
}

// CountLeadsCreatedSince counts leads created at or after the given time.
func (s *PostgresStore) CountLeadsCreatedSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM leads WHERE created_at >= $1`, since).Scan(&count)
	return count, err
}

// CountLeadsByStatus counts leads with the given status.
func (s *PostgresStore) CountLeadsByStatus(ctx context.Context, status domain.LeadStatus) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM leads WHERE status = $1`, string(status)).Scan(&count)
	return count, err
}

// CreateAlert creates a new alert.
func (s *PostgresStore) CreateAlert(ctx context.Context, alert *domain.Alert) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO alerts (alert_id, severity, message, agent_id, ts, resolved, resolved_by, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, alert.AlertID, string(alert.Severity), alert.Message, alert.AgentID,
		alert.Timestamp, alert.Resolved, alert.ResolvedBy, alert.ResolvedAt)
	return err
}

// GetAlert retrieves an alert by ID.
func (s *PostgresStore) GetAlert(ctx context.Context, alertID string) (*domain.Alert, error) {
	alert := &domain.Alert{}
	var severity, agentID, resolvedBy *string
	err := s.pool.QueryRow(ctx, `
		SELECT alert_id, severity, message, agent_id, ts, resolved, resolved_by, resolved_at
		FROM alerts WHERE alert_id = $1
	`, alertID).Scan(&alert.AlertID, &severity, &alert.Message, &agentID,
		&alert.Timestamp, &alert.Resolved, &resolvedBy, &alert.ResolvedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if severity != nil {
		alert.Severity = domain.Severity(*severity)
	}
	if agentID != nil {
		alert.AgentID = *agentID
	}
	if resolvedBy != nil {
		alert.ResolvedBy = *resolvedBy
	}
	return alert, nil
}

// ListUnresolvedAlerts lists unresolved alerts, newest first.
func (s *PostgresStore) ListUnresolvedAlerts(ctx context.Context, limit int) ([]domain.Alert, error) {
	query := `SELECT alert_id, severity, message, agent_id, ts, resolved, resolved_by, resolved_at
		FROM alerts WHERE resolved = FALSE ORDER BY ts DESC NULLS LAST`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []domain.Alert
	for rows.Next() {
		var alert domain.Alert
		var severity, agentID, resolvedBy *string
		if err := rows.Scan(&alert.AlertID, &severity, &alert.Message, &agentID,
			&alert.Timestamp, &alert.Resolved, &resolvedBy, &alert.ResolvedAt); err != nil {
			return nil, err
		}
		if severity != nil {
			alert.Severity = domain.Severity(*severity)
		}
		if agentID != nil {
			alert.AgentID = *agentID
		}
		if resolvedBy != nil {
			alert.ResolvedBy = *resolvedBy
		}
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}

// ResolveAlert marks an alert resolved. Unconditional and idempotent.
func (s *PostgresStore) ResolveAlert(ctx context.Context, alertID, resolvedBy string, at time.Time) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE alerts SET resolved = TRUE, resolved_by = $1, resolved_at = $2 WHERE alert_id = $3`,
		resolvedBy, at, alertID)
	return err
}

// CreateWorkflow creates a new workflow.
func (s *PostgresStore) CreateWorkflow(ctx context.Context, workflow *domain.Workflow) error {
	steps := "null"
	if workflow.Steps != nil {
		steps = string(workflow.Steps)
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO workflows (workflow_id, name, description, status, trigger_type, steps, completed_today, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, workflow.WorkflowID, workflow.Name, workflow.Description, workflow.Status,
		workflow.Trigger, steps, workflow.CompletedToday, workflow.CreatedBy,
		workflow.CreatedAt)
	return err
}

// ListWorkflows lists all workflows.
func (s *PostgresStore) ListWorkflows(ctx context.Context) ([]domain.Workflow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT workflow_id, name, description, status, trigger_type, steps, completed_today, created_by, created_at
		FROM workflows ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workflows []domain.Workflow
	for rows.Next() {
		var wf domain.Workflow
		var name, description, status, trigger, createdBy *string
		var steps []byte
		if err := rows.Scan(&wf.WorkflowID, &name, &description, &status,
			&trigger, &steps, &wf.CompletedToday, &createdBy, &wf.CreatedAt); err != nil {
			return nil, err
		}
		if name != nil {
			wf.Name = *name
		}
		if description != nil {
			wf.Description = *description
		}
		if status != nil {
			wf.Status = *status
		}
		if trigger != nil {
			wf.Trigger = *trigger
		}
		if createdBy != nil {
			wf.CreatedBy = *createdBy
		}
		if len(steps) > 0 {
			wf.Steps = steps
		}
		workflows = append(workflows, wf)
	}
	return workflows, rows.Err()
}
