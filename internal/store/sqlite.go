package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/opspulse/dashboard/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS agents (
			agent_id TEXT PRIMARY KEY,
			version TEXT,
			description TEXT,
			capabilities TEXT,
			uptime_hours REAL NOT NULL DEFAULT 0,
			tasks_completed INTEGER NOT NULL DEFAULT 0,
			error_rate REAL NOT NULL DEFAULT 0,
			last_heartbeat DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS leads (
			lead_id TEXT PRIMARY KEY,
			status TEXT NOT NULL,
			score REAL NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_created ON leads(created_at)`,
		`CREATE TABLE IF NOT EXISTS alerts (
			alert_id TEXT PRIMARY KEY,
			severity TEXT,
			message TEXT NOT NULL,
			agent_id TEXT,
			ts DATETIME,
			resolved INTEGER NOT NULL DEFAULT 0,
			resolved_by TEXT,
			resolved_at DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_unresolved ON alerts(resolved, ts)`,
		`CREATE TABLE IF NOT EXISTS workflows (
			workflow_id TEXT PRIMARY KEY,
			name TEXT,
			description TEXT,
			status TEXT,
			trigger_type TEXT,
			steps TEXT,
			completed_today INTEGER NOT NULL DEFAULT 0,
			created_by TEXT,
			created_at DATETIME
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// UpsertAgent inserts or replaces an agent document.
func (s *SQLiteStore) UpsertAgent(ctx context.Context, agent *domain.Agent) error {
	caps := ""
	if agent.Capabilities != nil {
		caps = string(agent.Capabilities)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO agents (agent_id, version, description, capabilities, uptime_hours, tasks_completed, error_rate, last_heartbeat, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		agent.AgentID, agent.Version, agent.Description, caps,
		agent.UptimeHours, agent.TasksCompleted, agent.ErrorRate,
		agent.LastHeartbeat, agent.CreatedAt)
	return err
}

// TouchAgentHeartbeat stamps the agent's last heartbeat.
func (s *SQLiteStore) TouchAgentHeartbeat(ctx context.Context, agentID string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE agents SET last_heartbeat = ? WHERE agent_id = ?`,
		at, agentID)
	return err
}

// GetAgent retrieves an agent by ID.
func (s *SQLiteStore) GetAgent(ctx context.Context, agentID string) (*domain.Agent, error) {
	var agent domain.Agent
	var version, description, caps sql.NullString
	var lastHeartbeat sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT agent_id, version, description, capabilities, uptime_hours, tasks_completed, error_rate, last_heartbeat, created_at
		 FROM agents WHERE agent_id = ?`,
		agentID).Scan(&agent.AgentID, &version, &description, &caps,
		&agent.UptimeHours, &agent.TasksCompleted, &agent.ErrorRate,
		&lastHeartbeat, &agent.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	agent.Version = version.String
	agent.Description = description.String
	if caps.Valid && caps.String != "" {
		agent.Capabilities = []byte(caps.String)
	}
	if lastHeartbeat.Valid {
		agent.LastHeartbeat = &lastHeartbeat.Time
	}
	return &agent, nil
}

// ListAgents lists all agents.
func (s *SQLiteStore) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT agent_id, version, description, capabilities, uptime_hours, tasks_completed, error_rate, last_heartbeat, created_at
		 FROM agents ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agents []domain.Agent
	for rows.Next() {
		var agent domain.Agent
		var version, description, caps sql.NullString
		var lastHeartbeat sql.NullTime
		if err := rows.Scan(&agent.AgentID, &version, &description, &caps,
			&agent.UptimeHours, &agent.TasksCompleted, &agent.ErrorRate,
			&lastHeartbeat, &agent.CreatedAt); err != nil {
			return nil, err
		}
		agent.Version = version.String
		agent.Description = description.String
		if caps.Valid && caps.String != "" {
			agent.Capabilities = []byte(caps.String)
		}
		if lastHeartbeat.Valid {
			agent.LastHeartbeat = &lastHeartbeat.Time
		}
		agents = append(agents, agent)
	}
	return agents, rows.Err()
}

// CountAgents counts all agents.
func (s *SQLiteStore) CountAgents(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM agents`).Scan(&count)
	return count, err
}

// CreateLead creates a new lead.
func (s *SQLiteStore) CreateLead(ctx context.Context, lead *domain.Lead) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leads (lead_id, status, score, created_at) VALUES (?, ?, ?, ?)`,
		lead.LeadID, lead.Status, lead.Score, lead.CreatedAt)
	return err
}

// ListLeads lists all leads.
func (s *SQLiteStore) ListLeads(ctx context.Context) ([]domain.Lead, error) {
	rows, err := s.db.QueryContext(ctx,
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
func (s *SQLiteStore) CountLeads(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&count)
	return count, err
}

// CountLeadsCreatedSince counts leads created at or after the given time.
func (s *SQLiteStore) CountLeadsCreatedSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM leads WHERE created_at >= ?`, since).Scan(&count)
	return count, err
}

// CountLeadsByStatus counts leads with the given status.
func (s *SQLiteStore) CountLeadsByStatus(ctx context.Context, status domain.LeadStatus) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM leads WHERE status = ?`, status).Scan(&count)
	return count, err
}

// CreateAlert creates a new alert.
func (s *SQLiteStore) CreateAlert(ctx context.Context, alert *domain.Alert) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO alerts (alert_id, severity, message, agent_id, ts, resolved, resolved_by, resolved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		alert.AlertID, alert.Severity, alert.Message, alert.AgentID,
		alert.Timestamp, alert.Resolved, alert.ResolvedBy, alert.ResolvedAt)
	return err
}

// GetAlert retrieves an alert by ID.
func (s *SQLiteStore) GetAlert(ctx context.Context, alertID string) (*domain.Alert, error) {
	var alert domain.Alert
	var severity, agentID, resolvedBy sql.NullString
	var ts, resolvedAt sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT alert_id, severity, message, agent_id, ts, resolved, resolved_by, resolved_at
		 FROM alerts WHERE alert_id = ?`,
		alertID).Scan(&alert.AlertID, &severity, &alert.Message, &agentID,
		&ts, &alert.Resolved, &resolvedBy, &resolvedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	alert.Severity = domain.Severity(severity.String)
	alert.AgentID = agentID.String
	alert.ResolvedBy = resolvedBy.String
	if ts.Valid {
		alert.Timestamp = &ts.Time
	}
	if resolvedAt.Valid {
		alert.ResolvedAt = &resolvedAt.Time
	}
	return &alert, nil
}

// ListUnresolvedAlerts lists unresolved alerts, newest first.
func (s *SQLiteStore) ListUnresolvedAlerts(ctx context.Context, limit int) ([]domain.Alert, error) {
	query := `SELECT alert_id, severity, message, agent_id, ts, resolved, resolved_by, resolved_at
		 FROM alerts WHERE resolved = 0 ORDER BY ts DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []domain.Alert
	for rows.Next() {
		var alert domain.Alert
		var severity, agentID, resolvedBy sql.NullString
		var ts, resolvedAt sql.NullTime
		if err := rows.Scan(&alert.AlertID, &severity, &alert.Message, &agentID,
			&ts, &alert.Resolved, &resolvedBy, &resolvedAt); err != nil {
			return nil, err
		}
		alert.Severity = domain.Severity(severity.String)
		alert.AgentID = agentID.String
		alert.ResolvedBy = resolvedBy.String
		if ts.Valid {
			alert.Timestamp = &ts.Time
		}
		if resolvedAt.Valid {
			alert.ResolvedAt = &resolvedAt.Time
		}
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}

// ResolveAlert marks an alert resolved. The update is unconditional, so
// resolving an already-resolved alert is a no-op rather than an error.
func (s *SQLiteStore) ResolveAlert(ctx context.Context, alertID, resolvedBy string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE alerts SET resolved = 1, resolved_by = ?, resolved_at = ? WHERE alert_id = ?`,
		resolvedBy, at, alertID)
	return err
}

// CreateWorkflow creates a new workflow.
func (s *SQLiteStore) CreateWorkflow(ctx context.Context, workflow *domain.Workflow) error {
	steps := ""
	if workflow.Steps != nil {
		steps = string(workflow.Steps)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO workflows (workflow_id, name, description, status, trigger_type, steps, completed_today, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		workflow.WorkflowID, workflow.Name, workflow.Description, workflow.Status,
		workflow.Trigger, steps, workflow.CompletedToday, workflow.CreatedBy,
		workflow.CreatedAt)
	return err
}

// ListWorkflows lists all workflows.
func (s *SQLiteStore) ListWorkflows(ctx context.Context) ([]domain.Workflow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT workflow_id, name, description, status, trigger_type, steps, completed_today, created_by, created_at
		 FROM workflows ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workflows []domain.Workflow
	for rows.Next() {
		var wf domain.Workflow
		var name, description, status, trigger, steps, createdBy sql.NullString
		var createdAt sql.NullTime
		if err := rows.Scan(&wf.WorkflowID, &name, &description, &status,
			&trigger, &steps, &wf.CompletedToday, &createdBy, &createdAt); err != nil {
			return nil, err
		}
		wf.Name = name.String
		wf.Description = description.String
		wf.Status = status.String
		wf.Trigger = trigger.String
		wf.CreatedBy = createdBy.String
		if steps.Valid && steps.String != "" {
			wf.Steps = []byte(steps.String)
		}
		if createdAt.Valid {
			wf.CreatedAt = &createdAt.Time
		}
		workflows = append(workflows, wf)
	}
	return workflows, rows.Err()
}
