// Package store defines the storage interface and implementations.
package store

import (
	"context"
	"time"

	"github.com/opspulse/dashboard/internal/domain"
)

// Store defines the interface for data persistence. Both SQLiteStore and
// PostgresStore implement this interface.
type Store interface {
	// Agent operations
	UpsertAgent(ctx context.Context, agent *domain.Agent) error
	TouchAgentHeartbeat(ctx context.Context, agentID string, at time.Time) error
	GetAgent(ctx context.Context, agentID string) (*domain.Agent, error)
	ListAgents(ctx context.Context) ([]domain.Agent, error)
	CountAgents(ctx context.Context) (int, error)

	// Lead operations
	CreateLead(ctx context.Context, lead *domain.Lead) error
	ListLeads(ctx context.Context) ([]domain.Lead, error)
	CountLeads(ctx context.Context) (int, error)
	CountLeadsCreatedSince(ctx context.Context, since time.Time) (int, error)
	CountLeadsByStatus(ctx context.Context, status domain.LeadStatus) (int, error)

	// Alert operations
	CreateAlert(ctx context.Context, alert *domain.Alert) error
	GetAlert(ctx context.Context, alertID string) (*domain.Alert, error)
	ListUnresolvedAlerts(ctx context.Context, limit int) ([]domain.Alert, error)
	ResolveAlert(ctx context.Context, alertID, resolvedBy string, at time.Time) error

	// Workflow operations
	CreateWorkflow(ctx context.Context, workflow *domain.Workflow) error
	ListWorkflows(ctx context.Context) ([]domain.Workflow, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}
