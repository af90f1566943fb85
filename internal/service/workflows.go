package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/opspulse/dashboard/internal/domain"
	"github.com/opspulse/dashboard/internal/metrics"
)

// WorkflowItem is the shaped view of a single workflow.
type WorkflowItem struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Status         string  `json:"status"`
	Steps          int     `json:"steps"`
	CompletedToday int     `json:"completedToday"`
	Created        *string `json:"created"`
}

// CreateWorkflowRequest carries the caller-controlled workflow fields.
// Status, creation time, creator and the completed-today counter are
// always set by the server.
type CreateWorkflowRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Trigger     string   `json:"trigger"`
	Steps       []string `json:"steps"`
}

// ListWorkflows fetches all workflows and shapes them with display defaults.
func (s *Service) ListWorkflows(ctx context.Context) ([]WorkflowItem, error) {
	workflows, err := s.store.ListWorkflows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}

	items := make([]WorkflowItem, 0, len(workflows))
	for _, wf := range workflows {
		name := wf.Name
		if name == "" {
			name = "Unnamed Workflow"
		}
		status := wf.Status
		if status == "" {
			status = domain.WorkflowStatusInactive
		}

		var steps []string
		if wf.Steps != nil {
			_ = json.Unmarshal(wf.Steps, &steps)
		}

		var created *string
		if wf.CreatedAt != nil {
			iso := wf.CreatedAt.Format(time.RFC3339)
			created = &iso
		}

		items = append(items, WorkflowItem{
			ID:             wf.WorkflowID,
			Name:           name,
			Status:         status,
			Steps:          len(steps),
			CompletedToday: wf.CompletedToday,
			Created:        created,
		})
	}
	return items, nil
}

// CreateWorkflow persists a new workflow. Status, creation time, creator
// identity and the completed-today counter are forced regardless of input;
// the trigger defaults to "manual".
func (s *Service) CreateWorkflow(ctx context.Context, req CreateWorkflowRequest) (string, error) {
	trigger := req.Trigger
	if trigger == "" {
		trigger = "manual"
	}
	steps, _ := json.Marshal(req.Steps)
	now := time.Now()

	workflow := &domain.Workflow{
		WorkflowID:     "wf_" + uuid.New().String()[:8],
		Name:           req.Name,
		Description:    req.Description,
		Status:         domain.WorkflowStatusActive,
		Trigger:        trigger,
		Steps:          steps,
		CompletedToday: 0,
		CreatedBy:      s.config.Identity,
		CreatedAt:      &now,
	}

	if err := s.store.CreateWorkflow(ctx, workflow); err != nil {
		return "", fmt.Errorf("failed to create workflow: %w", err)
	}
	metrics.WorkflowsCreated.Inc()
	return workflow.WorkflowID, nil
}
