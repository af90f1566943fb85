package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/opspulse/dashboard/internal/domain"
)

func TestCreateWorkflowForcesServerFields(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	id, err := svc.CreateWorkflow(ctx, CreateWorkflowRequest{
		Name:    "Nightly enrichment",
		Trigger: "schedule",
		Steps:   []string{"fetch", "enrich", "score"},
	})
	if err != nil {
		t.Fatalf("CreateWorkflow failed: %v", err)
	}
	assert.NotEmpty(t, id)

	workflows, err := svc.store.ListWorkflows(ctx)
	if err != nil {
		t.Fatalf("ListWorkflows failed: %v", err)
	}
	if len(workflows) != 1 {
		t.Fatalf("expected 1 workflow, got %d", len(workflows))
	}

	wf := workflows[0]
	assert.Equal(t, domain.WorkflowStatusActive, wf.Status)
	assert.Equal(t, 0, wf.CompletedToday)
	assert.Equal(t, "dashboard_user", wf.CreatedBy)
	assert.NotNil(t, wf.CreatedAt)

	var steps []string
	if err := json.Unmarshal(wf.Steps, &steps); err != nil {
		t.Fatalf("unmarshal steps: %v", err)
	}
	assert.Equal(t, []string{"fetch", "enrich", "score"}, steps)
}

func TestCreateWorkflowDefaultsTrigger(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.CreateWorkflow(ctx, CreateWorkflowRequest{}); err != nil {
		t.Fatalf("CreateWorkflow failed: %v", err)
	}

	workflows, err := svc.store.ListWorkflows(ctx)
	if err != nil {
		t.Fatalf("ListWorkflows failed: %v", err)
	}
	assert.Equal(t, "manual", workflows[0].Trigger)
}

func TestListWorkflowsAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	now := time.Now()
	if err := svc.store.CreateWorkflow(ctx, &domain.Workflow{
		WorkflowID: "wf_full",
		Name:       "Outreach",
		Status:     domain.WorkflowStatusActive,
		Steps:      json.RawMessage(`["a","b"]`),
		CreatedAt:  &now,
	}); err != nil {
		t.Fatalf("CreateWorkflow failed: %v", err)
	}
	if err := svc.store.CreateWorkflow(ctx, &domain.Workflow{WorkflowID: "wf_sparse"}); err != nil {
		t.Fatalf("CreateWorkflow (sparse) failed: %v", err)
	}

	items, err := svc.ListWorkflows(ctx)
	if err != nil {
		t.Fatalf("ListWorkflows failed: %v", err)
	}

	byID := map[string]WorkflowItem{}
	for _, item := range items {
		byID[item.ID] = item
	}

	full := byID["wf_full"]
	assert.Equal(t, "Outreach", full.Name)
	assert.Equal(t, 2, full.Steps)
	assert.NotNil(t, full.Created)

	sparse := byID["wf_sparse"]
	assert.Equal(t, "Unnamed Workflow", sparse.Name)
	assert.Equal(t, domain.WorkflowStatusInactive, sparse.Status)
	assert.Equal(t, 0, sparse.Steps)
	assert.Equal(t, 0, sparse.CompletedToday)
	assert.Nil(t, sparse.Created)
}
