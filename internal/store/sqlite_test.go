package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/opspulse/dashboard/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestSQLiteStoreAgents(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	hb := time.Now().Add(-30 * time.Second)
	agent := &domain.Agent{
		AgentID:        "agent_1",
		Version:        "2.1.0",
		Description:    "lead researcher",
		Capabilities:   json.RawMessage(`["research","scoring"]`),
		UptimeHours:    12.5,
		TasksCompleted: 42,
		ErrorRate:      0.02,
		LastHeartbeat:  &hb,
		CreatedAt:      time.Now(),
	}
	if err := store.UpsertAgent(ctx, agent); err != nil {
		t.Fatalf("UpsertAgent failed: %v", err)
	}

	got, err := store.GetAgent(ctx, "agent_1")
	if err != nil {
		t.Fatalf("GetAgent failed: %v", err)
	}
	if got == nil || got.Version != "2.1.0" || got.TasksCompleted != 42 {
		t.Fatalf("unexpected agent: %+v", got)
	}
	if got.LastHeartbeat == nil {
		t.Fatal("expected last heartbeat to round-trip")
	}

	// Upsert replaces the existing document
	agent.Description = "updated"
	if err := store.UpsertAgent(ctx, agent); err != nil {
		t.Fatalf("UpsertAgent (replace) failed: %v", err)
	}

	agents, err := store.ListAgents(ctx)
	if err != nil {
		t.Fatalf("ListAgents failed: %v", err)
	}
	if len(agents) != 1 || agents[0].Description != "updated" {
		t.Fatalf("unexpected agents: %+v", agents)
	}

	count, err := store.CountAgents(ctx)
	if err != nil {
		t.Fatalf("CountAgents failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 agent, got %d", count)
	}
}

func TestSQLiteStoreAgentHeartbeat(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	agent := &domain.Agent{AgentID: "agent_1", CreatedAt: time.Now()}
	if err := store.UpsertAgent(ctx, agent); err != nil {
		t.Fatalf("UpsertAgent failed: %v", err)
	}

	got, err := store.GetAgent(ctx, "agent_1")
	if err != nil {
		t.Fatalf("GetAgent failed: %v", err)
	}
	if got.LastHeartbeat != nil {
		t.Fatalf("expected no heartbeat, got %v", got.LastHeartbeat)
	}

	at := time.Now()
	if err := store.TouchAgentHeartbeat(ctx, "agent_1", at); err != nil {
		t.Fatalf("TouchAgentHeartbeat failed: %v", err)
	}

	got, err = store.GetAgent(ctx, "agent_1")
	if err != nil {
		t.Fatalf("GetAgent failed: %v", err)
	}
	if got.LastHeartbeat == nil {
		t.Fatal("expected heartbeat to be recorded")
	}
}

func TestSQLiteStoreGetAgentMissing(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetAgent(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetAgent failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing agent, got %+v", got)
	}
}

func TestSQLiteStoreLeadCounts(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)
	leads := []domain.Lead{
		{LeadID: "l1", Status: domain.LeadStatusPendingResearch, Score: 0.9, CreatedAt: now},
		{LeadID: "l2", Status: domain.LeadStatusConverted, Score: 0.5, CreatedAt: now},
		{LeadID: "l3", Status: domain.LeadStatusConverted, Score: 0.81, CreatedAt: yesterday},
		{LeadID: "l4", Status: domain.LeadStatusLost, Score: 0.1, CreatedAt: yesterday},
	}
	for i := range leads {
		if err := store.CreateLead(ctx, &leads[i]); err != nil {
			t.Fatalf("CreateLead failed: %v", err)
		}
	}

	total, err := store.CountLeads(ctx)
	if err != nil {
		t.Fatalf("CountLeads failed: %v", err)
	}
	if total != 4 {
		t.Fatalf("expected 4 leads, got %d", total)
	}

	recent, err := store.CountLeadsCreatedSince(ctx, now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("CountLeadsCreatedSince failed: %v", err)
	}
	if recent != 2 {
		t.Fatalf("expected 2 recent leads, got %d", recent)
	}

	converted, err := store.CountLeadsByStatus(ctx, domain.LeadStatusConverted)
	if err != nil {
		t.Fatalf("CountLeadsByStatus failed: %v", err)
	}
	if converted != 2 {
		t.Fatalf("expected 2 converted leads, got %d", converted)
	}

	all, err := store.ListLeads(ctx)
	if err != nil {
		t.Fatalf("ListLeads failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 leads listed, got %d", len(all))
	}
}

func TestSQLiteStoreAlertLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"a1", "a2", "a3"} {
		ts := base.Add(time.Duration(i) * time.Minute)
		alert := &domain.Alert{
			AlertID:   id,
			Severity:  domain.SeverityWarning,
			Message:   "disk pressure",
			AgentID:   "agent_1",
			Timestamp: &ts,
		}
		if err := store.CreateAlert(ctx, alert); err != nil {
			t.Fatalf("CreateAlert failed: %v", err)
		}
	}

	alerts, err := store.ListUnresolvedAlerts(ctx, 50)
	if err != nil {
		t.Fatalf("ListUnresolvedAlerts failed: %v", err)
	}
	if len(alerts) != 3 {
		t.Fatalf("expected 3 alerts, got %d", len(alerts))
	}
	// Newest first
	if alerts[0].AlertID != "a3" {
		t.Fatalf("expected a3 first, got %s", alerts[0].AlertID)
	}

	if err := store.ResolveAlert(ctx, "a2", "dashboard_user", time.Now()); err != nil {
		t.Fatalf("ResolveAlert failed: %v", err)
	}

	alerts, err = store.ListUnresolvedAlerts(ctx, 50)
	if err != nil {
		t.Fatalf("ListUnresolvedAlerts failed: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("expected 2 unresolved alerts, got %d", len(alerts))
	}

	// Resolving again is not an error and resolved stays true
	if err := store.ResolveAlert(ctx, "a2", "dashboard_user", time.Now()); err != nil {
		t.Fatalf("ResolveAlert (repeat) failed: %v", err)
	}
	got, err := store.GetAlert(ctx, "a2")
	if err != nil {
		t.Fatalf("GetAlert failed: %v", err)
	}
	if got == nil || !got.Resolved || got.ResolvedBy != "dashboard_user" || got.ResolvedAt == nil {
		t.Fatalf("unexpected resolved alert: %+v", got)
	}
}

func TestSQLiteStoreUnresolvedAlertLimit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 60; i++ {
		ts := base.Add(time.Duration(i) * time.Second)
		alert := &domain.Alert{
			AlertID:   "alt_" + string(rune('a'+i%26)) + string(rune('0'+i/26)),
			Message:   "noise",
			Timestamp: &ts,
		}
		if err := store.CreateAlert(ctx, alert); err != nil {
			t.Fatalf("CreateAlert failed: %v", err)
		}
	}

	alerts, err := store.ListUnresolvedAlerts(ctx, 50)
	if err != nil {
		t.Fatalf("ListUnresolvedAlerts failed: %v", err)
	}
	if len(alerts) != 50 {
		t.Fatalf("expected 50 alerts, got %d", len(alerts))
	}
}

func TestSQLiteStoreWorkflows(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	now := time.Now()
	wf := &domain.Workflow{
		WorkflowID:     "wf_1",
		Name:           "Lead enrichment",
		Status:         domain.WorkflowStatusActive,
		Trigger:        "manual",
		Steps:          json.RawMessage(`["fetch","enrich","score"]`),
		CompletedToday: 0,
		CreatedBy:      "dashboard_user",
		CreatedAt:      &now,
	}
	if err := store.CreateWorkflow(ctx, wf); err != nil {
		t.Fatalf("CreateWorkflow failed: %v", err)
	}
	// A workflow written by an external process, with most fields absent
	if err := store.CreateWorkflow(ctx, &domain.Workflow{WorkflowID: "wf_2"}); err != nil {
		t.Fatalf("CreateWorkflow (sparse) failed: %v", err)
	}

	workflows, err := store.ListWorkflows(ctx)
	if err != nil {
		t.Fatalf("ListWorkflows failed: %v", err)
	}
	if len(workflows) != 2 {
		t.Fatalf("expected 2 workflows, got %d", len(workflows))
	}

	byID := map[string]domain.Workflow{}
	for _, w := range workflows {
		byID[w.WorkflowID] = w
	}
	if byID["wf_1"].Name != "Lead enrichment" || byID["wf_1"].CreatedAt == nil {
		t.Fatalf("unexpected workflow: %+v", byID["wf_1"])
	}
	if byID["wf_2"].Name != "" || byID["wf_2"].CreatedAt != nil {
		t.Fatalf("expected sparse workflow to stay sparse: %+v", byID["wf_2"])
	}
}
