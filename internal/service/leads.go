package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/opspulse/dashboard/internal/domain"
)

// LeadMetrics is the aggregate view of the lead pipeline.
type LeadMetrics struct {
	TotalLeads      int    `json:"totalLeads"`
	NewToday        int    `json:"newToday"`
	PendingResearch int    `json:"pendingResearch"`
	HotLeads        int    `json:"hotLeads"`
	ConversionRate  string `json:"conversionRate"`
}

// LeadMetrics computes the five pipeline aggregates as of now. Each count is
// an independent query, so concurrent writes between them can make the
// aggregates slightly incoherent. That approximation is deliberate; no
// snapshot is taken.
func (s *Service) LeadMetrics(ctx context.Context, now time.Time) (*LeadMetrics, error) {
	total, err := s.store.CountLeads(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count leads: %w", err)
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	newToday, err := s.store.CountLeadsCreatedSince(ctx, midnight)
	if err != nil {
		return nil, fmt.Errorf("failed to count new leads: %w", err)
	}

	pending, err := s.store.CountLeadsByStatus(ctx, domain.LeadStatusPendingResearch)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending leads: %w", err)
	}

	converted, err := s.store.CountLeadsByStatus(ctx, domain.LeadStatusConverted)
	if err != nil {
		return nil, fmt.Errorf("failed to count converted leads: %w", err)
	}

	// The hot count scans the full result set rather than filtering in the
	// store, matching how the score threshold is applied elsewhere.
	leads, err := s.store.ListLeads(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	hot := 0
	for _, l := range leads {
		if l.Score > domain.HotLeadThreshold {
			hot++
		}
	}

	rate := 0.0
	if total > 0 {
		rate = float64(converted) / float64(total) * 100
	}

	return &LeadMetrics{
		TotalLeads:      total,
		NewToday:        newToday,
		PendingResearch: pending,
		HotLeads:        hot,
		ConversionRate:  fmt.Sprintf("%.1f", rate),
	}, nil
}

// CreateLead ingests a lead with a generated id. An empty status defaults
// to PENDING_RESEARCH.
func (s *Service) CreateLead(ctx context.Context, status domain.LeadStatus, score float64) (*domain.Lead, error) {
	if status == "" {
		status = domain.LeadStatusPendingResearch
	}
	lead := &domain.Lead{
		LeadID:    "lead_" + uuid.New().String()[:8],
		Status:    status,
		Score:     score,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateLead(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}
	return lead, nil
}
