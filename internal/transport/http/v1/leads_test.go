package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/opspulse/dashboard/internal/domain"
)

func TestLeadMetricsEndpoint(t *testing.T) {
	e := echo.New()
	handler, db := newTestHandler(t)

	now := time.Now()
	ctx := context.Background()
	leads := []domain.Lead{
		{LeadID: "l1", Status: domain.LeadStatusConverted, Score: 0.9, CreatedAt: now},
		{LeadID: "l2", Status: domain.LeadStatusPendingResearch, Score: 0.3, CreatedAt: now},
	}
	for i := range leads {
		if err := db.CreateLead(ctx, &leads[i]); err != nil {
			t.Fatalf("CreateLead failed: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/leads/metrics", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.LeadMetrics(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success         bool   `json:"success"`
		TotalLeads      int    `json:"totalLeads"`
		PendingResearch int    `json:"pendingResearch"`
		HotLeads        int    `json:"hotLeads"`
		ConversionRate  string `json:"conversionRate"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.TotalLeads)
	assert.Equal(t, 1, resp.PendingResearch)
	assert.Equal(t, 1, resp.HotLeads)
	assert.Equal(t, "50.0", resp.ConversionRate)
}

func TestCreateLeadEndpoint(t *testing.T) {
	e := echo.New()
	handler, db := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/leads", bytes.NewBufferString(`{"score":0.95}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateLead(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assert.Equal(t, http.StatusOK, rec.Code)

	leads, err := db.ListLeads(context.Background())
	if err != nil {
		t.Fatalf("ListLeads failed: %v", err)
	}
	assert.Len(t, leads, 1)
	assert.Equal(t, domain.LeadStatusPendingResearch, leads[0].Status)
	assert.Equal(t, 0.95, leads[0].Score)
}

func TestCalculateROIEndpoint(t *testing.T) {
	e := echo.New()
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/roi/calculate", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CalculateROI(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		ROI     struct {
			Investment  int    `json:"investment"`
			ROIMultiple string `json:"roiMultiple"`
		} `json:"roi"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	assert.True(t, resp.Success)
	assert.Equal(t, 50000, resp.ROI.Investment)
	assert.NotEmpty(t, resp.ROI.ROIMultiple)
}
