package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/studiofolio/backend/internal/model"
	"github.com/studiofolio/backend/internal/repository"
	"github.com/studiofolio/backend/internal/service"
)

type mockCampaignService struct {
	createFunc func(ctx context.Context, slug, subject, html string) (*model.Campaign, error)
	listFunc   func(ctx context.Context) ([]*model.Campaign, error)
	sendFunc   func(ctx context.Context, campaignID string) (*model.SendResult, error)
}

func (m *mockCampaignService) Create(ctx context.Context, slug, subject, html string) (*model.Campaign, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, slug, subject, html)
	}
	return &model.Campaign{Slug: slug, Subject: subject, HTML: html, Status: model.CampaignStatusDraft}, nil
}

func (m *mockCampaignService) List(ctx context.Context) ([]*model.Campaign, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockCampaignService) Send(ctx context.Context, campaignID string) (*model.SendResult, error) {
	if m.sendFunc != nil {
		return m.sendFunc(ctx, campaignID)
	}
	return &model.SendResult{}, nil
}

func newAdminHandler(ns *mockNewsletterService, cs *mockCampaignService) *NewsletterAdminHandler {
	if ns == nil {
		ns = &mockNewsletterService{}
	}
	if cs == nil {
		cs = &mockCampaignService{}
	}
	return NewNewsletterAdminHandler(ns, cs)
}

// ---------------------------------------------------------------------------
// GET /api/newsletter/subscribers tests
// ---------------------------------------------------------------------------

func TestAdminHandler_ListSubscribers_Success(t *testing.T) {
	now := time.Now()
	ns := &mockNewsletterService{
		listFunc: func(ctx context.Context) ([]*model.Subscriber, error) {
			return []*model.Subscriber{
				{ID: "1", Email: "a@example.com", IsSubscribed: true, CreatedAt: now},
				{ID: "2", Email: "b@example.com", IsSubscribed: false, CreatedAt: now},
			}, nil
		},
	}
	h := newAdminHandler(ns, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/newsletter/subscribers", nil)
	rec := httptest.NewRecorder()
	h.ListSubscribers(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", rec.Code, rec.Body.String())
	}
	var resp subscribersResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Subscribers) != 2 {
		t.Errorf("expected 2 subscribers, got %d", len(resp.Subscribers))
	}
}

func TestAdminHandler_ListSubscribers_EmptyIsArray(t *testing.T) {
	h := newAdminHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/newsletter/subscribers", nil)
	rec := httptest.NewRecorder()
	h.ListSubscribers(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"subscribers":[]`) {
		t.Errorf("expected empty array, got %s", rec.Body.String())
	}
}

func TestAdminHandler_ListSubscribers_ServiceError(t *testing.T) {
	ns := &mockNewsletterService{
		listFunc: func(ctx context.Context) ([]*model.Subscriber, error) {
			return nil, errors.New("db unavailable")
		},
	}
	h := newAdminHandler(ns, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/newsletter/subscribers", nil)
	rec := httptest.NewRecorder()
	h.ListSubscribers(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// GET /api/newsletter/campaigns tests
// ---------------------------------------------------------------------------

func TestAdminHandler_ListCampaigns_EmptyIsArray(t *testing.T) {
	h := newAdminHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/newsletter/campaigns", nil)
	rec := httptest.NewRecorder()
	h.ListCampaigns(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"campaigns":[]`) {
		t.Errorf("expected empty array, got %s", rec.Body.String())
	}
}

// ---------------------------------------------------------------------------
// POST /api/newsletter/campaigns tests
// ---------------------------------------------------------------------------

func TestAdminHandler_CreateCampaign_Success(t *testing.T) {
	cs := &mockCampaignService{
		createFunc: func(ctx context.Context, slug, subject, html string) (*model.Campaign, error) {
			return &model.Campaign{ID: "new-id", Slug: slug, Subject: subject, HTML: html, Status: model.CampaignStatusDraft}, nil
		},
	}
	h := newAdminHandler(nil, cs)

	body := `{"slug":"june-update","subject":"June update","html":"<h1>June</h1>"}`
	req := httptest.NewRequest(http.MethodPost, "/api/newsletter/campaigns", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.CreateCampaign(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d — body: %s", rec.Code, rec.Body.String())
	}
	var resp model.Campaign
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != "new-id" || resp.Status != model.CampaignStatusDraft {
		t.Errorf("unexpected campaign: %+v", resp)
	}
}

func TestAdminHandler_CreateCampaign_MissingFields(t *testing.T) {
	h := newAdminHandler(nil, nil)

	for _, body := range []string{
		`{"subject":"s","html":"<p>x</p>"}`,
		`{"slug":"a","html":"<p>x</p>"}`,
		`{"slug":"a","subject":"s"}`,
		`{"slug":"  ","subject":"s","html":"<p>x</p>"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/newsletter/campaigns", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.CreateCampaign(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, rec.Code)
		}
		var resp map[string]string
		_ = json.NewDecoder(rec.Body).Decode(&resp)
		if resp["error"] != "slug_subject_html_required" {
			t.Errorf("body %s: expected slug_subject_html_required, got %q", body, resp["error"])
		}
	}
}

func TestAdminHandler_CreateCampaign_InvalidJSON(t *testing.T) {
	h := newAdminHandler(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/newsletter/campaigns", strings.NewReader("{bad"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.CreateCampaign(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid JSON, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// POST /api/newsletter/send tests
// ---------------------------------------------------------------------------

func TestAdminHandler_Send_Success(t *testing.T) {
	cs := &mockCampaignService{
		sendFunc: func(ctx context.Context, campaignID string) (*model.SendResult, error) {
			return &model.SendResult{SentCount: 3, FailCount: 1, Total: 4}, nil
		},
	}
	h := newAdminHandler(nil, cs)

	req := httptest.NewRequest(http.MethodPost, "/api/newsletter/send", strings.NewReader(`{"campaignId":"c1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Send(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", rec.Code, rec.Body.String())
	}
	var resp sendResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.SentCount != 3 || resp.FailCount != 1 || resp.Total != 4 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestAdminHandler_Send_MissingCampaignID(t *testing.T) {
	h := newAdminHandler(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/newsletter/send", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Send(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp["error"] != "campaign_id_required" {
		t.Errorf("expected campaign_id_required, got %q", resp["error"])
	}
}

func TestAdminHandler_Send_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"not found", repository.ErrNotFound, http.StatusNotFound, "campaign_not_found"},
		{"already sent", service.ErrAlreadySent, http.StatusBadRequest, "campaign_already_sent"},
		{"in progress", service.ErrSendInProgress, http.StatusBadRequest, "campaign_send_in_progress"},
		{"other", errors.New("smtp down"), http.StatusInternalServerError, "send_failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cs := &mockCampaignService{
				sendFunc: func(ctx context.Context, campaignID string) (*model.SendResult, error) {
					return nil, tc.err
				},
			}
			h := newAdminHandler(nil, cs)

			req := httptest.NewRequest(http.MethodPost, "/api/newsletter/send", strings.NewReader(`{"campaignId":"c1"}`))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			h.Send(rec, req)

			if rec.Code != tc.wantCode {
				t.Errorf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			var resp map[string]string
			_ = json.NewDecoder(rec.Body).Decode(&resp)
			if resp["error"] != tc.wantBody {
				t.Errorf("expected %q, got %q", tc.wantBody, resp["error"])
			}
		})
	}
}
