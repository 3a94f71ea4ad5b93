package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/studiofolio/backend/internal/model"
	"github.com/studiofolio/backend/internal/repository"
	"github.com/studiofolio/backend/internal/service"
)

// NewsletterAdminHandler handles the token-gated newsletter admin endpoints.
// Authentication itself lives in auth.RequireAdminToken middleware.
type NewsletterAdminHandler struct {
	newsletterService service.NewsletterService
	campaignService   service.CampaignService
}

// NewNewsletterAdminHandler creates a NewsletterAdminHandler with the given services.
func NewNewsletterAdminHandler(newsletterService service.NewsletterService, campaignService service.CampaignService) *NewsletterAdminHandler {
	return &NewsletterAdminHandler{
		newsletterService: newsletterService,
		campaignService:   campaignService,
	}
}

// subscribersResponse is the JSON response for GET /api/newsletter/subscribers.
type subscribersResponse struct {
	Subscribers []*model.Subscriber `json:"subscribers"`
}

// ListSubscribers handles GET /api/newsletter/subscribers.
// Most recent first, capped at 500 rows.
func (h *NewsletterAdminHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subscribers, err := h.newsletterService.ListSubscribers(r.Context())
	if err != nil {
		slog.Error("list subscribers failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "list_failed"})
		return
	}

	// Return [] not null for empty lists
	if subscribers == nil {
		subscribers = []*model.Subscriber{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(subscribersResponse{Subscribers: subscribers})
}

// campaignsResponse is the JSON response for GET /api/newsletter/campaigns.
type campaignsResponse struct {
	Campaigns []*model.Campaign `json:"campaigns"`
}

// ListCampaigns handles GET /api/newsletter/campaigns, newest first.
func (h *NewsletterAdminHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.campaignService.List(r.Context())
	if err != nil {
		slog.Error("list campaigns failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "list_failed"})
		return
	}

	if campaigns == nil {
		campaigns = []*model.Campaign{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(campaignsResponse{Campaigns: campaigns})
}

// createCampaignRequest is the expected JSON body for POST /api/newsletter/campaigns.
type createCampaignRequest struct {
	Slug    string `json:"slug"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// CreateCampaign handles POST /api/newsletter/campaigns.
// slug, subject and html are all required; the campaign starts as draft.
func (h *NewsletterAdminHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	req.Slug = strings.TrimSpace(req.Slug)
	req.Subject = strings.TrimSpace(req.Subject)
	if req.Slug == "" || req.Subject == "" || req.HTML == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "slug_subject_html_required"})
		return
	}

	campaign, err := h.campaignService.Create(r.Context(), req.Slug, req.Subject, req.HTML)
	if err != nil {
		slog.Error("create campaign failed", "slug", req.Slug, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "create_failed"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(campaign)
}

// sendRequest is the expected JSON body for POST /api/newsletter/send.
type sendRequest struct {
	CampaignID string `json:"campaignId"`
}

// sendResponse is the JSON response for a completed send run.
type sendResponse struct {
	Success   bool `json:"success"`
	SentCount int  `json:"sentCount"`
	FailCount int  `json:"failCount"`
	Total     int  `json:"total"`
}

// Send handles POST /api/newsletter/send, running the campaign send loop.
func (h *NewsletterAdminHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}
	if req.CampaignID == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "campaign_id_required"})
		return
	}

	result, err := h.campaignService.Send(r.Context(), req.CampaignID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "campaign_not_found"})
		return
	case errors.Is(err, service.ErrAlreadySent):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "campaign_already_sent"})
		return
	case errors.Is(err, service.ErrSendInProgress):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "campaign_send_in_progress"})
		return
	case err != nil:
		slog.Error("campaign send failed", "campaign", req.CampaignID, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "send_failed"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sendResponse{
		Success:   true,
		SentCount: result.SentCount,
		FailCount: result.FailCount,
		Total:     result.Total,
	})
}
