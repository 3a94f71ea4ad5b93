package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/studiofolio/backend/internal/repository"
	"github.com/studiofolio/backend/internal/service"
)

// NewsletterHandler handles the public subscribe/unsubscribe endpoints.
type NewsletterHandler struct {
	newsletterService service.NewsletterService
}

// NewNewsletterHandler creates a NewsletterHandler with the given service.
func NewNewsletterHandler(newsletterService service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService}
}

// subscribeRequest is the expected JSON body for POST /api/newsletter/subscribe.
type subscribeRequest struct {
	Email string `json:"email"`
}

// Subscribe handles POST /api/newsletter/subscribe. Subscribing an address
// that is already on the list succeeds (re-activation), so the endpoint does
// not reveal membership.
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid request body."})
		return
	}

	err := h.newsletterService.Subscribe(r.Context(), req.Email)
	if errors.Is(err, service.ErrInvalidEmail) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Please enter a valid email address."})
		return
	}
	if err != nil {
		slog.Error("newsletter subscribe failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Something went wrong. Please try again later."})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// Unsubscribe handles GET /api/newsletter/unsubscribe?token=..., the target
// of the link appended to every campaign. Responds with plain text since it
// is opened in a browser, not called by the frontend.
func (h *NewsletterHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	err := h.newsletterService.Unsubscribe(r.Context(), token)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "This unsubscribe link is invalid or has expired.", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("newsletter unsubscribe failed", "error", err)
		http.Error(w, "Something went wrong. Please try again later.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("You have been unsubscribed. You will no longer receive newsletter emails.\n"))
}
