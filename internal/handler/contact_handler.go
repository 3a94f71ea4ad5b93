package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/studiofolio/backend/internal/model"
	"github.com/studiofolio/backend/internal/ratelimit"
	"github.com/studiofolio/backend/internal/service"
)

// ContactHandler handles contact form submissions.
type ContactHandler struct {
	contactService service.ContactService
	limiter        ratelimit.Limiter
}

// NewContactHandler creates a ContactHandler with the given service and
// rate limiter.
func NewContactHandler(contactService service.ContactService, limiter ratelimit.Limiter) *ContactHandler {
	return &ContactHandler{contactService: contactService, limiter: limiter}
}

// clientID derives the rate-limit bucket key: first entry of X-Forwarded-For,
// else X-Real-IP, else the literal "unknown". All requests lacking both
// headers share the "unknown" bucket.
func clientID(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return "unknown"
}

// Submit handles POST /api/contact. Rate limiting runs before body parsing;
// on a validation failure only the first error is surfaced.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(r.Context(), clientID(r)) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Too many requests. Please try again later."})
		return
	}

	var req model.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid request body."})
		return
	}

	_, err := h.contactService.Submit(r.Context(), req)
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": vErr.Error()})
		return
	}
	if err != nil {
		slog.Error("contact submission failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Something went wrong. Please try again later."})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
