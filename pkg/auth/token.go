// Package auth provides admin authentication for the newsletter endpoints:
// a single shared token compared against a request header. There is no
// per-user identity, rotation or expiry.
package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// TokenHeader carries the admin token on newsletter admin requests.
const TokenHeader = "X-NEWSLETTER-ADMIN-TOKEN"

// RequireAdminToken returns middleware that rejects requests whose
// TokenHeader does not exactly match token. An empty server-side token fails
// closed: every request is rejected until the token is configured.
func RequireAdminToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(TokenHeader)
			if token == "" || got == "" ||
				subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
