package service

import (
	"context"
	"regexp"

	"github.com/studiofolio/backend/internal/model"
)

// Field length limits for contact submissions.
const (
	minNameLength    = 2
	maxNameLength    = 100
	maxEmailLength   = 256
	maxCompanyLength = 100
	minMessageLength = 10
	maxMessageLength = 5000
)

// emailPattern is a deliberately simple local@domain.tld shape check, not an
// RFC 5322 parser.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError carries the ordered list of human-readable validation
// errors for a rejected submission. The HTTP layer surfaces only the first.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return e.Errors[0]
}

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates and normalizes the request, then dispatches the admin
	// notification and the auto-reply as best-effort side effects. Returns a
	// *ValidationError when the input fails any rule. Submissions are never
	// persisted.
	Submit(ctx context.Context, req model.ContactRequest) (*model.ContactSubmission, error)
}
