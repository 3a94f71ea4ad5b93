package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/studiofolio/backend/internal/model"
	"github.com/studiofolio/backend/internal/sanitize"
	"github.com/studiofolio/backend/pkg/mailer"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	mailer     mailer.Mailer
	adminEmail string
}

// NewContactService creates a ContactService that notifies adminEmail about
// each accepted submission.
func NewContactService(m mailer.Mailer, adminEmail string) ContactService {
	return &contactServiceImpl{mailer: m, adminEmail: adminEmail}
}

// ValidateContact applies all field rules, collects every violation in order,
// and runs the sanitization blocklist over the non-empty field values. On
// success it returns the normalized submission: fields trimmed, email
// lower-cased, company left empty when not provided.
func ValidateContact(req model.ContactRequest) (*model.ContactSubmission, []string) {
	var errs []string

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	enquiryType := strings.TrimSpace(req.EnquiryType)
	company := strings.TrimSpace(req.Company)
	message := strings.TrimSpace(req.Message)

	switch {
	case name == "":
		errs = append(errs, "Name is required.")
	case utf8.RuneCountInString(name) < minNameLength || utf8.RuneCountInString(name) > maxNameLength:
		errs = append(errs, "Name must be between 2 and 100 characters.")
	}

	switch {
	case email == "":
		errs = append(errs, "Email is required.")
	case !emailPattern.MatchString(email) || utf8.RuneCountInString(email) > maxEmailLength:
		errs = append(errs, "Please enter a valid email address.")
	}

	// The client picks from a closed set, but the server only requires a
	// non-empty value.
	if enquiryType == "" {
		errs = append(errs, "Please select an enquiry type.")
	}

	if company != "" && utf8.RuneCountInString(company) > maxCompanyLength {
		errs = append(errs, "Company must be 100 characters or fewer.")
	}

	switch {
	case message == "":
		errs = append(errs, "Message is required.")
	case utf8.RuneCountInString(message) < minMessageLength:
		errs = append(errs, "Message must be at least 10 characters.")
	case utf8.RuneCountInString(message) > maxMessageLength:
		errs = append(errs, "Message must be 5000 characters or fewer.")
	}

	// Blocklist check over every non-empty free-text value. The first hit
	// short-circuits; no further fields are checked.
	for _, v := range []string{name, email, enquiryType, company, message} {
		if v == "" {
			continue
		}
		if sanitize.ContainsMaliciousPatterns(v) {
			errs = append(errs, "Input contains disallowed patterns.")
			break
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &model.ContactSubmission{
		Name:             name,
		Email:            email,
		EnquiryType:      enquiryType,
		Company:          company,
		Message:          message,
		MeetingScheduled: req.MeetingScheduled,
		MeetingDateTime:  strings.TrimSpace(req.MeetingDateTime),
		CalendlyEventID:  strings.TrimSpace(req.CalendlyEventID),
	}, nil
}

// Submit validates the request and dispatches notifications. The dispatch is
// fire-and-forget relative to the caller: mail failures are logged, never
// surfaced, so the client sees success once validation passes.
func (s *contactServiceImpl) Submit(ctx context.Context, req model.ContactRequest) (*model.ContactSubmission, error) {
	sub, errs := ValidateContact(req)
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	go s.sendNotifications(context.WithoutCancel(ctx), sub)

	return sub, nil
}

func (s *contactServiceImpl) sendNotifications(ctx context.Context, sub *model.ContactSubmission) {
	if err := s.mailer.Send(ctx, s.adminEmail, "New enquiry: "+sub.EnquiryType, adminNotificationHTML(sub)); err != nil {
		slog.Error("admin notification dispatch failed", "from", sub.Email, "error", err)
	}

	subject := "Thanks for getting in touch"
	if sub.MeetingScheduled {
		subject = "Your meeting is booked"
	}
	if err := s.mailer.Send(ctx, sub.Email, subject, autoReplyHTML(sub)); err != nil {
		slog.Error("auto-reply dispatch failed", "to", sub.Email, "error", err)
	}
}

func adminNotificationHTML(sub *model.ContactSubmission) string {
	var b strings.Builder
	b.WriteString("<h2>New contact enquiry</h2>")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>", html.EscapeString(sub.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", html.EscapeString(sub.Email))
	fmt.Fprintf(&b, "<p><strong>Enquiry type:</strong> %s</p>", html.EscapeString(sub.EnquiryType))
	if sub.Company != "" {
		fmt.Fprintf(&b, "<p><strong>Company:</strong> %s</p>", html.EscapeString(sub.Company))
	}
	fmt.Fprintf(&b, "<p><strong>Message:</strong></p><p>%s</p>", html.EscapeString(sub.Message))
	if sub.MeetingScheduled {
		fmt.Fprintf(&b, "<p><strong>Meeting scheduled:</strong> %s</p>", html.EscapeString(sub.MeetingDateTime))
	}
	return b.String()
}

func autoReplyHTML(sub *model.ContactSubmission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", html.EscapeString(sub.Name))
	if sub.MeetingScheduled {
		b.WriteString("<p>Thanks for booking a meeting. You will receive a calendar invitation shortly")
		if sub.MeetingDateTime != "" {
			fmt.Fprintf(&b, " for %s", html.EscapeString(sub.MeetingDateTime))
		}
		b.WriteString(".</p>")
	} else {
		b.WriteString("<p>Thanks for your message. I usually reply within one business day.</p>")
	}
	b.WriteString("<p>Best regards,<br>Studiofolio</p>")
	return b.String()
}
