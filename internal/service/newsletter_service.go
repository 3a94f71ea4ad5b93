package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/studiofolio/backend/internal/model"
	"github.com/studiofolio/backend/internal/repository"
)

// ErrInvalidEmail is returned for subscribe requests with a malformed address.
var ErrInvalidEmail = errors.New("invalid email address")

// subscriberListCap bounds the admin subscriber listing.
const subscriberListCap = 500

// NewsletterService defines subscribe/unsubscribe and the admin listing.
type NewsletterService interface {
	// Subscribe adds the email to the list, or re-activates it when it was
	// unsubscribed. Idempotent from the caller's perspective.
	Subscribe(ctx context.Context, email string) error

	// Unsubscribe deactivates the subscriber holding the token. Returns
	// repository.ErrNotFound for an unknown token.
	Unsubscribe(ctx context.Context, token string) error

	// ListSubscribers returns subscribers newest first, capped at 500.
	ListSubscribers(ctx context.Context) ([]*model.Subscriber, error)
}

// newsletterServiceImpl is the production implementation of NewsletterService.
type newsletterServiceImpl struct {
	repo repository.SubscriberRepository
}

// NewNewsletterService creates a NewsletterService backed by the given repository.
func NewNewsletterService(repo repository.SubscriberRepository) NewsletterService {
	return &newsletterServiceImpl{repo: repo}
}

func (s *newsletterServiceImpl) Subscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) || utf8.RuneCountInString(email) > maxEmailLength {
		return ErrInvalidEmail
	}
	// A fresh token per insert; on conflict the existing row keeps its token.
	return s.repo.Upsert(ctx, email, uuid.NewString())
}

func (s *newsletterServiceImpl) Unsubscribe(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return repository.ErrNotFound
	}
	return s.repo.UnsubscribeByToken(ctx, token)
}

func (s *newsletterServiceImpl) ListSubscribers(ctx context.Context) ([]*model.Subscriber, error) {
	return s.repo.List(ctx, subscriberListCap)
}
