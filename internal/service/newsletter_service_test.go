package service

import (
	"context"
	"errors"
	"testing"

	"github.com/studiofolio/backend/internal/model"
	"github.com/studiofolio/backend/internal/repository"
)

func TestNewsletterService_Subscribe_InvalidEmail(t *testing.T) {
	upsertCalled := false
	repo := &mockSubscriberRepository{
		upsertFunc: func(ctx context.Context, email, token string) error {
			upsertCalled = true
			return nil
		},
	}
	svc := NewNewsletterService(repo)

	for _, email := range []string{"", "plain", "a@b", "a b@c.com"} {
		if err := svc.Subscribe(context.Background(), email); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("email %q: expected ErrInvalidEmail, got %v", email, err)
		}
	}
	if upsertCalled {
		t.Error("repository must not be touched for invalid emails")
	}
}

func TestNewsletterService_Subscribe_NormalizesAndGeneratesToken(t *testing.T) {
	var gotEmail, gotToken string
	repo := &mockSubscriberRepository{
		upsertFunc: func(ctx context.Context, email, token string) error {
			gotEmail, gotToken = email, token
			return nil
		},
	}
	svc := NewNewsletterService(repo)

	if err := svc.Subscribe(context.Background(), "  Reader@Example.COM "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotEmail != "reader@example.com" {
		t.Errorf("expected normalized email, got %q", gotEmail)
	}
	if len(gotToken) != 36 {
		t.Errorf("expected a UUID unsubscribe token, got %q", gotToken)
	}
}

func TestNewsletterService_Subscribe_RepositoryError(t *testing.T) {
	repo := &mockSubscriberRepository{
		upsertFunc: func(ctx context.Context, email, token string) error {
			return errors.New("db write failed")
		},
	}
	svc := NewNewsletterService(repo)

	if err := svc.Subscribe(context.Background(), "reader@example.com"); err == nil {
		t.Error("expected repository error to propagate")
	}
}

func TestNewsletterService_Unsubscribe_EmptyToken(t *testing.T) {
	called := false
	repo := &mockSubscriberRepository{
		unsubscribeFunc: func(ctx context.Context, token string) error {
			called = true
			return nil
		},
	}
	svc := NewNewsletterService(repo)

	if err := svc.Unsubscribe(context.Background(), "   "); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound for blank token, got %v", err)
	}
	if called {
		t.Error("repository must not be queried for a blank token")
	}
}

func TestNewsletterService_Unsubscribe_UnknownToken(t *testing.T) {
	repo := &mockSubscriberRepository{
		unsubscribeFunc: func(ctx context.Context, token string) error {
			return repository.ErrNotFound
		},
	}
	svc := NewNewsletterService(repo)

	if err := svc.Unsubscribe(context.Background(), "nope"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestNewsletterService_ListSubscribers_CapsAt500(t *testing.T) {
	var gotLimit int
	repo := &mockSubscriberRepository{
		listFunc: func(ctx context.Context, limit int) ([]*model.Subscriber, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	svc := NewNewsletterService(repo)

	if _, err := svc.ListSubscribers(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 500 {
		t.Errorf("expected limit 500, got %d", gotLimit)
	}
}
