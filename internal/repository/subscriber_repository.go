package repository

import (
	"context"

	"github.com/studiofolio/backend/internal/model"
)

// SubscriberRepository defines the persistence interface for newsletter
// subscribers.
type SubscriberRepository interface {
	// Upsert inserts a new subscriber with the given unsubscribe token, or
	// re-activates an existing row for the same email (the existing token is
	// kept so previously sent unsubscribe links stay valid).
	Upsert(ctx context.Context, email, unsubscribeToken string) error

	// UnsubscribeByToken flips is_subscribed off for the matching token.
	// Returns ErrNotFound if no subscriber carries the token.
	UnsubscribeByToken(ctx context.Context, token string) error

	// List returns subscribers most recent first, at most limit rows.
	List(ctx context.Context, limit int) ([]*model.Subscriber, error)

	// ListActive returns all subscribers with is_subscribed = true, in
	// insertion order. The campaign send loop iterates this as returned.
	ListActive(ctx context.Context) ([]*model.Subscriber, error)
}
