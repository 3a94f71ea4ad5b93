package repository

import (
	"context"
	"time"

	"github.com/studiofolio/backend/internal/model"
)

// CampaignRepository defines the persistence interface for newsletter
// campaigns.
type CampaignRepository interface {
	// Create inserts a new campaign in draft status and populates c.ID and
	// c.CreatedAt from the database.
	Create(ctx context.Context, c *model.Campaign) error

	// GetByID returns the campaign or ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.Campaign, error)

	// List returns all campaigns, newest first.
	List(ctx context.Context) ([]*model.Campaign, error)

	// ClaimSending atomically transitions the campaign to "sending" and
	// reports whether this caller won the claim. A campaign already in
	// "sending" or "sent" cannot be claimed, which closes the window where
	// two concurrent send requests both pass a read-then-write check.
	ClaimSending(ctx context.Context, id string) (bool, error)

	// MarkSent records the terminal status and the completion timestamp.
	MarkSent(ctx context.Context, id string, sentAt time.Time) error
}
