package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studiofolio/backend/internal/model"
)

// PgCampaignRepository is the PostgreSQL implementation of CampaignRepository.
type PgCampaignRepository struct {
	pool *pgxpool.Pool
}

// NewPgCampaignRepository creates a PgCampaignRepository backed by the given pool.
func NewPgCampaignRepository(pool *pgxpool.Pool) *PgCampaignRepository {
	return &PgCampaignRepository{pool: pool}
}

var _ CampaignRepository = (*PgCampaignRepository)(nil)

func (r *PgCampaignRepository) Create(ctx context.Context, c *model.Campaign) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO newsletter_campaigns (slug, subject, html, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		c.Slug, c.Subject, c.HTML, model.CampaignStatusDraft,
	).Scan(&c.ID, &c.CreatedAt)
}

func (r *PgCampaignRepository) GetByID(ctx context.Context, id string) (*model.Campaign, error) {
	var c model.Campaign
	err := r.pool.QueryRow(ctx,
		`SELECT id, slug, subject, html, status, created_at, sent_at
		 FROM newsletter_campaigns
		 WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Slug, &c.Subject, &c.HTML, &c.Status, &c.CreatedAt, &c.SentAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgCampaignRepository) List(ctx context.Context) ([]*model.Campaign, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, slug, subject, html, status, created_at, sent_at
		 FROM newsletter_campaigns
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []*model.Campaign
	for rows.Next() {
		var c model.Campaign
		if err := rows.Scan(&c.ID, &c.Slug, &c.Subject, &c.HTML, &c.Status, &c.CreatedAt, &c.SentAt); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, &c)
	}
	return campaigns, rows.Err()
}

// ClaimSending transitions the campaign to sending with a single conditional
// UPDATE. Returns false when the row was already sending or sent.
func (r *PgCampaignRepository) ClaimSending(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE newsletter_campaigns
		 SET status = $2
		 WHERE id = $1 AND status <> $2 AND status <> $3`,
		id, model.CampaignStatusSending, model.CampaignStatusSent,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PgCampaignRepository) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE newsletter_campaigns SET status = $2, sent_at = $3 WHERE id = $1`,
		id, model.CampaignStatusSent, sentAt,
	)
	return err
}
