package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studiofolio/backend/internal/model"
)

// PgSubscriberRepository is the PostgreSQL implementation of SubscriberRepository.
type PgSubscriberRepository struct {
	pool *pgxpool.Pool
}

// NewPgSubscriberRepository creates a PgSubscriberRepository backed by the given pool.
func NewPgSubscriberRepository(pool *pgxpool.Pool) *PgSubscriberRepository {
	return &PgSubscriberRepository{pool: pool}
}

var _ SubscriberRepository = (*PgSubscriberRepository)(nil)

func (r *PgSubscriberRepository) Upsert(ctx context.Context, email, unsubscribeToken string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO subscribers (email, unsubscribe_token)
		 VALUES ($1, $2)
		 ON CONFLICT (email) DO UPDATE SET is_subscribed = TRUE`,
		email, unsubscribeToken,
	)
	return err
}

func (r *PgSubscriberRepository) UnsubscribeByToken(ctx context.Context, token string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE subscribers SET is_subscribed = FALSE WHERE unsubscribe_token = $1`,
		token,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgSubscriberRepository) List(ctx context.Context, limit int) ([]*model.Subscriber, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, email, unsubscribe_token, is_subscribed, created_at
		 FROM subscribers
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubscribers(rows)
}

func (r *PgSubscriberRepository) ListActive(ctx context.Context) ([]*model.Subscriber, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, email, unsubscribe_token, is_subscribed, created_at
		 FROM subscribers
		 WHERE is_subscribed = TRUE
		 ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubscribers(rows)
}

func scanSubscribers(rows pgx.Rows) ([]*model.Subscriber, error) {
	var subscribers []*model.Subscriber
	for rows.Next() {
		var s model.Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.UnsubscribeToken, &s.IsSubscribed, &s.CreatedAt); err != nil {
			return nil, err
		}
		subscribers = append(subscribers, &s)
	}
	return subscribers, rows.Err()
}
