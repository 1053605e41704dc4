package aiusage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles ai_usage persistence.
type Store struct {
	db    *pgxpool.Pool
	quota int
}

// NewStore returns a Store backed by the given connection pool. quota is the
// number of AI calls granted to each scope per month.
func NewStore(db *pgxpool.Pool, quota int) *Store {
	return &Store{db: db, quota: quota}
}

// UseCall atomically checks the monthly quota for scope and deducts one call.
// It resets the counter when last_reset_month is behind the current month.
// Returns ErrQuotaExhausted when 0 rows are updated (quota exhausted or scope absent).
func (s *Store) UseCall(ctx context.Context, scope string) error {
	now := time.Now().Format("2006-01")

	tag, err := s.db.Exec(ctx, `
		UPDATE ai_usage SET
			calls_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE calls_remaining - 1 END,
			last_reset_month = $1
		WHERE scope = $3 AND (last_reset_month < $1 OR calls_remaining > 0)
	`, now, s.quota, scope)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrQuotaExhausted
	}
	return nil
}

// EnsureScope inserts a new ai_usage row for scope with the full allowance.
// If the row already exists the insert is silently skipped (ON CONFLICT DO NOTHING).
func (s *Store) EnsureScope(ctx context.Context, scope string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ai_usage (scope, calls_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (scope) DO NOTHING
	`, scope, s.quota, time.Now().Format("2006-01"))
	return err
}
