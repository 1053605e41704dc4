// README: Card store backed by PostgreSQL; replace-pending runs in one transaction.
package card

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// ReplacePending deletes every PENDING card and inserts the newly computed
// set, atomically relative to readers. APPLIED and DISMISSED rows are never
// touched. Returns the number of cards inserted.
func (s *Store) ReplacePending(ctx context.Context, cards []Card) (int, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM recommendation_cards WHERE status = 'PENDING'`); err != nil {
		return 0, err
	}

	for _, c := range cards {
		_, err := tx.Exec(ctx, `
			INSERT INTO recommendation_cards (id, type, priority, title, target_id, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			string(c.ID), string(c.Type), c.Priority, c.Title, string(c.TargetID), string(c.Status), c.CreatedAt,
		)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(cards), nil
}

func (s *Store) ListByStatus(ctx context.Context, status Status) ([]Card, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, type, priority, title, target_id, status, created_at
		FROM recommendation_cards
		WHERE status = $1
		ORDER BY priority, created_at`, string(status),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Card
	for rows.Next() {
		var c Card
		if err := rows.Scan(&c.ID, &c.Type, &c.Priority, &c.Title, &c.TargetID, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SetStatus moves a card to APPLIED or DISMISSED.
func (s *Store) SetStatus(ctx context.Context, id types.ID, status Status) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE recommendation_cards SET status = $1 WHERE id = $2`,
		string(status), string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a history card for good.
func (s *Store) Delete(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM recommendation_cards WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
