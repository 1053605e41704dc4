// README: Driver store; feeds the data-quality section of the global scan.
package driver

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/types"
)

// Driver is the slice of the drivers table the scan cares about.
type Driver struct {
	ID       types.ID
	FullName string
	Verified bool
}

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// ListUnverified returns drivers whose documents have not been validated yet,
// bounded to limit. Oldest accounts first so long-pending validations surface.
func (s *Store) ListUnverified(ctx context.Context, limit int) ([]Driver, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, full_name, verified
		FROM drivers
		WHERE verified = FALSE
		ORDER BY created_at
		LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Driver
	for rows.Next() {
		var d Driver
		if err := rows.Scan(&d.ID, &d.FullName, &d.Verified); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
