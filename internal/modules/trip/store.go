// README: Trip pool store backed by PostgreSQL.
package trip

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// ListOpen returns currently bookable trips (ACTIVE or PENDING). The matching
// selector recomputes distances on every run, so no distance is stored here.
func (s *Store) ListOpen(ctx context.Context) ([]*Trip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, departure_city, arrival_city,
		       departure_lat, departure_lng, arrival_lat, arrival_lng,
		       departure_time, seats_available, polyline, status
		FROM trips
		WHERE status IN ('ACTIVE', 'PENDING')
		ORDER BY departure_time`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Trip
	for rows.Next() {
		var t Trip
		var depLat, depLng, arrLat, arrLng sql.NullFloat64
		var polyline sql.NullString
		err := rows.Scan(
			&t.ID, &t.DepartureCity, &t.ArrivalCity,
			&depLat, &depLng, &arrLat, &arrLng,
			&t.DepartureTime, &t.SeatsAvailable, &polyline, &t.Status,
		)
		if err != nil {
			return nil, err
		}
		if depLat.Valid && depLng.Valid {
			t.Departure = &types.Point{Lat: depLat.Float64, Lng: depLng.Float64}
		}
		if arrLat.Valid && arrLng.Valid {
			t.Arrival = &types.Point{Lat: arrLat.Float64, Lng: arrLng.Float64}
		}
		if polyline.Valid {
			t.Polyline = polyline.String
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
