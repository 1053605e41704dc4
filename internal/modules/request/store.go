// README: Trip request store backed by PostgreSQL.
package request

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const requestColumns = `
	id, origin_city, destination_city,
	origin_lat, origin_lng, destination_lat, destination_lng,
	desired_date, status, contact_info, ai_recommendation, ai_updated_at`

func (s *Store) Get(ctx context.Context, id types.ID) (*TripRequest, error) {
	row := s.db.QueryRow(ctx, `
		SELECT`+requestColumns+`
		FROM trip_requests
		WHERE id = $1`, string(id),
	)
	r, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return r, err
}

// ListOpen returns requests still awaiting a staff decision (NEW, REVIEWED),
// oldest first so the batch scan works through the backlog in intake order.
func (s *Store) ListOpen(ctx context.Context) ([]*TripRequest, error) {
	rows, err := s.db.Query(ctx, `
		SELECT`+requestColumns+`
		FROM trip_requests
		WHERE status IN ('NEW', 'REVIEWED')
		ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*TripRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SaveRecommendation upserts the raw recommendation text onto the request
// row. Raw text and timestamp are written in one statement so they are set
// together or not at all. Last write wins.
func (s *Store) SaveRecommendation(ctx context.Context, id types.ID, raw string, at time.Time) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE trip_requests
		SET ai_recommendation = $1, ai_updated_at = $2
		WHERE id = $3`,
		raw, at, string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus performs a compare-and-swap on the status column so two staff
// members racing on the same request cannot both win.
func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE trip_requests
		SET status = $1
		WHERE id = $2 AND status = $3`,
		string(to), string(id), string(from),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*TripRequest, error) {
	var r TripRequest
	var originLat, originLng, destLat, destLng sql.NullFloat64
	var desiredDate, aiUpdatedAt sql.NullTime
	var contact, aiRecommendation sql.NullString

	err := row.Scan(
		&r.ID, &r.OriginCity, &r.DestinationCity,
		&originLat, &originLng, &destLat, &destLng,
		&desiredDate, &r.Status, &contact, &aiRecommendation, &aiUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// A half-present coordinate pair is treated as absent.
	if originLat.Valid && originLng.Valid {
		r.Origin = &types.Point{Lat: originLat.Float64, Lng: originLng.Float64}
	}
	if destLat.Valid && destLng.Valid {
		r.Destination = &types.Point{Lat: destLat.Float64, Lng: destLng.Float64}
	}
	if desiredDate.Valid {
		t := desiredDate.Time
		r.DesiredDate = &t
	}
	if contact.Valid {
		r.ContactInfo = contact.String
	}
	if aiRecommendation.Valid && aiUpdatedAt.Valid {
		r.AIRecommendation = &aiRecommendation.String
		t := aiUpdatedAt.Time
		r.AIUpdatedAt = &t
	}
	return &r, nil
}
