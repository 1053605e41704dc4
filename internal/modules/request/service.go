// README: Trip request service; staff triage transitions over the store.
package request

import (
	"context"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/types"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, id types.ID) (*TripRequest, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListOpen(ctx context.Context) ([]*TripRequest, error) {
	return s.store.ListOpen(ctx)
}

// SetStatus applies a staff triage transition. The store CAS ensures a racing
// transition loses with ErrConflict rather than silently overwriting.
func (s *Service) SetStatus(ctx context.Context, id types.ID, to Status) error {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(r.Status, to) {
		return ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, id, r.Status, to)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	return nil
}
