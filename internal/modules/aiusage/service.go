package aiusage

import "context"

// Quota is what the matching pipeline needs from this module.
type Quota interface {
	UseCall(ctx context.Context, scope string) error
}

// Service orchestrates AI quota accounting.
type Service struct {
	store *Store
}

// NewService creates a Service backed by the given Store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// UseCall deducts one AI call from the scope's monthly allowance.
// If the scope row does not exist yet it is initialised and the call is
// immediately consumed.
func (s *Service) UseCall(ctx context.Context, scope string) error {
	err := s.store.UseCall(ctx, scope)
	if err != ErrQuotaExhausted {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureScope(ctx, scope); initErr != nil {
		return initErr
	}
	return s.store.UseCall(ctx, scope)
}
