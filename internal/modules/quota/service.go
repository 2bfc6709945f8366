// README: Monthly AI request quota with lazy per-user initialisation.
package quota

import "context"

// Service orchestrates AI quota accounting. Every generation and chat revision
// call consumes one request from the caller's monthly allowance.
type Service struct {
	store *Store
}

// NewService creates a Service backed by the given Store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Consume deducts one request from the user's monthly allowance.
// If the user row does not exist yet it is initialised and the request is
// immediately consumed. Returns ErrQuotaExhausted when the month's allowance
// is spent.
func (s *Service) Consume(ctx context.Context, uid string) error {
	err := s.store.Consume(ctx, uid)
	if err != ErrQuotaExhausted {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureUser(ctx, uid); initErr != nil {
		return initErr
	}
	return s.store.Consume(ctx, uid)
}

// Remaining reports how many requests the user has left this month.
func (s *Service) Remaining(ctx context.Context, uid string) (int, error) {
	return s.store.Remaining(ctx, uid)
}
