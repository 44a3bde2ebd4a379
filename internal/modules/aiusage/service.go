package aiusage

import (
	"context"
	"errors"
	"fmt"
)

// Service fans a usage record out to the configured sinks.
// Either sink may be nil; with both nil Record is a no-op.
type Service struct {
	store   *Store
	counter *Counter
}

// NewService creates a Service backed by the given sinks.
func NewService(store *Store, counter *Counter) *Service {
	return &Service{store: store, counter: counter}
}

// Enabled reports whether any sink is configured.
func (s *Service) Enabled() bool {
	return s != nil && (s.store != nil || s.counter != nil)
}

// Record writes rec to every sink, attempting all of them even if one fails.
func (s *Service) Record(ctx context.Context, rec Record) error {
	if !s.Enabled() {
		return nil
	}
	var errs []error
	if s.store != nil {
		if err := s.store.Insert(ctx, rec); err != nil {
			errs = append(errs, fmt.Errorf("usage ledger: %w", err))
		}
	}
	if s.counter != nil {
		if err := s.counter.Add(ctx, rec); err != nil {
			errs = append(errs, fmt.Errorf("usage totals: %w", err))
		}
	}
	return errors.Join(errs...)
}
