package plan

import (
	"context"
	"sync"
)

// Source loads the plan catalog. Implementations are read-only from the
// application's perspective: plans are maintained by administrative tooling.
type Source interface {
	// Load returns all known plans keyed by plan ID.
	Load(ctx context.Context) (map[string]Plan, error)

	// Get returns a single plan by ID. Returns ErrPlanNotFound when the
	// catalog has no plan with the given ID.
	Get(ctx context.Context, planID string) (Plan, error)
}

// inMemSource serves a static catalog from memory. Used in tests and for
// applications that compile their plan catalog into the binary.
type inMemSource struct {
	mu    sync.RWMutex
	plans map[string]Plan
}

// NewInMemSource returns an in-memory Source holding a deep copy of plans.
// The catalog is validated up front: a plan with an unknown key or a
// negative maximum is rejected at construction, not at first resolution.
func NewInMemSource(plans map[string]Plan) (Source, error) {
	if err := ValidateAll(plans); err != nil {
		return nil, err
	}

	cp := make(map[string]Plan, len(plans))
	for id, p := range plans {
		cp[id] = p.Clone()
	}
	return &inMemSource{plans: cp}, nil
}

func (s *inMemSource) Load(ctx context.Context) (map[string]Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := make(map[string]Plan, len(s.plans))
	for id, p := range s.plans {
		cp[id] = p.Clone()
	}
	return cp, nil
}

func (s *inMemSource) Get(ctx context.Context, planID string) (Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.plans[planID]
	if !ok {
		return Plan{}, ErrPlanNotFound
	}
	return p.Clone(), nil
}
