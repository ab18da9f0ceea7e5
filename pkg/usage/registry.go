package usage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CounterFunc returns the current usage of a resource for a tenant.
// Implementations must scope every query by tenant ID and should be fast:
// aggregate at the repository level or cache upstream.
type CounterFunc func(ctx context.Context, tenantID uuid.UUID) (int64, error)

// CounterRegistry maps a Resource to its CounterFunc.
// Not thread-safe: register all counters at startup only.
type CounterRegistry map[Resource]CounterFunc

// NewRegistry returns a new, empty CounterRegistry.
func NewRegistry() CounterRegistry {
	return make(CounterRegistry)
}

// Register sets or replaces the CounterFunc for the given resource.
// Panics if fn is nil.
func (r CounterRegistry) Register(res Resource, fn CounterFunc) {
	if fn == nil {
		panic(fmt.Sprintf("usage: CounterFunc for resource %q cannot be nil", res))
	}
	r[res] = fn
}

// Count invokes the registered counter for res. A missing counter or a
// counter error is reported distinctly from a zero count so callers can
// fail closed instead of treating the failure as "nothing used".
func (r CounterRegistry) Count(ctx context.Context, tenantID uuid.UUID, res Resource) (int64, error) {
	fn, ok := r[res]
	if !ok {
		return 0, errors.Join(ErrNoCounterRegistered, fmt.Errorf("resource %q", res))
	}
	current, err := fn(ctx, tenantID)
	if err != nil {
		return 0, errors.Join(ErrCountingFailed, err)
	}
	return current, nil
}
