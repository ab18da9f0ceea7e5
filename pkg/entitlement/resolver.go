package entitlement

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/clinicore/clinicore/pkg/plan"
)

// Resolver derives entitlement snapshots from the plan catalog.
//
// Resolution is fail-closed: a tenant with no plan ID or with a plan ID
// that has no catalog row gets zero entitlements. A catalog lookup failure
// is a distinct condition (ErrBackendUnavailable) and is never coerced into
// a false feature map, so callers can tell "blocked by plan" from
// "temporarily unknown".
type Resolver struct {
	catalog plan.Source
	cache   SnapshotCache
	ttl     time.Duration
	log     *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithSnapshotCache enables snapshot caching with the given TTL.
// The cache is explicit and injectable; invalidate after any mutation that
// affects plan configuration.
func WithSnapshotCache(cache SnapshotCache, ttl time.Duration) ResolverOption {
	return func(r *Resolver) {
		if cache != nil && ttl > 0 {
			r.cache = cache
			r.ttl = ttl
		}
	}
}

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(log *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// NewResolver returns a Resolver reading from the given catalog.
func NewResolver(catalog plan.Source, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		catalog: catalog,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Snapshot resolves the full entitlement snapshot for a plan ID.
//
// For an unset plan ID it returns the fail-closed empty snapshot together
// with ErrNoPlanAssigned; for a plan ID with no catalog row, the empty
// snapshot with ErrPlanNotConfigured. In both cases the snapshot is valid
// and usable. Only ErrBackendUnavailable leaves the snapshot unusable.
func (r *Resolver) Snapshot(ctx context.Context, planID string) (Snapshot, error) {
	if planID == "" {
		return EmptySnapshot(), ErrNoPlanAssigned
	}

	if r.cache != nil {
		if snap, ok := r.cache.Get(ctx, planID); ok {
			return snap, nil
		}
	}

	p, err := r.catalog.Get(ctx, planID)
	if err != nil {
		if errors.Is(err, plan.ErrPlanNotFound) {
			r.log.WarnContext(ctx, "plan has no catalog row, resolving zero entitlements",
				slog.String("plan_id", planID))
			return EmptySnapshot(), ErrPlanNotConfigured
		}
		return Snapshot{}, errors.Join(ErrBackendUnavailable, err)
	}

	snap := snapshotOf(planID, p)
	if r.cache != nil {
		r.cache.Set(ctx, planID, snap, r.ttl)
	}
	return snap, nil
}

// Features resolves the total feature map for a plan ID.
func (r *Resolver) Features(ctx context.Context, planID string) (FeatureMap, error) {
	snap, err := r.Snapshot(ctx, planID)
	return snap.Features, err
}

// Limits resolves the total limit map for a plan ID.
func (r *Resolver) Limits(ctx context.Context, planID string) (LimitMap, error) {
	snap, err := r.Snapshot(ctx, planID)
	return snap.Limits, err
}

// Invalidate drops any cached snapshot for the plan ID. Call after plan
// configuration changes.
func (r *Resolver) Invalidate(ctx context.Context, planID string) {
	if r.cache != nil {
		r.cache.Delete(ctx, planID)
	}
}

// usable reports whether a Snapshot error still carries a valid fail-closed
// snapshot (no plan, or plan without configuration).
func usable(err error) bool {
	return err == nil || errors.Is(err, ErrNoPlanAssigned) || errors.Is(err, ErrPlanNotConfigured)
}
