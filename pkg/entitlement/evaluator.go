package entitlement

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/pkg/plan"
	"github.com/clinicore/clinicore/pkg/usage"
)

// Evaluator answers "may this tenant create one more of X" by combining the
// resolved limit map with live usage counts.
//
// Every failure mode converges on a conservative decision: when usage
// cannot be counted or entitlements cannot be resolved, the action is
// denied. Wrongly blocking a legitimate action is preferred over exceeding
// a paid quota. There is no transaction around the count-then-compare
// sequence, so a concurrent creation from another session can overshoot a
// quota by a small margin; strict enforcement would need an atomic
// increment-and-check at the insert boundary.
type Evaluator struct {
	resolver *Resolver
	counters usage.CounterRegistry
	planIDs  PlanIDResolver
}

// NewEvaluator returns an Evaluator using the given resolver, counters and
// plan ID resolution strategy. A nil planIDs falls back to
// PlanIDContextResolver.
func NewEvaluator(resolver *Resolver, counters usage.CounterRegistry, planIDs PlanIDResolver) *Evaluator {
	if counters == nil {
		counters = usage.NewRegistry()
	}
	if planIDs == nil {
		planIDs = PlanIDContextResolver
	}
	return &Evaluator{
		resolver: resolver,
		counters: counters,
		planIDs:  planIDs,
	}
}

// resourceFor maps a limit key to the resource kind its counter counts.
func resourceFor(key plan.LimitKey) usage.Resource {
	switch key {
	case plan.LimitPatients:
		return usage.ResourcePatients
	case plan.LimitStaffUsers:
		return usage.ResourceStaffUsers
	case plan.LimitMonthlyAppointments:
		return usage.ResourceMonthlyAppointments
	case plan.LimitMonthlyMessages:
		return usage.ResourceMonthlyMessages
	default:
		return usage.Resource(key)
	}
}

// CheckLimit evaluates one limit key for a tenant at this instant.
//
// An unconfigured maximum short-circuits counting: the result is allowed
// with Current reported as zero, since no count is needed for the decision.
// Otherwise the decision is strict less-than: a plan with max=10 permits
// exactly 10 existing resources and denies the 11th. On a counting or
// resolution failure the result is denied and the error is returned so the
// caller can distinguish the failure from a genuine quota decision.
func (e *Evaluator) CheckLimit(ctx context.Context, tenantID uuid.UUID, key plan.LimitKey) (LimitCheckResult, error) {
	snap, err := e.snapshot(ctx, tenantID)
	if !usable(err) {
		return LimitCheckResult{Allowed: false, Current: 0, Max: plan.Unlimited}, err
	}

	max := snap.Limits.Get(key)
	if max == plan.Unlimited {
		return LimitCheckResult{Allowed: true, Current: 0, Max: plan.Unlimited}, nil
	}

	current, err := e.counters.Count(ctx, tenantID, resourceFor(key))
	if err != nil {
		return LimitCheckResult{Allowed: false, Current: 0, Max: max},
			errors.Join(ErrCountingFailure, err)
	}

	return LimitCheckResult{Allowed: current < max, Current: current, Max: max}, nil
}

// CanCreate reports whether the tenant may create one more resource counted
// under key. Returns ErrLimitExceeded when the quota is reached, or the
// underlying failure when the decision could not be made (also a denial).
func (e *Evaluator) CanCreate(ctx context.Context, tenantID uuid.UUID, key plan.LimitKey) error {
	res, err := e.CheckLimit(ctx, tenantID, key)
	if err != nil {
		return err
	}
	if !res.Allowed {
		return ErrLimitExceeded
	}
	return nil
}

// HasFeature reports whether the feature is unlocked for the tenant.
// Any resolution failure reads as "not entitled".
func (e *Evaluator) HasFeature(ctx context.Context, tenantID uuid.UUID, key plan.FeatureKey) bool {
	snap, err := e.snapshot(ctx, tenantID)
	if !usable(err) {
		return false
	}
	return snap.Features.Has(key)
}

// SnapshotFor resolves the tenant's plan ID and returns the full
// entitlement snapshot. The error contract matches Resolver.Snapshot.
func (e *Evaluator) SnapshotFor(ctx context.Context, tenantID uuid.UUID) (Snapshot, error) {
	return e.snapshot(ctx, tenantID)
}

// AllUsage returns current usage against every limit for dashboard views.
// Per-resource counter errors are tolerated and reported as zero usage;
// they never grant or deny anything here.
func (e *Evaluator) AllUsage(ctx context.Context, tenantID uuid.UUID) (map[plan.LimitKey]UsageInfo, error) {
	snap, err := e.snapshot(ctx, tenantID)
	if !usable(err) {
		return nil, err
	}

	result := make(map[plan.LimitKey]UsageInfo, len(snap.Limits))
	for key, max := range snap.Limits {
		info := UsageInfo{Current: 0, Max: max}
		if current, err := e.counters.Count(ctx, tenantID, resourceFor(key)); err == nil {
			info.Current = current
		}
		result[key] = info
	}
	return result, nil
}

// UsagePercent returns usage as a percentage (0-100, or -1 for unlimited).
func (e *Evaluator) UsagePercent(ctx context.Context, tenantID uuid.UUID, key plan.LimitKey) int {
	snap, err := e.snapshot(ctx, tenantID)
	if !usable(err) {
		return 0
	}

	max := snap.Limits.Get(key)
	if max == plan.Unlimited {
		return -1
	}
	if max == 0 {
		return 100
	}

	current, err := e.counters.Count(ctx, tenantID, resourceFor(key))
	if err != nil {
		return 0
	}
	return min(int((current*100)/max), 100)
}

func (e *Evaluator) snapshot(ctx context.Context, tenantID uuid.UUID) (Snapshot, error) {
	planID, err := e.planIDs(ctx, tenantID)
	if err != nil {
		if errors.Is(err, ErrNoPlanAssigned) {
			return EmptySnapshot(), ErrNoPlanAssigned
		}
		return Snapshot{}, errors.Join(ErrBackendUnavailable, err)
	}
	return e.resolver.Snapshot(ctx, planID)
}
