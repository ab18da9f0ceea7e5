package entitlement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinicore/pkg/entitlement"
	"github.com/clinicore/clinicore/pkg/plan"
	"github.com/clinicore/clinicore/pkg/usage"
)

// staticCounter returns a fixed count and records whether it was invoked.
type staticCounter struct {
	count  int64
	err    error
	called bool
}

func (c *staticCounter) fn(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	c.called = true
	return c.count, c.err
}

func fixedPlan(planID string) entitlement.PlanIDResolver {
	return func(ctx context.Context, tenantID uuid.UUID) (string, error) {
		return planID, nil
	}
}

func newEvaluator(t *testing.T, planID string, counters usage.CounterRegistry) *entitlement.Evaluator {
	t.Helper()
	resolver := entitlement.NewResolver(testSource(t))
	return entitlement.NewEvaluator(resolver, counters, fixedPlan(planID))
}

func TestCheckLimitBoundaries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tenantID := uuid.New()

	// basico has max_pacientes = 5
	tests := []struct {
		name    string
		current int64
		allowed bool
	}{
		{"one below max", 4, true},
		{"at max", 5, false},
		{"already over quota", 6, false},
		{"zero usage", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			counters := usage.NewRegistry()
			counters.Register(usage.ResourcePatients, (&staticCounter{count: tt.current}).fn)

			eval := newEvaluator(t, "basico", counters)
			res, err := eval.CheckLimit(ctx, tenantID, plan.LimitPatients)
			require.NoError(t, err)

			assert.Equal(t, tt.allowed, res.Allowed)
			assert.Equal(t, tt.current, res.Current)
			assert.Equal(t, int64(5), res.Max)
		})
	}
}

func TestCheckLimitUnlimitedShortCircuits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tenantID := uuid.New()

	// pro has no max_usuarios configured
	counter := &staticCounter{count: 12345}
	counters := usage.NewRegistry()
	counters.Register(usage.ResourceStaffUsers, counter.fn)

	eval := newEvaluator(t, "pro", counters)
	res, err := eval.CheckLimit(ctx, tenantID, plan.LimitStaffUsers)
	require.NoError(t, err)

	assert.True(t, res.Allowed)
	assert.Equal(t, int64(0), res.Current)
	assert.Equal(t, plan.Unlimited, res.Max)
	assert.False(t, counter.called, "unlimited must not invoke the counter")
}

func TestCheckLimitCountingFailureDenies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("counter error", func(t *testing.T) {
		t.Parallel()

		counters := usage.NewRegistry()
		counters.Register(usage.ResourcePatients, (&staticCounter{err: errors.New("timeout")}).fn)

		eval := newEvaluator(t, "basico", counters)
		res, err := eval.CheckLimit(ctx, tenantID, plan.LimitPatients)

		require.Error(t, err)
		assert.ErrorIs(t, err, entitlement.ErrCountingFailure)
		assert.False(t, res.Allowed)
		assert.Equal(t, int64(0), res.Current)
		assert.Equal(t, int64(5), res.Max)
	})

	t.Run("no counter registered", func(t *testing.T) {
		t.Parallel()

		eval := newEvaluator(t, "basico", usage.NewRegistry())
		res, err := eval.CheckLimit(ctx, tenantID, plan.LimitPatients)

		require.Error(t, err)
		assert.ErrorIs(t, err, entitlement.ErrCountingFailure)
		assert.False(t, res.Allowed)
	})

	t.Run("unlimited wins over a broken counter", func(t *testing.T) {
		t.Parallel()

		counters := usage.NewRegistry()
		counters.Register(usage.ResourceStaffUsers, (&staticCounter{err: errors.New("down")}).fn)

		eval := newEvaluator(t, "pro", counters)
		res, err := eval.CheckLimit(ctx, tenantID, plan.LimitStaffUsers)

		require.NoError(t, err)
		assert.True(t, res.Allowed)
	})
}

func TestCheckLimitNoPlanAssigned(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tenantID := uuid.New()

	counter := &staticCounter{count: 99}
	counters := usage.NewRegistry()
	counters.Register(usage.ResourcePatients, counter.fn)

	eval := newEvaluator(t, "", counters)

	// Documented default: no plan means no configured maxima, so creation
	// is allowed while every feature resolves false.
	res, err := eval.CheckLimit(ctx, tenantID, plan.LimitPatients)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, plan.Unlimited, res.Max)
	assert.False(t, counter.called)

	assert.False(t, eval.HasFeature(ctx, tenantID, plan.FeatureOnlineBooking))
}

func TestCanCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("allowed below quota", func(t *testing.T) {
		t.Parallel()

		counters := usage.NewRegistry()
		counters.Register(usage.ResourcePatients, (&staticCounter{count: 3}).fn)

		eval := newEvaluator(t, "basico", counters)
		require.NoError(t, eval.CanCreate(ctx, tenantID, plan.LimitPatients))
	})

	t.Run("denied at quota", func(t *testing.T) {
		t.Parallel()

		counters := usage.NewRegistry()
		counters.Register(usage.ResourcePatients, (&staticCounter{count: 5}).fn)

		eval := newEvaluator(t, "basico", counters)
		err := eval.CanCreate(ctx, tenantID, plan.LimitPatients)
		assert.ErrorIs(t, err, entitlement.ErrLimitExceeded)
	})

	t.Run("denied on counting failure", func(t *testing.T) {
		t.Parallel()

		counters := usage.NewRegistry()
		counters.Register(usage.ResourcePatients, (&staticCounter{err: errors.New("down")}).fn)

		eval := newEvaluator(t, "basico", counters)
		err := eval.CanCreate(ctx, tenantID, plan.LimitPatients)
		require.Error(t, err)
		assert.ErrorIs(t, err, entitlement.ErrCountingFailure)
		assert.NotErrorIs(t, err, entitlement.ErrLimitExceeded)
	})
}

func TestHasFeature(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("feature enabled on plan", func(t *testing.T) {
		t.Parallel()

		eval := newEvaluator(t, "pro", nil)
		assert.True(t, eval.HasFeature(ctx, tenantID, plan.FeatureWhatsApp))
	})

	t.Run("feature unset in config resolves false", func(t *testing.T) {
		t.Parallel()

		eval := newEvaluator(t, "basico", nil)
		assert.False(t, eval.HasFeature(ctx, tenantID, plan.FeatureWhatsApp))
	})

	t.Run("backend failure reads as not entitled", func(t *testing.T) {
		t.Parallel()

		resolver := entitlement.NewResolver(&failingSource{err: errors.New("down")})
		eval := entitlement.NewEvaluator(resolver, nil, fixedPlan("basico"))
		assert.False(t, eval.HasFeature(ctx, tenantID, plan.FeatureWhatsApp))
	})
}

func TestSnapshotFor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("resolves through the plan resolver", func(t *testing.T) {
		t.Parallel()

		eval := newEvaluator(t, "pro", nil)
		snap, err := eval.SnapshotFor(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, "pro", snap.PlanID)
		assert.True(t, snap.Features.Has(plan.FeatureAIAssistant))
	})

	t.Run("plan resolver failure is backend unavailable", func(t *testing.T) {
		t.Parallel()

		resolver := entitlement.NewResolver(testSource(t))
		eval := entitlement.NewEvaluator(resolver, nil, func(ctx context.Context, id uuid.UUID) (string, error) {
			return "", errors.New("session store down")
		})

		_, err := eval.SnapshotFor(ctx, tenantID)
		require.Error(t, err)
		assert.ErrorIs(t, err, entitlement.ErrBackendUnavailable)
	})
}

func TestAllUsage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tenantID := uuid.New()

	counters := usage.NewRegistry()
	counters.Register(usage.ResourcePatients, (&staticCounter{count: 4}).fn)
	counters.Register(usage.ResourceStaffUsers, (&staticCounter{err: errors.New("down")}).fn)

	eval := newEvaluator(t, "basico", counters)
	all, err := eval.AllUsage(ctx, tenantID)
	require.NoError(t, err)

	require.Len(t, all, len(plan.LimitKeys()))
	assert.Equal(t, entitlement.UsageInfo{Current: 4, Max: 5}, all[plan.LimitPatients])
	// counter errors are tolerated on dashboards: zero usage, never a denial
	assert.Equal(t, entitlement.UsageInfo{Current: 0, Max: 3}, all[plan.LimitStaffUsers])
	assert.Equal(t, plan.Unlimited, all[plan.LimitMonthlyMessages].Max)
}

func TestUsagePercent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tenantID := uuid.New()

	tests := []struct {
		name    string
		current int64
		want    int
	}{
		{"empty", 0, 0},
		{"partial", 2, 40},
		{"full", 5, 100},
		{"over quota caps at 100", 7, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			counters := usage.NewRegistry()
			counters.Register(usage.ResourcePatients, (&staticCounter{count: tt.current}).fn)

			eval := newEvaluator(t, "basico", counters)
			assert.Equal(t, tt.want, eval.UsagePercent(ctx, tenantID, plan.LimitPatients))
		})
	}

	t.Run("unlimited reports -1", func(t *testing.T) {
		t.Parallel()

		eval := newEvaluator(t, "pro", usage.NewRegistry())
		assert.Equal(t, -1, eval.UsagePercent(ctx, tenantID, plan.LimitStaffUsers))
	})
}
