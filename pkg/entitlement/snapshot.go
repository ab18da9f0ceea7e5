package entitlement

import (
	"github.com/clinicore/clinicore/pkg/plan"
)

// FeatureMap is a total boolean map over the fixed feature key set.
// Every known key is present; absence in the underlying plan means false.
type FeatureMap map[plan.FeatureKey]bool

// Has reports whether the feature is enabled. Unknown keys are false.
func (m FeatureMap) Has(key plan.FeatureKey) bool {
	return m[key]
}

// LimitMap is a total map over the fixed limit key set. Every known key is
// present; a plan without a configured maximum carries plan.Unlimited.
type LimitMap map[plan.LimitKey]int64

// Get returns the maximum for key, or plan.Unlimited for unknown keys.
func (m LimitMap) Get(key plan.LimitKey) int64 {
	if max, ok := m[key]; ok {
		return max
	}
	return plan.Unlimited
}

// Snapshot is the derived, ephemeral view of a tenant's entitlements at one
// resolution instant. It is never persisted; callers re-resolve for
// freshness, optionally through a SnapshotCache.
type Snapshot struct {
	PlanID   string     `json:"plan_id"`
	Features FeatureMap `json:"features"`
	Limits   LimitMap   `json:"limits"`
}

// EmptySnapshot is the fail-closed default for tenants with no resolvable
// plan: every feature disabled, every limit unconfigured.
func EmptySnapshot() Snapshot {
	return snapshotOf("", plan.Plan{})
}

// snapshotOf derives a total snapshot from a plan row. Missing feature and
// limit fields default to false and Unlimited respectively, so the maps are
// never partial.
func snapshotOf(planID string, p plan.Plan) Snapshot {
	features := make(FeatureMap, len(plan.FeatureKeys()))
	for _, key := range plan.FeatureKeys() {
		features[key] = p.HasFeature(key)
	}

	limits := make(LimitMap, len(plan.LimitKeys()))
	for _, key := range plan.LimitKeys() {
		limits[key] = p.Limit(key)
	}

	return Snapshot{PlanID: planID, Features: features, Limits: limits}
}

// LimitCheckResult is the outcome of a single limit evaluation.
// Max equals plan.Unlimited when the plan configures no maximum.
type LimitCheckResult struct {
	Allowed bool  `json:"allowed"`
	Current int64 `json:"current"`
	Max     int64 `json:"max"`
}

// UsageInfo pairs current usage with the configured maximum for display.
type UsageInfo struct {
	Current int64 `json:"current"`
	Max     int64 `json:"max"`
}
