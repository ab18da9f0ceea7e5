package plan

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Plan describes a subscription plan for a clinic: which features it unlocks
// and the maxima for quota-bound resources. A limit key missing from Limits
// means the plan has no configured maximum for that resource (Unlimited).
type Plan struct {
	ID          string
	Name        string
	Description string
	Features    []FeatureKey
	Limits      map[LimitKey]int64
	Public      bool // available for self-service signup
}

// HasFeature reports whether the plan enables the given feature.
func (p Plan) HasFeature(key FeatureKey) bool {
	return slices.Contains(p.Features, key)
}

// Limit returns the configured maximum for key, or Unlimited when the plan
// does not configure one.
func (p Plan) Limit(key LimitKey) int64 {
	if max, ok := p.Limits[key]; ok {
		return max
	}
	return Unlimited
}

// Clone returns a deep copy of the plan.
func (p Plan) Clone() Plan {
	cp := p
	cp.Features = slices.Clone(p.Features)
	cp.Limits = maps.Clone(p.Limits)
	return cp
}

// Validate checks the plan configuration for values the evaluator cannot
// work with: unknown keys and negative maxima other than Unlimited.
func (p Plan) Validate() error {
	for _, f := range p.Features {
		if !ValidFeatureKey(f) {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan %s: unknown feature key %q", p.ID, f))
		}
	}
	for key, max := range p.Limits {
		if !ValidLimitKey(key) {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan %s: unknown limit key %q", p.ID, key))
		}
		if max < 0 && max != Unlimited {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan %s: negative limit %d for %q", p.ID, max, key))
		}
	}
	return nil
}

// ValidateAll validates every plan in the catalog.
func ValidateAll(plans map[string]Plan) error {
	for _, p := range plans {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}
