package entitlement

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// PlanIDResolver resolves the subscription plan ID for a tenant.
// An empty plan ID with a nil error means the tenant has no plan assigned.
type PlanIDResolver func(ctx context.Context, tenantID uuid.UUID) (string, error)

type planIDCtxKey struct{}

// WithPlanID stores the plan ID in the context for downstream access.
func WithPlanID(ctx context.Context, planID string) context.Context {
	return context.WithValue(ctx, planIDCtxKey{}, planID)
}

// PlanIDFromContext retrieves the plan ID from the context, if present.
func PlanIDFromContext(ctx context.Context) (string, bool) {
	planID, ok := ctx.Value(planIDCtxKey{}).(string)
	return planID, ok
}

// PlanIDContextResolver is the default resolver: reads the plan ID placed
// in the context by upstream middleware.
func PlanIDContextResolver(ctx context.Context, _ uuid.UUID) (string, error) {
	planID, ok := PlanIDFromContext(ctx)
	if !ok {
		return "", errors.Join(ErrNoPlanAssigned, ErrPlanIDNotInContext)
	}
	return planID, nil
}
