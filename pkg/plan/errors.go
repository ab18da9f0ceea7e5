package plan

import "errors"

// Domain errors for plan catalog operations.
var (
	ErrPlanNotFound             = errors.New("plan.errors.plan_not_found")
	ErrInvalidPlanConfiguration = errors.New("plan.errors.invalid_plan_configuration")
	ErrFailedToLoadPlans        = errors.New("plan.errors.failed_to_load_plans")
)
