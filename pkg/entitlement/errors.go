package entitlement

import "errors"

// Failure taxonomy for entitlement resolution and limit evaluation.
//
// ErrNoPlanAssigned and ErrPlanNotConfigured accompany a usable fail-closed
// snapshot: callers may ignore them and render "not entitled". The remaining
// errors mean the answer is temporarily unknown and must not be presented as
// a plan decision.
var (
	// ErrNoPlanAssigned: the tenant has no subscription plan ID at all.
	ErrNoPlanAssigned = errors.New("entitlement.errors.no_plan_assigned")

	// ErrPlanNotConfigured: the tenant's plan ID has no catalog row.
	ErrPlanNotConfigured = errors.New("entitlement.errors.plan_not_configured")

	// ErrBackendUnavailable: the catalog lookup itself failed.
	ErrBackendUnavailable = errors.New("entitlement.errors.backend_unavailable")

	// ErrCountingFailure: usage could not be counted; the evaluator denies.
	ErrCountingFailure = errors.New("entitlement.errors.counting_failure")

	// ErrLimitExceeded: the quota is reached and creation must be blocked.
	ErrLimitExceeded = errors.New("entitlement.errors.limit_exceeded")

	// ErrPlanIDNotInContext: the default plan resolver found no plan ID.
	ErrPlanIDNotInContext = errors.New("entitlement.errors.plan_id_not_in_context")
)
