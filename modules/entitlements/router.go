// Package entitlements exposes the entitlement core over HTTP for the
// clinic application: the tenant's feature/limit snapshot, usage with alert
// levels, and a feature-gate middleware. It is a thin consumer: every
// decision is made by the entitlement package.
package entitlements

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/clinicore/clinicore/pkg/entitlement"
	"github.com/clinicore/clinicore/pkg/plan"
	"github.com/clinicore/clinicore/pkg/tenant"
)

// Service is the slice of the entitlement evaluator this module consumes.
// *entitlement.Evaluator satisfies it.
type Service interface {
	SnapshotFor(ctx context.Context, tenantID uuid.UUID) (entitlement.Snapshot, error)
	AllUsage(ctx context.Context, tenantID uuid.UUID) (map[plan.LimitKey]entitlement.UsageInfo, error)
}

// RouterOptions configures the entitlements module.
type RouterOptions struct {
	// UpgradeURL is offered in blocked and limit-reached responses so the
	// UI can route the user to a plan upgrade. Optional.
	UpgradeURL string
}

// Router mounts the entitlements endpoints. All routes require an
// organization in the request context (tenant middleware upstream).
//
//	r.Mount("/entitlements", entitlements.Router(svc, entitlements.RouterOptions{
//	    UpgradeURL: "/settings/plan",
//	}))
func Router(svc Service, opts RouterOptions) chi.Router {
	h := &handlers{svc: svc, upgradeURL: opts.UpgradeURL}

	r := chi.NewRouter()
	r.Use(tenant.RequireOrganization(nil))
	r.Get("/", h.snapshot)
	r.Get("/usage", h.usage)
	return r
}

// RequireFeature blocks the wrapped routes when the organization's plan
// does not include the feature. The response names the feature and the
// current plan so the UI can render an explanatory upgrade prompt. A
// catalog outage is not an entitlement decision and yields 503, never 403.
func RequireFeature(svc Service, key plan.FeatureKey, label string, opts RouterOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			org, ok := tenant.FromContext(r.Context())
			if !ok || org == nil {
				respondError(w, http.StatusUnauthorized, "organization_required",
					"no organization in request context", nil)
				return
			}

			ctx := entitlement.WithPlanID(r.Context(), org.PlanID)
			snap, err := svc.SnapshotFor(ctx, org.ID)
			if !snapshotUsable(err) {
				respondError(w, http.StatusServiceUnavailable, "entitlements_unavailable",
					"entitlements are temporarily unavailable", nil)
				return
			}

			if !snap.Features.Has(key) {
				respondError(w, http.StatusForbidden, "feature_not_available",
					label+" is not available on your current plan", map[string]any{
						"feature":     key,
						"label":       label,
						"plan_id":     org.PlanID,
						"upgrade_url": opts.UpgradeURL,
					})
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
