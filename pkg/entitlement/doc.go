// Package entitlement decides which plan features a clinic tenant has
// unlocked and whether quota-bound resource creation should be allowed.
//
// Two collaborating pieces:
//
//   - Resolver derives a total Snapshot (feature map + limit map) from the
//     plan catalog. Tenants with no resolvable plan get zero entitlements
//     (fail-closed); catalog outages surface as ErrBackendUnavailable so UI
//     can distinguish "not entitled" from "temporarily unknown".
//   - Evaluator compares resolved maxima against live usage counts. An
//     unconfigured maximum short-circuits counting; otherwise the decision
//     is strict less-than, and any counting failure denies.
//
// Basic usage:
//
//	resolver := entitlement.NewResolver(catalog,
//	    entitlement.WithSnapshotCache(entitlement.NewMemoryCache(), 30*time.Second),
//	)
//	eval := entitlement.NewEvaluator(resolver, counters, planIDs)
//
//	if err := eval.CanCreate(ctx, orgID, plan.LimitPatients); err != nil {
//	    // quota reached or decision unavailable: block the creation
//	}
//	if eval.HasFeature(ctx, orgID, plan.FeatureWhatsApp) {
//	    // WhatsApp integration unlocked
//	}
//
// The count-then-compare sequence is not transactional: two sessions racing
// the same quota can overshoot it by a small margin. That is an accepted
// tradeoff; strict enforcement belongs at the insert boundary (for example
// a database-side constraint), not here.
package entitlement
