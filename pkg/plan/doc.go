// Package plan defines the subscription plan catalog for clinic tenants.
//
// A Plan couples a closed set of feature flags (FeatureKey) with a closed
// set of quota maxima (LimitKey). Both key sets are fixed enumerations so
// derived feature and limit maps are always total: a key that a plan does
// not mention defaults to "feature disabled" and "no configured maximum"
// respectively.
//
// Catalogs are served through the Source interface. Three implementations
// are provided: an in-memory source for tests and compiled-in catalogs, a
// YAML file source, and a Postgres source reading the planos table.
//
// Basic usage:
//
//	source, err := plan.NewYAMLSource("plans.yaml")
//	if err != nil {
//	    return err
//	}
//	p, err := source.Get(ctx, "profissional")
//	if p.HasFeature(plan.FeatureWhatsApp) {
//	    // WhatsApp integration unlocked
//	}
//	if p.Limit(plan.LimitPatients) == plan.Unlimited {
//	    // no patient cap
//	}
package plan
