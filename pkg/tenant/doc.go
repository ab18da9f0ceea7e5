// Package tenant resolves the clinic organization behind each request and
// makes it available through the context.
//
// Resolution is split in two: a Resolver extracts an identifier from the
// request (header, subdomain, path, or a composite of those) and a Provider
// loads the organization row for it. The middleware glues them together
// with a TTL cache so the provider is not queried on every request.
//
// Downstream code reads the organization with FromContext or IDFromContext;
// entitlement checks use PlanIDFromContext to resolve the tenant's
// subscription plan.
package tenant
