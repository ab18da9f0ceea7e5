package tenant

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithOrganization adds an organization to the context.
func WithOrganization(ctx context.Context, org *Organization) context.Context {
	return context.WithValue(ctx, contextKey{}, org)
}

// FromContext retrieves the organization from the context.
// Returns nil, false if none is found.
func FromContext(ctx context.Context) (*Organization, bool) {
	org, ok := ctx.Value(contextKey{}).(*Organization)
	return org, ok
}

// IDFromContext retrieves just the organization ID from the context.
// Returns the zero UUID and false if none is found.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	org, ok := FromContext(ctx)
	if !ok || org == nil {
		return uuid.UUID{}, false
	}
	return org.ID, true
}

// PlanIDFromContext retrieves the subscription plan ID of the organization
// in the context. An organization without a plan yields an empty string.
func PlanIDFromContext(ctx context.Context) (string, bool) {
	org, ok := FromContext(ctx)
	if !ok || org == nil {
		return "", false
	}
	return org.PlanID, true
}

// MustFromContext retrieves the organization from the context.
// Panics if none is found. Use only in handlers that cannot run without one.
func MustFromContext(ctx context.Context) *Organization {
	org, ok := FromContext(ctx)
	if !ok || org == nil {
		panic("tenant: no organization in context")
	}
	return org
}

// LoggerExtractor returns a logger context extractor that records the
// organization ID on every log line emitted within a tenant scope.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("organization_id", id.String()), true
		}
		return slog.Attr{}, false
	}
}
