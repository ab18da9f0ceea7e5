package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Organization is the tenant of the clinic platform: one clinic, one row,
// owner of every quota-bound resource. Only the fields needed for
// request-scoped decisions and UI display are carried here.
type Organization struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	PlanID    string    `json:"plan_id"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Provider loads organizations from a data source. Implementations decide
// which identifier formats they accept (UUID, slug).
type Provider interface {
	// GetByIdentifier retrieves an organization by any unique identifier.
	// Returns ErrOrganizationNotFound if no organization matches.
	GetByIdentifier(ctx context.Context, identifier string) (*Organization, error)
}
