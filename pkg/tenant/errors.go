package tenant

import "errors"

var (
	// ErrOrganizationNotFound is returned when no organization matches an identifier.
	ErrOrganizationNotFound = errors.New("organization not found")

	// ErrInvalidIdentifier is returned when the identifier format is invalid.
	ErrInvalidIdentifier = errors.New("invalid organization identifier")

	// ErrNoOrganizationInContext is returned when no organization is found in context.
	ErrNoOrganizationInContext = errors.New("no organization in context")

	// ErrInactiveOrganization is returned when trying to use a deactivated organization.
	ErrInactiveOrganization = errors.New("organization is inactive")
)
