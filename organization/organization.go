// Package organization defines the top-level tenant of the ownership
// hierarchy. Organizations own projects; their lifecycle is driven by
// collaborators outside this module.
package organization

import (
	"context"

	"github.com/xraph/faultline/internal/entity"
)

// Organization is the top-level tenant owning projects.
type Organization struct {
	entity.Entity

	// ID is the unique identifier for this organization.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`
}

// Store defines the persistence contract for organizations.
type Store interface {
	// CreateOrganization persists an organization.
	CreateOrganization(ctx context.Context, org *Organization) error

	// GetOrganization returns an organization by ID.
	GetOrganization(ctx context.Context, orgID string) (*Organization, error)
}
