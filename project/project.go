// Package project defines the project level of the ownership hierarchy.
// A project belongs to exactly one organization and owns stacks and events.
package project

import (
	"context"

	"github.com/xraph/faultline/internal/entity"
)

// Project belongs to exactly one organization.
type Project struct {
	entity.Entity

	// ID is the unique identifier for this project.
	ID string `json:"id"`

	// OrganizationID is the owning organization.
	OrganizationID string `json:"organization_id"`

	// Name is the display name.
	Name string `json:"name"`
}

// OwningOrganizationID implements the organization ownership capability.
func (p *Project) OwningOrganizationID() string { return p.OrganizationID }

// Store defines the persistence contract for projects.
type Store interface {
	// CreateProject persists a project.
	CreateProject(ctx context.Context, p *Project) error

	// GetProject returns a project by ID.
	GetProject(ctx context.Context, projectID string) (*Project, error)

	// FirstProjectByOrganization returns the oldest project owned by the
	// given organization. Used to resolve the default project for
	// submissions that do not name one.
	FirstProjectByOrganization(ctx context.Context, orgID string) (*Project, error)
}
