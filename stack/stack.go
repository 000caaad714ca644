// Package stack defines the grouping level of the ownership hierarchy.
// A stack collects related events and belongs to exactly one project and,
// transitively, one organization. Deduplication and grouping of events
// into stacks happens outside this module.
package stack

import (
	"time"

	"github.com/xraph/faultline/internal/entity"
)

// Stack is a grouping of related events.
type Stack struct {
	entity.Entity

	// ID is the unique identifier for this stack.
	ID string `json:"id"`

	// OrganizationID is the owning organization.
	OrganizationID string `json:"organization_id"`

	// ProjectID is the owning project.
	ProjectID string `json:"project_id"`

	// Title summarizes the grouped events.
	Title string `json:"title"`
}

// DocumentID implements the repository document contract.
func (s *Stack) DocumentID() string { return s.ID }

// DocumentDate orders stacks by creation time.
func (s *Stack) DocumentDate() time.Time { return s.CreatedAt }

// OwningOrganizationID implements the organization ownership capability.
func (s *Stack) OwningOrganizationID() string { return s.OrganizationID }

// OwningProjectID implements the project ownership capability.
func (s *Stack) OwningProjectID() string { return s.ProjectID }
