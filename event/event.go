// Package event defines the telemetry record at the bottom of the
// ownership hierarchy. An event belongs to exactly one stack, project,
// and organization; its Date drives ordering and cursor pagination.
package event

import (
	"encoding/json"
	"time"

	"github.com/xraph/faultline/internal/entity"
)

// Event is a telemetry record (error, log, feature usage) submitted by a
// client and persisted by the ingestion pipeline's consumer.
type Event struct {
	entity.Entity

	// ID is the unique identifier for this event.
	ID string `json:"id"`

	// OrganizationID is the owning organization.
	OrganizationID string `json:"organization_id"`

	// ProjectID is the owning project.
	ProjectID string `json:"project_id"`

	// StackID is the owning stack. Required on every persisted event.
	StackID string `json:"stack_id"`

	// Type is the event kind (e.g. "error", "log").
	Type string `json:"type,omitempty"`

	// Source names the reporting component.
	Source string `json:"source,omitempty"`

	// Message is the human-readable summary.
	Message string `json:"message,omitempty"`

	// Date is the occurrence timestamp used for ordering and pagination.
	Date time.Time `json:"date"`

	// Data is the opaque payload; its schema is not interpreted here.
	Data json.RawMessage `json:"data,omitempty"`
}

// DocumentID implements the repository document contract.
func (e *Event) DocumentID() string { return e.ID }

// DocumentDate orders events by occurrence time.
func (e *Event) DocumentDate() time.Time { return e.Date }

// OwningOrganizationID implements the organization ownership capability.
func (e *Event) OwningOrganizationID() string { return e.OrganizationID }

// OwningProjectID implements the project ownership capability.
func (e *Event) OwningProjectID() string { return e.ProjectID }

// OwningStackID implements the stack ownership capability.
func (e *Event) OwningStackID() string { return e.StackID }
