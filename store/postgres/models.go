package postgres

import (
	"encoding/json"
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/faultline/event"
	"github.com/xraph/faultline/internal/entity"
	"github.com/xraph/faultline/organization"
	"github.com/xraph/faultline/project"
	"github.com/xraph/faultline/stack"
)

// --- Organization models ---

type organizationModel struct {
	grove.BaseModel `grove:"table:faultline_organizations"`

	ID        string    `grove:"id,pk"`
	Name      string    `grove:"name"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

func toOrganizationModel(org *organization.Organization) *organizationModel {
	return &organizationModel{
		ID:        org.ID,
		Name:      org.Name,
		CreatedAt: org.CreatedAt,
		UpdatedAt: org.UpdatedAt,
	}
}

func fromOrganizationModel(m *organizationModel) *organization.Organization {
	return &organization.Organization{
		Entity: entity.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:   m.ID,
		Name: m.Name,
	}
}

// --- Project models ---

type projectModel struct {
	grove.BaseModel `grove:"table:faultline_projects"`

	ID             string    `grove:"id,pk"`
	OrganizationID string    `grove:"organization_id"`
	Name           string    `grove:"name"`
	CreatedAt      time.Time `grove:"created_at"`
	UpdatedAt      time.Time `grove:"updated_at"`
}

func toProjectModel(p *project.Project) *projectModel {
	return &projectModel{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		Name:           p.Name,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func fromProjectModel(m *projectModel) *project.Project {
	return &project.Project{
		Entity: entity.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
	}
}

// --- Stack models ---

type stackModel struct {
	grove.BaseModel `grove:"table:faultline_stacks"`

	ID             string    `grove:"id,pk"`
	OrganizationID string    `grove:"organization_id"`
	ProjectID      string    `grove:"project_id"`
	Title          string    `grove:"title"`
	CreatedAt      time.Time `grove:"created_at"`
	UpdatedAt      time.Time `grove:"updated_at"`
}

func toStackModel(st *stack.Stack) *stackModel {
	return &stackModel{
		ID:             st.ID,
		OrganizationID: st.OrganizationID,
		ProjectID:      st.ProjectID,
		Title:          st.Title,
		CreatedAt:      st.CreatedAt,
		UpdatedAt:      st.UpdatedAt,
	}
}

func fromStackModel(m *stackModel) *stack.Stack {
	return &stack.Stack{
		Entity: entity.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		ProjectID:      m.ProjectID,
		Title:          m.Title,
	}
}

// --- Event models ---

type eventModel struct {
	grove.BaseModel `grove:"table:faultline_events"`

	ID             string          `grove:"id,pk"`
	OrganizationID string          `grove:"organization_id"`
	ProjectID      string          `grove:"project_id"`
	StackID        string          `grove:"stack_id"`
	Type           string          `grove:"type"`
	Source         string          `grove:"source"`
	Message        string          `grove:"message"`
	Date           time.Time       `grove:"date"`
	Data           json.RawMessage `grove:"data,type:jsonb"`
	CreatedAt      time.Time       `grove:"created_at"`
	UpdatedAt      time.Time       `grove:"updated_at"`
}

func toEventModel(evt *event.Event) *eventModel {
	return &eventModel{
		ID:             evt.ID,
		OrganizationID: evt.OrganizationID,
		ProjectID:      evt.ProjectID,
		StackID:        evt.StackID,
		Type:           evt.Type,
		Source:         evt.Source,
		Message:        evt.Message,
		Date:           evt.Date,
		Data:           evt.Data,
		CreatedAt:      evt.CreatedAt,
		UpdatedAt:      evt.UpdatedAt,
	}
}

func fromEventModel(m *eventModel) *event.Event {
	return &event.Event{
		Entity: entity.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		ProjectID:      m.ProjectID,
		StackID:        m.StackID,
		Type:           m.Type,
		Source:         m.Source,
		Message:        m.Message,
		Date:           m.Date,
		Data:           m.Data,
	}
}
