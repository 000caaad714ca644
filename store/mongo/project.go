package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/xraph/faultline/project"
	"github.com/xraph/faultline/repository"
)

// CreateProject persists a project.
func (s *Store) CreateProject(ctx context.Context, p *project.Project) error {
	m := toProjectModel(p)

	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("faultline/mongo: create project: %w", err)
	}

	return nil
}

// GetProject returns a project by ID.
func (s *Store) GetProject(ctx context.Context, projectID string) (*project.Project, error) {
	var m projectModel

	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": projectID}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrNotFound
		}

		return nil, fmt.Errorf("faultline/mongo: get project: %w", err)
	}

	return fromProjectModel(&m), nil
}

// FirstProjectByOrganization returns the oldest project owned by the
// organization. Creation-time ties break by _id so the default project
// stays stable.
func (s *Store) FirstProjectByOrganization(ctx context.Context, orgID string) (*project.Project, error) {
	var m projectModel

	err := s.mdb.NewFind(&m).
		Filter(bson.M{"organization_id": orgID}).
		Sort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrNotFound
		}

		return nil, fmt.Errorf("faultline/mongo: first project by organization: %w", err)
	}

	return fromProjectModel(&m), nil
}
