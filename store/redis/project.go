package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/xraph/faultline/project"
	"github.com/xraph/faultline/repository"
)

// CreateProject persists a project and indexes it under its
// organization, scored by creation time.
func (s *Store) CreateProject(ctx context.Context, p *project.Project) error {
	if err := s.setEntity(ctx, entityKey(prefixProject, p.ID), p); err != nil {
		return fmt.Errorf("faultline/redis: create project: %w", err)
	}
	err := s.rdb.ZAdd(ctx, zProjectOrg+p.OrganizationID, goredis.Z{
		Score:  scoreFromTime(p.CreatedAt),
		Member: p.ID,
	}).Err()
	if err != nil {
		return fmt.Errorf("faultline/redis: create project index: %w", err)
	}
	return nil
}

// GetProject returns a project by ID.
func (s *Store) GetProject(ctx context.Context, projectID string) (*project.Project, error) {
	var p project.Project
	if err := s.getEntity(ctx, entityKey(prefixProject, projectID), &p); err != nil {
		if isNotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("faultline/redis: get project: %w", err)
	}
	return &p, nil
}

// FirstProjectByOrganization returns the oldest project owned by the
// organization. ZRANGE orders equal scores lexicographically by member,
// so creation-time ties break by ID like everywhere else.
func (s *Store) FirstProjectByOrganization(ctx context.Context, orgID string) (*project.Project, error) {
	ids, err := s.rdb.ZRange(ctx, zProjectOrg+orgID, 0, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("faultline/redis: first project by organization: %w", err)
	}
	if len(ids) == 0 {
		return nil, repository.ErrNotFound
	}
	return s.GetProject(ctx, ids[0])
}
