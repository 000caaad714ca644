package redis

import (
	"context"
	"fmt"

	"github.com/xraph/faultline/organization"
	"github.com/xraph/faultline/repository"
)

// CreateOrganization persists an organization.
func (s *Store) CreateOrganization(ctx context.Context, org *organization.Organization) error {
	if err := s.setEntity(ctx, entityKey(prefixOrganization, org.ID), org); err != nil {
		return fmt.Errorf("faultline/redis: create organization: %w", err)
	}
	return nil
}

// GetOrganization returns an organization by ID.
func (s *Store) GetOrganization(ctx context.Context, orgID string) (*organization.Organization, error) {
	var org organization.Organization
	if err := s.getEntity(ctx, entityKey(prefixOrganization, orgID), &org); err != nil {
		if isNotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("faultline/redis: get organization: %w", err)
	}
	return &org, nil
}
