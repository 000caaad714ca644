package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/xraph/faultline/organization"
	"github.com/xraph/faultline/repository"
)

// CreateOrganization persists an organization.
func (s *Store) CreateOrganization(ctx context.Context, org *organization.Organization) error {
	m := toOrganizationModel(org)

	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("faultline/mongo: create organization: %w", err)
	}

	return nil
}

// GetOrganization returns an organization by ID.
func (s *Store) GetOrganization(ctx context.Context, orgID string) (*organization.Organization, error) {
	var m organizationModel

	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": orgID}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrNotFound
		}

		return nil, fmt.Errorf("faultline/mongo: get organization: %w", err)
	}

	return fromOrganizationModel(&m), nil
}
