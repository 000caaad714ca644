package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/xraph/faultline/repository"
	"github.com/xraph/faultline/stack"
)

// CreateStack persists a stack and indexes it by project and
// organization, scored by creation time.
func (s *Store) CreateStack(ctx context.Context, st *stack.Stack) error {
	if err := s.setEntity(ctx, entityKey(prefixStack, st.ID), st); err != nil {
		return fmt.Errorf("faultline/redis: create stack: %w", err)
	}

	score := scoreFromTime(st.CreatedAt)
	pipe := s.rdb.Pipeline()
	pipe.ZAdd(ctx, zStackProject+st.ProjectID, goredis.Z{Score: score, Member: st.ID})
	pipe.ZAdd(ctx, zStackOrg+st.OrganizationID, goredis.Z{Score: score, Member: st.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("faultline/redis: create stack indexes: %w", err)
	}
	return nil
}

// GetStack returns a stack by ID.
func (s *Store) GetStack(ctx context.Context, stackID string) (*stack.Stack, error) {
	var st stack.Stack
	if err := s.getEntity(ctx, entityKey(prefixStack, stackID), &st); err != nil {
		if isNotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("faultline/redis: get stack: %w", err)
	}
	return &st, nil
}

// FindStacks returns stacks matching the query.
func (s *Store) FindStacks(ctx context.Context, q repository.Query) ([]*stack.Stack, error) {
	ids, err := s.indexMembers(ctx, stackIndexKeys(q), q)
	if err != nil {
		return nil, fmt.Errorf("faultline/redis: find stacks: %w", err)
	}

	out := make([]*stack.Stack, 0, len(ids))
	for _, stackID := range ids {
		var st stack.Stack
		if err := s.getEntity(ctx, entityKey(prefixStack, stackID), &st); err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, fmt.Errorf("faultline/redis: find stacks: %w", err)
		}
		if q.Matches(&st) {
			out = append(out, &st)
		}
	}
	return sortAndLimit(out, q), nil
}

// InsertStacks persists the batch in one transactional pipeline.
func (s *Store) InsertStacks(ctx context.Context, stacks []*stack.Stack) error {
	if len(stacks) == 0 {
		return nil
	}

	pipe := s.rdb.TxPipeline()
	for _, st := range stacks {
		raw, err := marshalEntity(st)
		if err != nil {
			return err
		}
		score := scoreFromTime(st.CreatedAt)
		pipe.Set(ctx, entityKey(prefixStack, st.ID), raw, 0)
		pipe.ZAdd(ctx, zStackProject+st.ProjectID, goredis.Z{Score: score, Member: st.ID})
		pipe.ZAdd(ctx, zStackOrg+st.OrganizationID, goredis.Z{Score: score, Member: st.ID})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("faultline/redis: insert stacks: %w", err)
	}
	return nil
}

// stackIndexKeys picks the tightest index for the query.
func stackIndexKeys(q repository.Query) []string {
	if q.ProjectID != "" {
		return []string{zStackProject + q.ProjectID}
	}
	keys := make([]string, 0, len(q.OrganizationIDs))
	for _, orgID := range q.OrganizationIDs {
		keys = append(keys, zStackOrg+orgID)
	}
	return keys
}
