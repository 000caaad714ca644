package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/xraph/faultline/repository"
	"github.com/xraph/faultline/stack"
)

// CreateStack persists a stack.
func (s *Store) CreateStack(ctx context.Context, st *stack.Stack) error {
	m := toStackModel(st)

	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("faultline/mongo: create stack: %w", err)
	}

	return nil
}

// GetStack returns a stack by ID.
func (s *Store) GetStack(ctx context.Context, stackID string) (*stack.Stack, error) {
	var m stackModel

	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": stackID}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrNotFound
		}

		return nil, fmt.Errorf("faultline/mongo: get stack: %w", err)
	}

	return fromStackModel(&m), nil
}

// FindStacks returns stacks matching the query, sorted by creation date.
func (s *Store) FindStacks(ctx context.Context, q repository.Query) ([]*stack.Stack, error) {
	var models []stackModel

	find := s.mdb.NewFind(&models).
		Filter(queryFilter(q, "created_at")).
		Sort(querySort(q, "created_at"))

	if q.Limit > 0 {
		find = find.Limit(int64(q.Limit))
	}

	if err := find.Scan(ctx); err != nil {
		return nil, fmt.Errorf("faultline/mongo: find stacks: %w", err)
	}

	result := make([]*stack.Stack, 0, len(models))
	for i := range models {
		result = append(result, fromStackModel(&models[i]))
	}

	return result, nil
}

// InsertStacks persists the batch in a single ordered insert.
func (s *Store) InsertStacks(ctx context.Context, stacks []*stack.Stack) error {
	if len(stacks) == 0 {
		return nil
	}

	docs := make([]any, 0, len(stacks))
	for _, st := range stacks {
		docs = append(docs, toStackModel(st))
	}

	_, err := s.mdb.Collection(colStacks).InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("faultline/mongo: insert stacks: %w", err)
	}

	return nil
}
