package stack

import (
	"context"

	"github.com/xraph/faultline/repository"
)

// Store defines the persistence contract for stacks.
type Store interface {
	// CreateStack persists a stack.
	CreateStack(ctx context.Context, s *Stack) error

	// GetStack returns a stack by ID, or repository.ErrNotFound.
	GetStack(ctx context.Context, stackID string) (*Stack, error)

	// FindStacks returns stacks matching the query, sorted by creation
	// time in the requested direction.
	FindStacks(ctx context.Context, q repository.Query) ([]*Stack, error)

	// InsertStacks persists the batch atomically.
	InsertStacks(ctx context.Context, stacks []*Stack) error
}

// Backend adapts a Store to the generic repository backend contract.
func Backend(s Store) repository.Backend[*Stack] {
	return backend{s}
}

type backend struct {
	s Store
}

func (b backend) Find(ctx context.Context, q repository.Query) ([]*Stack, error) {
	return b.s.FindStacks(ctx, q)
}

func (b backend) Get(ctx context.Context, stackID string) (*Stack, error) {
	return b.s.GetStack(ctx, stackID)
}

func (b backend) Insert(ctx context.Context, stacks []*Stack) error {
	return b.s.InsertStacks(ctx, stacks)
}
