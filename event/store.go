package event

import (
	"context"

	"github.com/xraph/faultline/repository"
)

// Store defines the persistence contract for events.
type Store interface {
	// InsertEvents persists the batch atomically: either every event
	// lands or none do.
	InsertEvents(ctx context.Context, events []*Event) error

	// GetEvent returns an event by ID, or repository.ErrNotFound.
	GetEvent(ctx context.Context, eventID string) (*Event, error)

	// FindEvents returns events matching the query, sorted by Date in
	// the requested direction.
	FindEvents(ctx context.Context, q repository.Query) ([]*Event, error)

	// DeleteEventsByStackID removes every event owned by the stack and
	// returns the number removed.
	DeleteEventsByStackID(ctx context.Context, stackID string) (int64, error)
}

// Backend adapts a Store to the generic repository backend contract.
// The returned backend also satisfies repository.StackRemover.
func Backend(s Store) repository.Backend[*Event] {
	return backend{s}
}

// Remover exposes the stack bulk-delete capability of a Store.
func Remover(s Store) repository.StackRemover {
	return backend{s}
}

type backend struct {
	s Store
}

func (b backend) Find(ctx context.Context, q repository.Query) ([]*Event, error) {
	return b.s.FindEvents(ctx, q)
}

func (b backend) Get(ctx context.Context, eventID string) (*Event, error) {
	return b.s.GetEvent(ctx, eventID)
}

func (b backend) Insert(ctx context.Context, events []*Event) error {
	return b.s.InsertEvents(ctx, events)
}

func (b backend) DeleteByStackID(ctx context.Context, stackID string) (int64, error) {
	return b.s.DeleteEventsByStackID(ctx, stackID)
}
