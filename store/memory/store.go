// Package memory provides an in-memory Store implementation for unit testing.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/xraph/faultline"
	"github.com/xraph/faultline/event"
	"github.com/xraph/faultline/organization"
	"github.com/xraph/faultline/project"
	"github.com/xraph/faultline/repository"
	"github.com/xraph/faultline/stack"
	faultstore "github.com/xraph/faultline/store"
)

// compile-time interface check.
var _ faultstore.Store = (*Store)(nil)

// Store is an in-memory implementation of store.Store for testing.
type Store struct {
	mu sync.RWMutex

	organizations map[string]*organization.Organization // keyed by ID
	projects      map[string]*project.Project           // keyed by ID
	stacks        map[string]*stack.Stack               // keyed by ID
	events        map[string]*event.Event               // keyed by ID

	closed bool
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		organizations: make(map[string]*organization.Organization),
		projects:      make(map[string]*project.Project),
		stacks:        make(map[string]*stack.Stack),
		events:        make(map[string]*event.Event),
	}
}

// ──────────────────────────────────────────────────
// Lifecycle
// ──────────────────────────────────────────────────

// Migrate is a no-op for the in-memory store.
func (s *Store) Migrate(_ context.Context) error { return nil }

// Ping is a no-op for the in-memory store.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return faultline.ErrStoreClosed
	}
	return nil
}

// Close marks the store as closed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// ──────────────────────────────────────────────────
// organization.Store
// ──────────────────────────────────────────────────

// CreateOrganization persists an organization.
func (s *Store) CreateOrganization(_ context.Context, org *organization.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.organizations[org.ID] = org
	return nil
}

// GetOrganization returns an organization by ID.
func (s *Store) GetOrganization(_ context.Context, orgID string) (*organization.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	org, ok := s.organizations[orgID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return org, nil
}

// ──────────────────────────────────────────────────
// project.Store
// ──────────────────────────────────────────────────

// CreateProject persists a project.
func (s *Store) CreateProject(_ context.Context, p *project.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.projects[p.ID] = p
	return nil
}

// GetProject returns a project by ID.
func (s *Store) GetProject(_ context.Context, projectID string) (*project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[projectID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

// FirstProjectByOrganization returns the oldest project owned by the
// organization, breaking creation-time ties by ID for determinism.
func (s *Store) FirstProjectByOrganization(_ context.Context, orgID string) (*project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var first *project.Project
	for _, p := range s.projects {
		if p.OrganizationID != orgID {
			continue
		}
		if first == nil || earlier(p, first) {
			first = p
		}
	}
	if first == nil {
		return nil, repository.ErrNotFound
	}
	return first, nil
}

func earlier(a, b *project.Project) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// ──────────────────────────────────────────────────
// stack.Store
// ──────────────────────────────────────────────────

// CreateStack persists a stack.
func (s *Store) CreateStack(_ context.Context, st *stack.Stack) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stacks[st.ID] = st
	return nil
}

// GetStack returns a stack by ID.
func (s *Store) GetStack(_ context.Context, stackID string) (*stack.Stack, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.stacks[stackID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return st, nil
}

// FindStacks returns stacks matching the query.
func (s *Store) FindStacks(_ context.Context, q repository.Query) ([]*stack.Stack, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return findDocs(s.stacks, q), nil
}

// InsertStacks persists the batch.
func (s *Store) InsertStacks(_ context.Context, stacks []*stack.Stack) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range stacks {
		s.stacks[st.ID] = st
	}
	return nil
}

// ──────────────────────────────────────────────────
// event.Store
// ──────────────────────────────────────────────────

// InsertEvents persists the batch. The single map write under one lock
// makes the batch all-or-nothing.
func (s *Store) InsertEvents(_ context.Context, events []*event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range events {
		s.events[e.ID] = e
	}
	return nil
}

// GetEvent returns an event by ID.
func (s *Store) GetEvent(_ context.Context, eventID string) (*event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[eventID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return e, nil
}

// FindEvents returns events matching the query.
func (s *Store) FindEvents(_ context.Context, q repository.Query) ([]*event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return findDocs(s.events, q), nil
}

// DeleteEventsByStackID removes every event owned by the stack.
func (s *Store) DeleteEventsByStackID(_ context.Context, stackID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for eventID, e := range s.events {
		if e.StackID == stackID {
			delete(s.events, eventID)
			removed++
		}
	}
	return removed, nil
}

// ──────────────────────────────────────────────────
// Query evaluation
// ──────────────────────────────────────────────────

// findDocs filters, sorts, and bounds a document map per the query.
// Date ties break by ID so ordering is deterministic under equal dates.
func findDocs[T repository.Document](all map[string]T, q repository.Query) []T {
	out := make([]T, 0)
	for _, d := range all {
		if q.Matches(d) {
			out = append(out, d)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].DocumentDate(), out[j].DocumentDate()
		if q.Ascending {
			if !di.Equal(dj) {
				return di.Before(dj)
			}
			return out[i].DocumentID() < out[j].DocumentID()
		}
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return out[i].DocumentID() > out[j].DocumentID()
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}
