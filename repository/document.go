package repository

import (
	"context"
	"time"
)

// Document is the minimal contract every repository entity satisfies.
type Document interface {
	// DocumentID returns the entity id.
	DocumentID() string

	// DocumentDate returns the timestamp used for ordering and cursor
	// pagination.
	DocumentDate() time.Time
}

// Ownership capabilities. A document type opts into a scope by
// implementing the matching interface; the repository composes checks
// from whichever capabilities the type carries instead of stacking
// scope-specific base types.
type (
	// OwnedByOrganization marks documents scoped to an organization.
	OwnedByOrganization interface {
		OwningOrganizationID() string
	}

	// OwnedByProject marks documents scoped to a project.
	OwnedByProject interface {
		OwningProjectID() string
	}

	// OwnedByStack marks documents scoped to a stack.
	OwnedByStack interface {
		OwningStackID() string
	}
)

// Query is the filter a Backend applies. Ownership filters narrow by the
// matching id field of the document; Before/After bound DocumentDate
// strictly. Backends sort by DocumentDate, descending unless Ascending
// is set, and return at most Limit rows when Limit is positive.
type Query struct {
	OrganizationIDs []string
	ProjectID       string
	StackID         string

	Before *time.Time
	After  *time.Time

	Ascending bool
	Limit     int
}

// Matches reports whether the document passes the ownership and date
// filters. Shared by in-memory backends.
func (q Query) Matches(d Document) bool {
	if len(q.OrganizationIDs) > 0 {
		owned, ok := d.(OwnedByOrganization)
		if !ok || !containsString(q.OrganizationIDs, owned.OwningOrganizationID()) {
			return false
		}
	}
	if q.ProjectID != "" {
		owned, ok := d.(OwnedByProject)
		if !ok || owned.OwningProjectID() != q.ProjectID {
			return false
		}
	}
	if q.StackID != "" {
		owned, ok := d.(OwnedByStack)
		if !ok || owned.OwningStackID() != q.StackID {
			return false
		}
	}
	if q.Before != nil && !d.DocumentDate().Before(*q.Before) {
		return false
	}
	if q.After != nil && !d.DocumentDate().After(*q.After) {
		return false
	}
	return true
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// Backend is the storage contract a Repository queries through.
type Backend[T Document] interface {
	// Find returns the documents matching q, sorted by DocumentDate in
	// the direction q requests, bounded by q.Limit.
	Find(ctx context.Context, q Query) ([]T, error)

	// Get returns a document by id, or ErrNotFound.
	Get(ctx context.Context, docID string) (T, error)

	// Insert persists the batch atomically: either every document lands
	// or none do.
	Insert(ctx context.Context, docs []T) error
}

// StackRemover is the optional bulk-delete capability for stack-owned
// backends.
type StackRemover interface {
	// DeleteByStackID removes every document owned by the stack and
	// returns the number removed. Removing from an empty scope is a
	// no-op.
	DeleteByStackID(ctx context.Context, stackID string) (int64, error)
}
