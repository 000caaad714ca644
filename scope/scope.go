// Package scope carries the authenticated caller through context.
//
// Every repository read and every ingestion submit resolves its
// authorization from the Caller attached to the request context. There is
// no ambient session state: a missing Caller means no organization is
// accessible.
package scope

import "context"

// Caller is the authenticated identity a request acts as.
type Caller struct {
	// UserID identifies the user or API client.
	UserID string

	// OrganizationIDs is the set of organizations the caller belongs to.
	OrganizationIDs []string

	// DefaultOrganizationID is the organization used when a submission
	// does not name a project explicitly.
	DefaultOrganizationID string
}

// CanAccessOrganization reports whether the caller belongs to the given
// organization. The empty id is never accessible.
func (c Caller) CanAccessOrganization(orgID string) bool {
	if orgID == "" {
		return false
	}
	for _, id := range c.OrganizationIDs {
		if id == orgID {
			return true
		}
	}
	return false
}

type callerKey struct{}

// With returns a context carrying the caller.
func With(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// From extracts the caller from the context. The second return value is
// false when no caller is attached, in which case the zero Caller (no
// accessible organizations) is returned.
func From(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	return c, ok
}
