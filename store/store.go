// Package store defines the composite Store interface for all Faultline
// persistence.
//
// Each level of the ownership hierarchy defines its own store interface,
// and the aggregate Store composes them all, so backends implement one
// interface and services depend only on the slice they need.
package store

import (
	"context"

	"github.com/xraph/faultline/event"
	"github.com/xraph/faultline/organization"
	"github.com/xraph/faultline/project"
	"github.com/xraph/faultline/stack"
)

// Store is the aggregate persistence interface.
type Store interface {
	organization.Store
	project.Store
	stack.Store
	event.Store

	// Migrate runs all schema migrations.
	Migrate(ctx context.Context) error

	// Ping checks database connectivity.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}
