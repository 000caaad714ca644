package faultline

import (
	"errors"

	"github.com/xraph/faultline/ingest"
	"github.com/xraph/faultline/paging"
	"github.com/xraph/faultline/queue"
	"github.com/xraph/faultline/repository"
)

// Sentinel errors returned by Faultline operations. Errors owned by a
// subsystem are re-exported here so callers can match them without
// importing every package.
var (
	// ErrNoStore is returned when a Faultline is created without a store.
	ErrNoStore = errors.New("faultline: store is required")

	// ErrNoQueue is returned when a Faultline is created without a queue.
	ErrNoQueue = errors.New("faultline: queue is required")

	// ErrStoreClosed is returned when a store operation is attempted after
	// the store is closed.
	ErrStoreClosed = errors.New("faultline: store is closed")

	// ErrNotFound is returned when a document or scope does not exist or
	// the caller may not access it; the two cases are indistinguishable.
	ErrNotFound = repository.ErrNotFound

	// ErrMissingStackID is returned when a write batch contains a
	// stack-owned document without its owning stack id.
	ErrMissingStackID = repository.ErrMissingStackID

	// ErrNoResolvableProject is returned when a submission has no explicit
	// or resolvable default project.
	ErrNoResolvableProject = ingest.ErrNoResolvableProject

	// ErrRateLimited is returned when a project exhausted its submission
	// rate limit; the submission was not queued.
	ErrRateLimited = ingest.ErrRateLimited

	// ErrQueueUnavailable is returned when the broker could not accept an
	// envelope; the submission is retryable.
	ErrQueueUnavailable = queue.ErrUnavailable

	// ErrInvalidCursor is returned when a paging cursor cannot be decoded.
	ErrInvalidCursor = paging.ErrInvalidCursor
)
