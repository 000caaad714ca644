// Package queue defines the ingestion envelope and the broker contract the
// gateway produces into.
//
// Enqueue is at-least-once from the producer's perspective: the envelope is
// either fully handed to the broker or not delivered at all. Consumers that
// parse and index queued posts live outside this module.
package queue

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the broker cannot accept an envelope.
// The submission is retryable; nothing was partially delivered.
var ErrUnavailable = errors.New("queue: unavailable")

// ErrEmpty is returned by Dequeue when no envelope is pending.
var ErrEmpty = errors.New("queue: empty")

// Envelope is the normalized unit handed to the broker. Data is always
// gzip-compressed by contract; exactly one compression pass happens
// between client and queue.
type Envelope struct {
	ID         string `json:"id"`
	MediaType  string `json:"media_type"`
	CharSet    string `json:"char_set"`
	ProjectID  string `json:"project_id"`
	UserAgent  string `json:"user_agent,omitempty"`
	APIVersion int    `json:"api_version"`
	Data       []byte `json:"data"`
}

// Queue is the broker the ingestion gateway enqueues into.
type Queue interface {
	// Enqueue hands an envelope to the broker. It returns only after the
	// broker accepted the envelope; on error nothing was delivered.
	Enqueue(ctx context.Context, env *Envelope) error

	// Dequeue pops the oldest pending envelope, or ErrEmpty.
	Dequeue(ctx context.Context) (*Envelope, error)
}
