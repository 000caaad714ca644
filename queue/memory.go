package queue

import (
	"context"
	"sync"
)

// compile-time interface check.
var _ Queue = (*Memory)(nil)

// Memory is an in-process Queue for tests.
type Memory struct {
	mu       sync.Mutex
	pending  []*Envelope
	failNext error
}

// NewMemory creates an empty in-memory queue.
func NewMemory() *Memory {
	return &Memory{}
}

// Enqueue appends the envelope, honoring context cancellation: a cancelled
// submission delivers nothing.
func (m *Memory) Enqueue(ctx context.Context, env *Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}

	m.pending = append(m.pending, env)
	return nil
}

// Dequeue pops the oldest pending envelope.
func (m *Memory) Dequeue(_ context.Context) (*Envelope, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.pending) == 0 {
		return nil, ErrEmpty
	}

	env := m.pending[0]
	m.pending = m.pending[1:]
	return env, nil
}

// Len returns the number of pending envelopes. Test helper.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// FailNext makes the next Enqueue return err. Test helper.
func (m *Memory) FailNext(err error) {
	m.mu.Lock()
	m.failNext = err
	m.mu.Unlock()
}
