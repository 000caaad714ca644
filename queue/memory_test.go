package queue

import (
	"context"
	"errors"
	"testing"
)

func ctx() context.Context { return context.Background() }

func TestMemoryFIFO(t *testing.T) {
	q := NewMemory()

	first := &Envelope{ID: "post_1"}
	second := &Envelope{ID: "post_2"}
	if err := q.Enqueue(ctx(), first); err != nil {
		t.Fatal(err)
	}
	if err := q.Enqueue(ctx(), second); err != nil {
		t.Fatal(err)
	}

	env, err := q.Dequeue(ctx())
	if err != nil {
		t.Fatal(err)
	}
	if env.ID != "post_1" {
		t.Fatalf("dequeued %q, want post_1", env.ID)
	}
}

func TestMemoryDequeueEmpty(t *testing.T) {
	q := NewMemory()

	if _, err := q.Dequeue(ctx()); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
}

func TestMemoryCancelledEnqueueDeliversNothing(t *testing.T) {
	q := NewMemory()

	cancelled, cancel := context.WithCancel(ctx())
	cancel()

	if err := q.Enqueue(cancelled, &Envelope{ID: "post_1"}); err == nil {
		t.Fatal("expected error from cancelled enqueue")
	}
	if q.Len() != 0 {
		t.Fatalf("queue len = %d, want 0", q.Len())
	}
}

func TestMemoryFailNext(t *testing.T) {
	q := NewMemory()
	boom := errors.New("boom")
	q.FailNext(boom)

	if err := q.Enqueue(ctx(), &Envelope{ID: "post_1"}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want injected failure", err)
	}

	// Failure is one-shot.
	if err := q.Enqueue(ctx(), &Envelope{ID: "post_2"}); err != nil {
		t.Fatal(err)
	}
}
