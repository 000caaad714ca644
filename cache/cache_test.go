package cache

import (
	"context"
	"testing"
	"time"
)

func ctx() context.Context { return context.Background() }

func TestKeyScheme(t *testing.T) {
	if got := Key(ScopeStack, "s1"); got != "stack:s1" {
		t.Fatalf("Key = %q, want %q", got, "stack:s1")
	}

	// Injective over (scope, id): same id under different scopes never
	// collides.
	keys := map[string]bool{}
	for _, scope := range []Scope{ScopeOrganization, ScopeProject, ScopeStack} {
		k := Key(scope, "x1")
		if keys[k] {
			t.Fatalf("key collision at %q", k)
		}
		keys[k] = true
	}
}

func TestMemoryGetSet(t *testing.T) {
	m := NewMemory()

	if _, ok, err := m.Get(ctx(), "stack:s1"); err != nil || ok {
		t.Fatalf("empty cache: ok = %v, err = %v", ok, err)
	}

	if err := m.Set(ctx(), "stack:s1", []byte("page"), 0); err != nil {
		t.Fatal(err)
	}
	val, ok, err := m.Get(ctx(), "stack:s1")
	if err != nil || !ok {
		t.Fatalf("ok = %v, err = %v", ok, err)
	}
	if string(val) != "page" {
		t.Fatalf("value = %q", val)
	}
}

func TestMemoryTTLExpiry(t *testing.T) {
	m := NewMemory()

	if err := m.Set(ctx(), "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, ok, _ := m.Get(ctx(), "k"); ok {
		t.Fatal("expired entry still served")
	}
	if m.Len() != 0 {
		t.Fatalf("expired entry not evicted: len = %d", m.Len())
	}
}

func TestMemoryInvalidate(t *testing.T) {
	m := NewMemory()

	if err := m.Set(ctx(), "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := m.Invalidate(ctx(), "k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := m.Get(ctx(), "k"); ok {
		t.Fatal("invalidated entry still served")
	}

	// Removing an absent key is a no-op.
	if err := m.Invalidate(ctx(), "absent"); err != nil {
		t.Fatal(err)
	}
}
