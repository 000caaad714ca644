package paging

import (
	"errors"
	"testing"
	"time"
)

func TestNewOptionsDecodesBounds(t *testing.T) {
	cursor := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	o, err := NewOptions(Encode(cursor), "", 25)
	if err != nil {
		t.Fatal(err)
	}
	if o.Before == nil || !o.Before.Equal(cursor) {
		t.Fatalf("Before = %v, want %v", o.Before, cursor)
	}
	if o.After != nil {
		t.Fatalf("After = %v, want nil", o.After)
	}
	if o.Limit != 25 {
		t.Fatalf("Limit = %d, want 25", o.Limit)
	}
}

func TestNewOptionsInvalidCursor(t *testing.T) {
	if _, err := NewOptions("garbage", "", 0); !errors.Is(err, ErrInvalidCursor) {
		t.Fatalf("err = %v, want ErrInvalidCursor", err)
	}
	if _, err := NewOptions("", "garbage", 0); !errors.Is(err, ErrInvalidCursor) {
		t.Fatalf("err = %v, want ErrInvalidCursor", err)
	}
}

func TestLimitClamping(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{0, DefaultLimit},
		{-3, DefaultLimit},
		{1, 1},
		{100, 100},
		{101, MaxLimit},
		{10000, MaxLimit},
	}
	for _, tc := range cases {
		o, err := NewOptions("", "", tc.in)
		if err != nil {
			t.Fatal(err)
		}
		if got := o.EffectiveLimit(); got != tc.want {
			t.Fatalf("EffectiveLimit(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestEffectiveLimitNilOptions(t *testing.T) {
	var o *Options
	if got := o.EffectiveLimit(); got != DefaultLimit {
		t.Fatalf("nil EffectiveLimit = %d, want %d", got, DefaultLimit)
	}
}

func TestEffectiveLimitWithFallback(t *testing.T) {
	tests := []struct {
		opts     *Options
		fallback int
		want     int
	}{
		{nil, 3, 3},                         // fallback applies without options
		{&Options{}, 3, 3},                  // fallback applies without a limit
		{&Options{Limit: 7}, 3, 7},          // explicit limit wins
		{&Options{}, 0, DefaultLimit},       // no fallback means the default
		{&Options{}, -1, DefaultLimit},      // negative fallback means the default
		{&Options{}, MaxLimit + 1, MaxLimit}, // fallback is clamped too
	}
	for _, tt := range tests {
		if got := tt.opts.EffectiveLimitWith(tt.fallback); got != tt.want {
			t.Errorf("EffectiveLimitWith(%d) on %+v = %d, want %d", tt.fallback, tt.opts, got, tt.want)
		}
	}
}

func TestNewLinks(t *testing.T) {
	first := time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC)
	last := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	links := NewLinks(first, last)
	if links.Next != Encode(last) {
		t.Fatalf("Next = %q, want cursor of last item", links.Next)
	}
	if links.Previous != Encode(first) {
		t.Fatalf("Previous = %q, want cursor of first item", links.Previous)
	}

	if empty := NewLinks(time.Time{}, time.Time{}); empty.Next != "" || empty.Previous != "" {
		t.Fatalf("empty page links = %+v, want empty", empty)
	}
}
