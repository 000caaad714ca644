package paging

import "time"

// Default and maximum page sizes.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Options bounds a date-ordered query window.
//
// Before selects rows strictly older than the cursor, After strictly
// newer. HasMore is set by the repository after the query ran and is true
// iff rows exist beyond the returned window in the query's sort order.
type Options struct {
	Before *time.Time
	After  *time.Time
	Limit  int

	// HasMore is populated by the query that consumed these options.
	HasMore bool
}

// NewOptions decodes the raw before/after tokens and clamps the limit.
// Empty tokens leave the corresponding bound open.
func NewOptions(before, after string, limit int) (*Options, error) {
	o := &Options{Limit: clampLimit(limit)}

	if before != "" {
		t, err := Decode(before)
		if err != nil {
			return nil, err
		}
		o.Before = &t
	}

	if after != "" {
		t, err := Decode(after)
		if err != nil {
			return nil, err
		}
		o.After = &t
	}

	return o, nil
}

// EffectiveLimit returns the clamped page size, applying the default when
// the options were constructed literally.
func (o *Options) EffectiveLimit() int {
	return o.EffectiveLimitWith(0)
}

// EffectiveLimitWith returns the clamped page size, falling back to the
// given default when the options carry no limit. A non-positive
// fallback means DefaultLimit.
func (o *Options) EffectiveLimitWith(fallback int) int {
	if o != nil && o.Limit > 0 {
		return clampLimit(o.Limit)
	}
	if fallback > 0 {
		return clampLimit(fallback)
	}
	return DefaultLimit
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// Links holds the next/previous cursor tokens for a returned page.
type Links struct {
	// Next pages further into the past: the before-cursor of the oldest
	// returned item.
	Next string `json:"next,omitempty"`

	// Previous pages back toward the present: the after-cursor of the
	// newest returned item.
	Previous string `json:"previous,omitempty"`
}

// NewLinks builds page links from the dates of the first and last items of
// a descending-ordered page. An empty page yields empty links.
func NewLinks(first, last time.Time) Links {
	if first.IsZero() && last.IsZero() {
		return Links{}
	}
	return Links{
		Next:     Encode(last),
		Previous: Encode(first),
	}
}
