// Package paging implements opaque before/after cursors and paging options
// for date-ordered queries.
//
// A cursor is a timestamp rendered with seven fractional digits and an
// explicit UTC offset. Encoding always normalizes to UTC so that
// lexicographic and chronological ordering coincide, and decoding restores
// the exact instant: Decode(Encode(t)) equals t for any time with 100ns
// granularity.
package paging

import (
	"errors"
	"time"
)

// TimeFormat is the cursor timestamp layout: seven fractional digits
// (100ns resolution) with an explicit numeric offset. The format is part
// of the wire contract and must not change.
const TimeFormat = "2006-01-02T15:04:05.0000000-07:00"

// ErrInvalidCursor is returned when a cursor token cannot be decoded.
var ErrInvalidCursor = errors.New("paging: invalid cursor")

// Encode renders a timestamp as an opaque cursor token. The time is
// normalized to UTC and truncated to 100ns before formatting.
func Encode(t time.Time) string {
	return t.UTC().Truncate(100 * time.Nanosecond).Format(TimeFormat)
}

// Decode parses a cursor token back into the timestamp it encodes.
func Decode(token string) (time.Time, error) {
	t, err := time.Parse(TimeFormat, token)
	if err != nil {
		return time.Time{}, ErrInvalidCursor
	}
	return t, nil
}
