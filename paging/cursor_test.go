package paging

import (
	"testing"
	"time"
)

func TestEncodeFormat(t *testing.T) {
	in := time.Date(2026, 3, 1, 12, 30, 45, 123456700, time.UTC)

	got := Encode(in)
	want := "2026-03-01T12:30:45.1234567+00:00"
	if got != want {
		t.Fatalf("Encode = %q, want %q", got, want)
	}
}

func TestEncodeNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("X", -5*3600)
	in := time.Date(2026, 3, 1, 7, 0, 0, 0, loc)

	got := Encode(in)
	want := "2026-03-01T12:00:00.0000000+00:00"
	if got != want {
		t.Fatalf("Encode = %q, want %q", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	// 100ns granularity survives the trip exactly.
	in := time.Date(2026, 3, 1, 12, 30, 45, 123456700, time.UTC)

	out, err := Decode(Encode(in))
	if err != nil {
		t.Fatal(err)
	}
	if !out.Equal(in) {
		t.Fatalf("round trip: got %v, want %v", out, in)
	}
}

func TestEncodeTruncatesBelowHundredNanos(t *testing.T) {
	fine := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC)
	coarse := time.Date(2026, 3, 1, 12, 0, 0, 123456700, time.UTC)

	if Encode(fine) != Encode(coarse) {
		t.Fatalf("sub-100ns digits leaked into cursor: %q vs %q", Encode(fine), Encode(coarse))
	}
}

func TestEncodePreservesOrdering(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	times := []time.Time{
		base,
		base.Add(100 * time.Nanosecond),
		base.Add(time.Second),
		base.Add(time.Hour),
		base.AddDate(0, 1, 0),
	}

	for i := 1; i < len(times); i++ {
		if Encode(times[i-1]) >= Encode(times[i]) {
			t.Fatalf("cursor ordering broken between %v and %v", times[i-1], times[i])
		}
	}
}

func TestDecodeInvalid(t *testing.T) {
	for _, token := range []string{"", "not-a-cursor", "2026-03-01", "2026-03-01T12:00:00Z"} {
		if _, err := Decode(token); err != ErrInvalidCursor {
			t.Fatalf("Decode(%q) err = %v, want ErrInvalidCursor", token, err)
		}
	}
}
