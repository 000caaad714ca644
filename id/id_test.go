package id

import (
	"strings"
	"testing"
)

func TestNewCarriesPrefix(t *testing.T) {
	cases := []struct {
		id     ID
		prefix Prefix
	}{
		{NewOrganizationID(), PrefixOrganization},
		{NewProjectID(), PrefixProject},
		{NewStackID(), PrefixStack},
		{NewEventID(), PrefixEvent},
		{NewPostID(), PrefixPost},
	}
	for _, tc := range cases {
		if tc.id.Prefix() != tc.prefix {
			t.Fatalf("prefix = %q, want %q", tc.id.Prefix(), tc.prefix)
		}
		if !strings.HasPrefix(tc.id.String(), string(tc.prefix)+"_") {
			t.Fatalf("id %q does not start with %q", tc.id.String(), tc.prefix)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	original := NewEventID()

	parsed, err := Parse(original.String())
	if err != nil {
		t.Fatal(err)
	}
	if parsed.String() != original.String() {
		t.Fatalf("round trip = %q, want %q", parsed.String(), original.String())
	}
}

func TestParseRejectsEmpty(t *testing.T) {
	if _, err := Parse(""); err == nil {
		t.Fatal("expected error for empty string")
	}
}

func TestParseWithPrefixMismatch(t *testing.T) {
	evtID := NewEventID()

	if _, err := ParseWithPrefix(evtID.String(), PrefixStack); err == nil {
		t.Fatal("expected prefix mismatch error")
	}
	if _, err := ParseWithPrefix(evtID.String(), PrefixEvent); err != nil {
		t.Fatal(err)
	}
}

func TestIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool, 100)
	for range 100 {
		s := NewPostID().String()
		if seen[s] {
			t.Fatalf("duplicate id %q", s)
		}
		seen[s] = true
	}
}
