package scope

import (
	"context"
	"testing"
)

func TestCanAccessOrganization(t *testing.T) {
	c := Caller{OrganizationIDs: []string{"org_1", "org_2"}}

	if !c.CanAccessOrganization("org_1") {
		t.Fatal("member organization not accessible")
	}
	if c.CanAccessOrganization("org_3") {
		t.Fatal("foreign organization accessible")
	}
	// The empty id is never accessible, even for an empty membership set.
	if c.CanAccessOrganization("") {
		t.Fatal("empty organization id accessible")
	}
}

func TestContextRoundTrip(t *testing.T) {
	c := Caller{UserID: "u1", OrganizationIDs: []string{"org_1"}}

	got, ok := From(With(context.Background(), c))
	if !ok {
		t.Fatal("caller not found in context")
	}
	if got.UserID != "u1" || len(got.OrganizationIDs) != 1 {
		t.Fatalf("caller = %+v", got)
	}
}

func TestFromWithoutCaller(t *testing.T) {
	got, ok := From(context.Background())
	if ok {
		t.Fatal("expected no caller")
	}
	if got.CanAccessOrganization("org_1") {
		t.Fatal("zero caller must grant nothing")
	}
}
