package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xraph/faultline"
	"github.com/xraph/faultline/event"
	"github.com/xraph/faultline/internal/entity"
	"github.com/xraph/faultline/project"
	"github.com/xraph/faultline/repository"
)

func ctx() context.Context { return context.Background() }

func seedEvent(t *testing.T, s *Store, id, stackID string, date time.Time) *event.Event {
	t.Helper()
	e := &event.Event{
		Entity:         entity.New(),
		ID:             id,
		OrganizationID: "org_1",
		ProjectID:      "proj_1",
		StackID:        stackID,
		Date:           date,
	}
	if err := s.InsertEvents(ctx(), []*event.Event{e}); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestFindEventsDescendingByDefault(t *testing.T) {
	s := New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedEvent(t, s, "evt_a", "stack_1", base)
	seedEvent(t, s, "evt_b", "stack_1", base.Add(time.Minute))
	seedEvent(t, s, "evt_c", "stack_1", base.Add(2*time.Minute))

	got, err := s.FindEvents(ctx(), repository.Query{StackID: "stack_1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0].ID != "evt_c" || got[2].ID != "evt_a" {
		t.Fatalf("order = %v", eventIDs(got))
	}
}

func TestFindEventsTieBreakByID(t *testing.T) {
	s := New()
	date := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedEvent(t, s, "evt_b", "stack_1", date)
	seedEvent(t, s, "evt_a", "stack_1", date)
	seedEvent(t, s, "evt_c", "stack_1", date)

	desc, err := s.FindEvents(ctx(), repository.Query{StackID: "stack_1"})
	if err != nil {
		t.Fatal(err)
	}
	if desc[0].ID != "evt_c" || desc[1].ID != "evt_b" || desc[2].ID != "evt_a" {
		t.Fatalf("descending tie order = %v", eventIDs(desc))
	}

	asc, err := s.FindEvents(ctx(), repository.Query{StackID: "stack_1", Ascending: true})
	if err != nil {
		t.Fatal(err)
	}
	if asc[0].ID != "evt_a" || asc[2].ID != "evt_c" {
		t.Fatalf("ascending tie order = %v", eventIDs(asc))
	}
}

func TestFindEventsStrictDateBounds(t *testing.T) {
	s := New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedEvent(t, s, "evt_a", "stack_1", base)
	seedEvent(t, s, "evt_b", "stack_1", base.Add(time.Minute))
	seedEvent(t, s, "evt_c", "stack_1", base.Add(2*time.Minute))

	bound := base.Add(time.Minute)
	got, err := s.FindEvents(ctx(), repository.Query{StackID: "stack_1", Before: &bound})
	if err != nil {
		t.Fatal(err)
	}
	// Strictly before: the boundary event is excluded.
	if len(got) != 1 || got[0].ID != "evt_a" {
		t.Fatalf("before window = %v", eventIDs(got))
	}

	got, err = s.FindEvents(ctx(), repository.Query{StackID: "stack_1", After: &bound})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "evt_c" {
		t.Fatalf("after window = %v", eventIDs(got))
	}
}

func TestFindEventsLimit(t *testing.T) {
	s := New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"evt_a", "evt_b", "evt_c"} {
		seedEvent(t, s, id, "stack_1", base.Add(time.Duration(i)*time.Minute))
	}

	got, err := s.FindEvents(ctx(), repository.Query{StackID: "stack_1", Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("limit ignored: %d rows", len(got))
	}
}

func TestDeleteEventsByStackID(t *testing.T) {
	s := New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedEvent(t, s, "evt_a", "stack_1", base)
	seedEvent(t, s, "evt_b", "stack_1", base)
	seedEvent(t, s, "evt_c", "stack_2", base)

	removed, err := s.DeleteEventsByStackID(ctx(), "stack_1")
	if err != nil {
		t.Fatal(err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}

	// Other stacks untouched; repeat removes nothing.
	if _, err := s.GetEvent(ctx(), "evt_c"); err != nil {
		t.Fatal(err)
	}
	removed, err = s.DeleteEventsByStackID(ctx(), "stack_1")
	if err != nil {
		t.Fatal(err)
	}
	if removed != 0 {
		t.Fatalf("second removal removed %d", removed)
	}
}

func TestFirstProjectByOrganization(t *testing.T) {
	s := New()
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	older := &project.Project{ID: "proj_b", OrganizationID: "org_1"}
	older.CreatedAt = created
	newer := &project.Project{ID: "proj_c", OrganizationID: "org_1"}
	newer.CreatedAt = created.Add(time.Hour)
	tied := &project.Project{ID: "proj_a", OrganizationID: "org_1"}
	tied.CreatedAt = created

	for _, p := range []*project.Project{newer, older, tied} {
		if err := s.CreateProject(ctx(), p); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.FirstProjectByOrganization(ctx(), "org_1")
	if err != nil {
		t.Fatal(err)
	}
	// Oldest creation time wins; ties break by id.
	if got.ID != "proj_a" {
		t.Fatalf("first project = %q, want proj_a", got.ID)
	}

	if _, err := s.FirstProjectByOrganization(ctx(), "org_none"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPingAfterClose(t *testing.T) {
	s := New()

	if err := s.Ping(ctx()); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Ping(ctx()); !errors.Is(err, faultline.ErrStoreClosed) {
		t.Fatalf("err = %v, want ErrStoreClosed", err)
	}
}

func eventIDs(events []*event.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}
