package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/xraph/faultline"
	"github.com/xraph/faultline/api"
	"github.com/xraph/faultline/event"
	"github.com/xraph/faultline/id"
	"github.com/xraph/faultline/internal/entity"
	"github.com/xraph/faultline/organization"
	"github.com/xraph/faultline/project"
	"github.com/xraph/faultline/queue"
	"github.com/xraph/faultline/stack"
	"github.com/xraph/faultline/store/memory"
	"github.com/xraph/faultline/token"
)

// fixture bundles the test server with the stores behind it.
type fixture struct {
	srv   *httptest.Server
	store *memory.Store
	queue *queue.Memory

	orgID     string
	projectID string
	stackID   string
}

// newFixture creates a server over a memory store seeded with one
// organization, project, and stack.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := memory.New()
	q := queue.NewMemory()

	core, err := faultline.New(
		faultline.WithStore(s),
		faultline.WithQueue(q),
		faultline.WithLogger(slog.Default()),
	)
	if err != nil {
		t.Fatalf("new faultline: %v", err)
	}

	f := &fixture{
		store:     s,
		queue:     q,
		orgID:     id.NewOrganizationID().String(),
		projectID: id.NewProjectID().String(),
		stackID:   id.NewStackID().String(),
	}

	ctx := context.Background()
	if err := s.CreateOrganization(ctx, &organization.Organization{
		Entity: entity.New(), ID: f.orgID, Name: "acme",
	}); err != nil {
		t.Fatalf("seed organization: %v", err)
	}
	if err := s.CreateProject(ctx, &project.Project{
		Entity: entity.New(), ID: f.projectID, OrganizationID: f.orgID, Name: "api",
	}); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	if err := s.CreateStack(ctx, &stack.Stack{
		Entity: entity.New(), ID: f.stackID, OrganizationID: f.orgID, ProjectID: f.projectID, Title: "NullReference",
	}); err != nil {
		t.Fatalf("seed stack: %v", err)
	}

	h := api.NewHandler(core, api.HeaderAuthenticator(), slog.Default())
	f.srv = httptest.NewServer(h)
	t.Cleanup(f.srv.Close)
	return f
}

// seedEvents persists n events on the fixture stack, one minute apart,
// oldest first.
func (f *fixture) seedEvents(t *testing.T, n int) []*event.Event {
	t.Helper()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	events := make([]*event.Event, n)
	for i := range events {
		events[i] = &event.Event{
			Entity:         entity.New(),
			ID:             id.NewEventID().String(),
			OrganizationID: f.orgID,
			ProjectID:      f.projectID,
			StackID:        f.stackID,
			Type:           "error",
			Message:        "boom",
			Date:           base.Add(time.Duration(i) * time.Minute),
		}
	}
	if err := f.store.InsertEvents(context.Background(), events); err != nil {
		t.Fatalf("seed events: %v", err)
	}
	return events
}

// do issues a request with the fixture caller's auth headers.
func (f *fixture) do(t *testing.T, method, path string, body io.Reader) *http.Response {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), method, f.srv.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("X-Faultline-User", "user-1")
	req.Header.Set("X-Faultline-Organizations", f.orgID)
	req.Header.Set("X-Faultline-Default-Organization", f.orgID)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

type eventsEnvelope struct {
	Events  []*event.Event `json:"events"`
	HasMore bool           `json:"has_more"`
	Links   struct {
		Next     string `json:"next"`
		Previous string `json:"previous"`
	} `json:"links"`
}

func TestSubmitEvent(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/event?projectId="+f.projectID,
		bytes.NewReader([]byte(`{"type":"error","message":"boom"}`)))
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if f.queue.Len() != 1 {
		t.Fatalf("queue len = %d, want 1", f.queue.Len())
	}
}

func TestSubmitEventResolvesDefaultProject(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/event", bytes.NewReader([]byte(`{}`)))
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	env, err := f.queue.Dequeue(context.Background())
	if err != nil {
		t.Fatalf("dequeue: %v", err)
	}
	if env.ProjectID != f.projectID {
		t.Fatalf("envelope project = %q, want %q", env.ProjectID, f.projectID)
	}
}

func TestSubmitEventUnauthorizedWithoutProject(t *testing.T) {
	f := newFixture(t)

	req, err := http.NewRequestWithContext(context.Background(),
		http.MethodPost, f.srv.URL+"/event", bytes.NewReader([]byte(`{}`)))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	// Authenticated caller with no default organization.
	req.Header.Set("X-Faultline-User", "user-2")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
	if f.queue.Len() != 0 {
		t.Fatalf("queue len = %d, want 0", f.queue.Len())
	}
}

func TestSubmitEventQueueUnavailable(t *testing.T) {
	f := newFixture(t)
	f.queue.FailNext(errors.New("broker down"))

	resp := f.do(t, http.MethodPost, "/event?projectId="+f.projectID,
		bytes.NewReader([]byte(`{}`)))
	resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusServiceUnavailable)
	}
}

func TestListEventsByStack(t *testing.T) {
	f := newFixture(t)
	seeded := f.seedEvents(t, 3)

	resp := f.do(t, http.MethodGet, "/stack/"+f.stackID+"/event", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var got eventsEnvelope
	decodeBody(t, resp, &got)

	if len(got.Events) != 3 {
		t.Fatalf("events = %d, want 3", len(got.Events))
	}
	// Newest first.
	if got.Events[0].ID != seeded[2].ID {
		t.Fatalf("first event = %q, want newest %q", got.Events[0].ID, seeded[2].ID)
	}
	if got.HasMore {
		t.Fatal("has_more = true, want false")
	}
	if got.Links.Next == "" || got.Links.Previous == "" {
		t.Fatal("expected page links on a non-empty page")
	}
}

func TestListEventsPagination(t *testing.T) {
	f := newFixture(t)
	f.seedEvents(t, 5)

	resp := f.do(t, http.MethodGet, "/stack/"+f.stackID+"/event?limit=2", nil)
	var first eventsEnvelope
	decodeBody(t, resp, &first)

	if len(first.Events) != 2 || !first.HasMore {
		t.Fatalf("first page: events = %d, has_more = %v", len(first.Events), first.HasMore)
	}

	resp = f.do(t, http.MethodGet, "/stack/"+f.stackID+"/event?limit=2&before="+url.QueryEscape(first.Links.Next), nil)
	var second eventsEnvelope
	decodeBody(t, resp, &second)

	if len(second.Events) != 2 || !second.HasMore {
		t.Fatalf("second page: events = %d, has_more = %v", len(second.Events), second.HasMore)
	}
	if second.Events[0].Date.Compare(first.Events[1].Date) >= 0 {
		t.Fatal("second page does not continue past the first")
	}
}

func TestListEventsInvalidCursor(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodGet, "/event?before=not-a-cursor", nil)
	resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestGetEventForeignOrganizationIsNotFound(t *testing.T) {
	f := newFixture(t)
	seeded := f.seedEvents(t, 1)

	req, err := http.NewRequestWithContext(context.Background(),
		http.MethodGet, f.srv.URL+"/event/"+seeded[0].ID, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("X-Faultline-User", "outsider")
	req.Header.Set("X-Faultline-Organizations", id.NewOrganizationID().String())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestRemoveEventsByStack(t *testing.T) {
	f := newFixture(t)
	f.seedEvents(t, 3)

	resp := f.do(t, http.MethodDelete, "/stack/"+f.stackID+"/event", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}

	resp = f.do(t, http.MethodGet, "/stack/"+f.stackID+"/event", nil)
	var got eventsEnvelope
	decodeBody(t, resp, &got)
	if len(got.Events) != 0 {
		t.Fatalf("events = %d, want 0", len(got.Events))
	}

	// Idempotent: a second delete still succeeds.
	resp = f.do(t, http.MethodDelete, "/stack/"+f.stackID+"/event", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("repeat delete status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
}

func TestListStacks(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodGet, "/stack", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var got struct {
		Stacks []*stack.Stack `json:"stacks"`
	}
	decodeBody(t, resp, &got)
	if len(got.Stacks) != 1 || got.Stacks[0].ID != f.stackID {
		t.Fatalf("stacks = %+v, want the seeded stack", got.Stacks)
	}
}

func TestUnauthenticatedRequestRejected(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Get(f.srv.URL + "/event")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodGet, "/healthz", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestTokenAuthenticator(t *testing.T) {
	f := newFixture(t)
	secret := token.GenerateSecret()

	core, err := faultline.New(
		faultline.WithStore(f.store),
		faultline.WithQueue(f.queue),
	)
	if err != nil {
		t.Fatalf("new faultline: %v", err)
	}
	h := api.NewHandler(core, api.TokenAuthenticator(secret), slog.Default())
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	tok, err := token.Mint(secret, token.Claims{
		UserID:          "user-1",
		OrganizationIDs: []string{f.orgID},
		IssuedAt:        time.Now().Unix(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/stack/"+f.stackID, nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	// A token signed with a different secret is rejected.
	forged, err := token.Mint(token.GenerateSecret(), token.Claims{
		UserID:          "user-1",
		OrganizationIDs: []string{f.orgID},
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/stack/"+f.stackID, nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	resp, err = srv.Client().Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}
