package api

import (
	"errors"
	"net/http"

	"github.com/xraph/faultline"
	"github.com/xraph/faultline/event"
	"github.com/xraph/faultline/paging"
	"github.com/xraph/faultline/repository"
	"github.com/xraph/faultline/scope"
)

// eventsResponse is the page envelope for event listings.
type eventsResponse struct {
	Events  []*event.Event `json:"events"`
	HasMore bool           `json:"has_more"`
	Links   paging.Links   `json:"links"`
}

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	opts, err := pagingOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cursor")
		return
	}

	orgIDs := organizationScope(r)
	events, err := h.core.Events().GetByOrganizationIDs(r.Context(), orgIDs, opts)
	if err != nil {
		h.writeQueryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, eventsPage(events, opts))
}

func (h *Handler) listEventsByProject(w http.ResponseWriter, r *http.Request) {
	opts, err := pagingOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cursor")
		return
	}

	events, err := h.core.Events().GetByProjectID(r.Context(), r.PathValue("projectID"), opts)
	if err != nil {
		h.writeQueryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, eventsPage(events, opts))
}

func (h *Handler) listEventsByStack(w http.ResponseWriter, r *http.Request) {
	opts, err := pagingOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cursor")
		return
	}

	events, err := h.core.Events().GetByStackID(r.Context(), r.PathValue("stackID"), opts, repository.UseCache())
	if err != nil {
		h.writeQueryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, eventsPage(events, opts))
}

func (h *Handler) getEvent(w http.ResponseWriter, r *http.Request) {
	evt, err := h.core.Events().GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeQueryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, evt)
}

func (h *Handler) removeEventsByStack(w http.ResponseWriter, r *http.Request) {
	stackID := r.PathValue("stackID")

	// The stack must be visible to the caller before its events go away.
	if _, err := h.core.Stacks().GetByID(r.Context(), stackID); err != nil {
		h.writeQueryError(w, err)
		return
	}

	if err := h.core.Events().RemoveAllByStackID(r.Context(), stackID); err != nil {
		h.writeQueryError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// eventsPage assembles the page envelope. Pages present newest-first, so
// the first item anchors the previous cursor and the last the next.
func eventsPage(events []*event.Event, opts *paging.Options) eventsResponse {
	resp := eventsResponse{
		Events:  events,
		HasMore: opts.HasMore,
	}
	if resp.Events == nil {
		resp.Events = []*event.Event{}
	}
	if len(events) > 0 {
		resp.Links = paging.NewLinks(events[0].Date, events[len(events)-1].Date)
	}
	return resp
}

// organizationScope returns the organization ids a listing is bounded
// by: the explicit organizationId parameter when given, otherwise every
// organization the caller belongs to. An inaccessible explicit id fails
// downstream exactly like a nonexistent one.
func organizationScope(r *http.Request) []string {
	if orgID := r.URL.Query().Get("organizationId"); orgID != "" {
		return []string{orgID}
	}
	caller, _ := scope.From(r.Context())
	return caller.OrganizationIDs
}

// writeQueryError maps repository errors onto HTTP statuses.
func (h *Handler) writeQueryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, faultline.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, faultline.ErrInvalidCursor):
		writeError(w, http.StatusBadRequest, "invalid cursor")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
