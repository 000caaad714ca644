package api

import (
	"net/http"

	"github.com/xraph/faultline/paging"
	"github.com/xraph/faultline/stack"
)

// stacksResponse is the page envelope for stack listings.
type stacksResponse struct {
	Stacks  []*stack.Stack `json:"stacks"`
	HasMore bool           `json:"has_more"`
	Links   paging.Links   `json:"links"`
}

func (h *Handler) listStacks(w http.ResponseWriter, r *http.Request) {
	opts, err := pagingOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cursor")
		return
	}

	stacks, err := h.core.Stacks().GetByOrganizationIDs(r.Context(), organizationScope(r), opts)
	if err != nil {
		h.writeQueryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stacksPage(stacks, opts))
}

func (h *Handler) listStacksByProject(w http.ResponseWriter, r *http.Request) {
	opts, err := pagingOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cursor")
		return
	}

	stacks, err := h.core.Stacks().GetByProjectID(r.Context(), r.PathValue("projectID"), opts)
	if err != nil {
		h.writeQueryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stacksPage(stacks, opts))
}

func (h *Handler) getStack(w http.ResponseWriter, r *http.Request) {
	st, err := h.core.Stacks().GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeQueryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, st)
}

func stacksPage(stacks []*stack.Stack, opts *paging.Options) stacksResponse {
	resp := stacksResponse{
		Stacks:  stacks,
		HasMore: opts.HasMore,
	}
	if resp.Stacks == nil {
		resp.Stacks = []*stack.Stack{}
	}
	if len(stacks) > 0 {
		resp.Links = paging.NewLinks(stacks[0].CreatedAt, stacks[len(stacks)-1].CreatedAt)
	}
	return resp
}
