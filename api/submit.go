package api

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/xraph/faultline"
	"github.com/xraph/faultline/ingest"
)

// maxSubmissionBytes bounds a single submission body.
const maxSubmissionBytes = 10 << 20

// submitEvent accepts a raw event payload and hands it to the ingestion
// gateway. The response carries no body: acceptance means queued, nothing
// more.
func (h *Handler) submitEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSubmissionBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "payload too large")
		return
	}

	mediaType, charSet := parseContentType(r.Header.Get("Content-Type"))

	sub := ingest.Submission{
		Data:            body,
		ProjectID:       r.URL.Query().Get("projectId"),
		APIVersion:      queryInt(r, "apiVersion", ingest.DefaultAPIVersion),
		UserAgent:       r.UserAgent(),
		MediaType:       mediaType,
		CharSet:         charSet,
		ContentEncoding: r.Header.Get("Content-Encoding"),
	}

	if err := h.core.Submit(r.Context(), sub); err != nil {
		switch {
		case errors.Is(err, faultline.ErrNoResolvableProject):
			writeError(w, http.StatusUnauthorized, "unauthorized")
		case errors.Is(err, faultline.ErrRateLimited):
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		case errors.Is(err, faultline.ErrQueueUnavailable):
			writeError(w, http.StatusServiceUnavailable, "try again later")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

// parseContentType splits a Content-Type header into media type and
// charset, tolerating malformed values.
func parseContentType(header string) (mediaType, charSet string) {
	if header == "" {
		return "", ""
	}
	mt, params, err := mime.ParseMediaType(header)
	if err != nil {
		return header, ""
	}
	return mt, params["charset"]
}
