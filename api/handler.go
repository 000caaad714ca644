// Package api provides the HTTP API for event submission and scoped reads.
//
// Authentication is pluggable: an Authenticator turns an inbound request
// into a caller scope, and every downstream read is bounded by the
// organizations that scope grants.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/xraph/faultline"
	"github.com/xraph/faultline/paging"
	"github.com/xraph/faultline/scope"
	"github.com/xraph/faultline/token"
)

// Authenticator resolves the caller scope for a request. Returning an
// error rejects the request as unauthorized.
type Authenticator func(r *http.Request) (scope.Caller, error)

// Handler is the root HTTP handler for the Faultline API.
type Handler struct {
	core   *faultline.Faultline
	auth   Authenticator
	logger *slog.Logger
	mux    *http.ServeMux
}

// NewHandler creates the API handler over a Faultline core.
func NewHandler(core *faultline.Faultline, auth Authenticator, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	h := &Handler{
		core:   core,
		auth:   auth,
		logger: logger,
		mux:    http.NewServeMux(),
	}

	h.registerRoutes()
	return h
}

func (h *Handler) registerRoutes() {
	// Submission
	h.mux.HandleFunc("POST /event", h.submitEvent)

	// Events
	h.mux.HandleFunc("GET /event", h.listEvents)
	h.mux.HandleFunc("GET /event/{id}", h.getEvent)
	h.mux.HandleFunc("GET /project/{projectID}/event", h.listEventsByProject)
	h.mux.HandleFunc("GET /stack/{stackID}/event", h.listEventsByStack)
	h.mux.HandleFunc("DELETE /stack/{stackID}/event", h.removeEventsByStack)

	// Stacks
	h.mux.HandleFunc("GET /stack", h.listStacks)
	h.mux.HandleFunc("GET /stack/{id}", h.getStack)
	h.mux.HandleFunc("GET /project/{projectID}/stack", h.listStacksByProject)

	// Health
	h.mux.HandleFunc("GET /healthz", h.health)
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.withMiddleware(h.mux).ServeHTTP(w, r)
}

func (h *Handler) withMiddleware(next http.Handler) http.Handler {
	return h.panicRecovery(h.logging(h.authenticate(next)))
}

// authenticate resolves the caller scope and threads it through the
// request context. Requests with no authenticator pass through unscoped;
// scoped reads then see an empty caller and return nothing.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.auth != nil {
			caller, err := h.auth(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			r = r.WithContext(scope.With(r.Context(), caller))
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		h.logger.Info("api request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (h *Handler) panicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger.Error("panic recovered",
					"error", rec,
					"stack", string(debug.Stack()),
				)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.core.Store().Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HeaderAuthenticator builds caller scopes from trusted proxy headers:
// X-Faultline-User, X-Faultline-Organizations (comma-separated), and
// X-Faultline-Default-Organization. Requests without a user header are
// rejected.
func HeaderAuthenticator() Authenticator {
	return func(r *http.Request) (scope.Caller, error) {
		userID := r.Header.Get("X-Faultline-User")
		if userID == "" {
			return scope.Caller{}, errors.New("missing user header")
		}

		return scope.Caller{
			UserID:                userID,
			OrganizationIDs:       splitComma(r.Header.Get("X-Faultline-Organizations")),
			DefaultOrganizationID: r.Header.Get("X-Faultline-Default-Organization"),
		}, nil
	}
}

// TokenAuthenticator builds caller scopes from bearer tokens minted by
// the token package with the given secret. Missing or invalid tokens
// are rejected.
func TokenAuthenticator(secret string) Authenticator {
	return func(r *http.Request) (scope.Caller, error) {
		raw := r.Header.Get("Authorization")
		bearer, ok := strings.CutPrefix(raw, "Bearer ")
		if !ok {
			return scope.Caller{}, errors.New("missing bearer token")
		}

		claims, err := token.Parse(secret, bearer)
		if err != nil {
			return scope.Caller{}, err
		}
		return claims.Caller(), nil
	}
}

func splitComma(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// JSON helpers.

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best effort
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// pagingOptions decodes the before/after/limit query parameters.
func pagingOptions(r *http.Request) (*paging.Options, error) {
	return paging.NewOptions(
		r.URL.Query().Get("before"),
		r.URL.Query().Get("after"),
		queryInt(r, "limit", 0),
	)
}

// queryInt returns a query parameter as int or a default value.
func queryInt(r *http.Request, key string, defaultVal int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return defaultVal
	}
	var n int
	for _, c := range v {
		if c < '0' || c > '9' {
			return defaultVal
		}
		n = n*10 + int(c-'0')
	}
	return n
}
