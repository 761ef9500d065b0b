package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/seva-intake/api/internal/platform/httpx"
)

// HealthHandlers serves liveness and readiness probes.
type HealthHandlers struct {
	version  string
	revision string
	clock    func() time.Time
	readyFns []func(context.Context) error
	started  time.Time
}

// HealthOption customises the health handlers before construction.
type HealthOption func(*HealthHandlers)

// WithHealthBuildInfo attaches version metadata to liveness responses.
func WithHealthBuildInfo(version, revision string) HealthOption {
	return func(h *HealthHandlers) {
		h.version = version
		h.revision = revision
	}
}

// WithHealthClock overrides the time source, mainly for tests.
func WithHealthClock(clock func() time.Time) HealthOption {
	return func(h *HealthHandlers) {
		if clock != nil {
			h.clock = clock
		}
	}
}

// WithHealthReadinessCheck registers a dependency probe run on /readyz.
func WithHealthReadinessCheck(check func(context.Context) error) HealthOption {
	return func(h *HealthHandlers) {
		if check != nil {
			h.readyFns = append(h.readyFns, check)
		}
	}
}

// NewHealthHandlers constructs the health endpoints.
func NewHealthHandlers(opts ...HealthOption) *HealthHandlers {
	h := &HealthHandlers{
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.started = h.clock()
	return h
}

// Healthz reports process liveness.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	now := h.clock()
	payload := map[string]any{
		"status":    "ok",
		"uptime":    now.Sub(h.started).String(),
		"timestamp": now.UTC().Format(time.RFC3339),
	}
	if h.version != "" {
		payload["version"] = h.version
	}
	if h.revision != "" {
		payload["revision"] = h.revision
	}
	writeJSONResponse(w, http.StatusOK, payload)
}

// Readyz reports whether dependencies are reachable.
func (h *HealthHandlers) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	for _, check := range h.readyFns {
		if err := check(ctx); err != nil {
			httpx.WriteError(ctx, w, httpx.NewError("not_ready", err.Error(), http.StatusServiceUnavailable))
			return
		}
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"status": "ready"})
}
