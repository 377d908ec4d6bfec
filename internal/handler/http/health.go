package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/handler/http/response"
)

// Check pings one dependency
type Check func(ctx context.Context) error

type HealthHandler interface {
	Health(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	checks map[string]Check
}

// NewHealthHandler builds the readiness endpoint. Nil checks are skipped.
func NewHealthHandler(checks map[string]Check) HealthHandler {
	active := make(map[string]Check, len(checks))
	for name, check := range checks {
		if check != nil {
			active[name] = check
		}
	}
	return &healthHandlerImpl{checks: active}
}

type dependencyStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Health implements HealthHandler.
func (h *healthHandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	healthy := true
	deps := make([]dependencyStatus, 0, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			healthy = false
			deps = append(deps, dependencyStatus{Name: name, Status: "unhealthy", Error: err.Error()})
			continue
		}
		deps = append(deps, dependencyStatus{Name: name, Status: "ok"})
	}

	if !healthy {
		response.ServiceUnavailable(w, "One or more dependencies are unhealthy")
		return
	}

	response.Success(w, map[string]interface{}{
		"status":       "ok",
		"dependencies": deps,
	})
}
