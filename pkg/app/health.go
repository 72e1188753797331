package app

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/shashiranjanraj/shopfront/pkg/logger"
	"github.com/shashiranjanraj/shopfront/pkg/response"
)

// Checker probes one dependency.
type Checker func(ctx context.Context) error

// Probe states.
const (
	StatusUp   = "up"
	StatusDown = "down"
)

// CheckResult is one probe's outcome.
type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthReport is the body of /healthz and /readyz.
type HealthReport struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// Health holds the readiness probes.
type Health struct {
	mu       sync.RWMutex
	checkers map[string]Checker
	timeout  time.Duration
}

func NewHealth() *Health {
	return &Health{checkers: map[string]Checker{}, timeout: 5 * time.Second}
}

// Register adds or replaces a named probe.
func (h *Health) Register(name string, fn Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = fn
}

// Liveness answers 200 while the process is serving.
func (h *Health) Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, HealthReport{Status: StatusUp, Timestamp: time.Now().UTC()})
	}
}

// Readiness runs every probe and answers 503 when any is down.
func (h *Health) Readiness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		report := h.run(ctx)
		status := http.StatusOK
		if report.Status == StatusDown {
			status = http.StatusServiceUnavailable
		}
		response.JSON(w, status, report)
	}
}

func (h *Health) run(ctx context.Context) HealthReport {
	h.mu.RLock()
	names := make([]string, 0, len(h.checkers))
	for name := range h.checkers {
		names = append(names, name)
	}
	checkers := make(map[string]Checker, len(h.checkers))
	for k, v := range h.checkers {
		checkers[k] = v
	}
	h.mu.RUnlock()
	sort.Strings(names)

	report := HealthReport{Status: StatusUp, Timestamp: time.Now().UTC(), Checks: map[string]CheckResult{}}
	for _, name := range names {
		if err := checkers[name](ctx); err != nil {
			logger.WithCtx(ctx).Warn("readiness probe failed", "check", name, "error", err.Error())
			report.Checks[name] = CheckResult{Status: StatusDown, Error: err.Error()}
			report.Status = StatusDown
			continue
		}
		report.Checks[name] = CheckResult{Status: StatusUp}
	}
	return report
}
