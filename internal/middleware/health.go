package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// HealthChecker probes one dependency.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// CheckerFunc adapts a plain function.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Check(ctx context.Context) error { return f(ctx) }

// Pinger is satisfied by the record store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreHealthChecker pings the database with a 2s budget.
type StoreHealthChecker struct {
	Store Pinger
}

func (d StoreHealthChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return d.Store.Ping(ctx)
}

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
}

type CheckStatus struct {
	Status  string  `json:"status"`
	Message string  `json:"message,omitempty"`
	Millis  float64 `json:"ms"`
}

func (h HealthStatus) ok() bool { return h.Status == statusHealthy }

func runChecks(ctx context.Context, checkers map[string]HealthChecker) HealthStatus {
	health := HealthStatus{
		Status:    statusHealthy,
		Timestamp: time.Now().UTC(),
		Checks:    make(map[string]CheckStatus, len(checkers)),
	}
	for name, checker := range checkers {
		start := time.Now()
		err := checker.Check(ctx)
		cs := CheckStatus{Status: statusHealthy, Millis: float64(time.Since(start).Microseconds()) / 1000}
		if err != nil {
			health.Status = statusUnhealthy
			cs.Status, cs.Message = statusUnhealthy, err.Error()
		}
		health.Checks[name] = cs
	}
	return health
}

func healthCode(h HealthStatus) int {
	if h.ok() {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}

// HealthHandler reports every check with its latency.
func HealthHandler(checkers map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := runChecks(ctx, checkers)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(healthCode(health))
		_ = json.NewEncoder(w).Encode(health)
	}
}

// ReadinessHandler answers ready once every checker passes.
func ReadinessHandler(checkers map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		health := runChecks(r.Context(), checkers)
		status := "ready"
		if !health.ok() {
			status = "not ready"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(healthCode(health))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":    status,
			"timestamp": health.Timestamp,
		})
	}
}

// LivenessHandler only proves the process is serving.
func LivenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
