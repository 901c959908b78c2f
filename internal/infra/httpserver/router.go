package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/bryanwahyu/rcis/internal/analytics"
	"github.com/bryanwahyu/rcis/internal/application"
	appactions "github.com/bryanwahyu/rcis/internal/application/actions"
	appai "github.com/bryanwahyu/rcis/internal/application/ai"
	appdashboard "github.com/bryanwahyu/rcis/internal/application/dashboard"
	appknowledge "github.com/bryanwahyu/rcis/internal/application/knowledge"
	appreworks "github.com/bryanwahyu/rcis/internal/application/reworks"
	appsettings "github.com/bryanwahyu/rcis/internal/application/settings"
	domai "github.com/bryanwahyu/rcis/internal/domain/ai"
	"github.com/bryanwahyu/rcis/internal/domain/knowledge"
	"github.com/bryanwahyu/rcis/internal/domain/records"
	"github.com/bryanwahyu/rcis/internal/middleware"
)

// Deps is everything the router serves. Metrics and Limiter are optional.
type Deps struct {
	Reworks   *appreworks.Service
	Actions   *appactions.Service
	Knowledge *appknowledge.Service
	Dashboard *appdashboard.Service
	AI        *appai.Service
	Settings  *appsettings.Service
	Clock     application.Clock
	Health    map[string]middleware.HealthChecker
	Metrics   *middleware.Metrics
	Limiter   *middleware.RateLimiter
	Origins   []string
	Log       *zap.Logger
}

type Router struct {
	Deps
}

func NewRouter(d Deps) http.Handler {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	r := &Router{Deps: d}
	mux := chi.NewRouter()

	mux.Use(chimw.RequestID)
	mux.Use(chimw.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.Origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Retry-After"},
		MaxAge:         300,
	}))
	mux.Use(middleware.Logging(d.Log))
	if d.Metrics != nil {
		mux.Use(d.Metrics.Middleware)
		mux.Handle("/metrics", d.Metrics.Handler())
	}

	mux.Get("/health", middleware.HealthHandler(d.Health))
	mux.Get("/healthz/live", middleware.LivenessHandler)
	mux.Get("/healthz/ready", middleware.ReadinessHandler(d.Health))

	mux.Route("/v1", func(rt chi.Router) {
		rt.Get("/catalog", r.wrap(r.handleCatalog))

		rt.Route("/reworks", func(rt chi.Router) {
			rt.Get("/", r.wrap(r.handleReworkList))
			rt.Post("/", r.wrap(r.handleReworkCreate))
			rt.Get("/{id}", r.wrap(r.handleReworkGet))
			rt.Patch("/{id}", r.wrap(r.handleReworkUpdate))
			rt.Delete("/{id}", r.wrap(r.handleReworkDelete))
		})

		rt.Route("/actions", func(rt chi.Router) {
			rt.Get("/", r.wrap(r.handleActionList))
			rt.Post("/", r.wrap(r.handleActionCreate))
			rt.Get("/summary", r.wrap(r.handleActionSummary))
			rt.Get("/{id}", r.wrap(r.handleActionGet))
			rt.Patch("/{id}", r.wrap(r.handleActionUpdate))
			rt.Delete("/{id}", r.wrap(r.handleActionDelete))
		})

		rt.Route("/knowledge", func(rt chi.Router) {
			rt.Get("/", r.wrap(r.handleKnowledgeList))
			rt.Post("/", r.wrap(r.handleKnowledgeCreate))
			rt.Get("/{id}", r.wrap(r.handleKnowledgeGet))
			rt.Patch("/{id}", r.wrap(r.handleKnowledgeUpdate))
			rt.Delete("/{id}", r.wrap(r.handleKnowledgeDelete))
			rt.Put("/{id}/image", r.wrap(r.handleKnowledgeImage))
		})

		rt.Route("/analytics", func(rt chi.Router) {
			rt.Get("/overview", r.wrap(r.handleOverview))
			rt.Get("/trend", r.wrap(r.handleTrend))
			rt.Get("/pareto", r.wrap(r.handlePareto))
			rt.Get("/group", r.wrap(r.handleGroup))
			rt.Get("/crosstab", r.wrap(r.handleCrossTab))
			rt.Get("/breakdown/{dim}", r.wrap(r.handleBreakdown))
			rt.Get("/heatmap", r.wrap(r.handleHeatMap))
			rt.Get("/recurrence", r.wrap(r.handleRecurrence))
			rt.Get("/insights", r.wrap(r.handleInsights))

			narrative := r.wrap(r.handleNarrative)
			if d.Limiter != nil {
				rt.With(d.Limiter.Middleware).Post("/insights/narrative", narrative)
			} else {
				rt.Post("/insights/narrative", narrative)
			}
		})

		rt.Route("/settings", func(rt chi.Router) {
			rt.Get("/", r.wrap(r.handleSettings))
			rt.Post("/seed", r.wrap(r.handleSeed))
			rt.Delete("/data", r.wrap(r.handleClear))
		})
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// errBadRequest marks malformed request bodies.
var errBadRequest = errors.New("bad request")

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, records.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, records.ErrInvalid), errors.Is(err, errBadRequest):
			status = http.StatusBadRequest
		case errors.Is(err, domai.ErrQuotaExceeded):
			status = http.StatusTooManyRequests
		case errors.Is(err, domai.ErrDisabled), errors.Is(err, knowledge.ErrImagesDisabled):
			status = http.StatusServiceUnavailable
		}
		if status == http.StatusInternalServerError {
			r.Log.Error("request failed",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Error(err),
			)
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// decode reads a JSON body, rejecting unknown fields.
func decode(req *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(req.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// rangeOf reads ?days= or ?start=&end= in the clock's location.
func (r *Router) rangeOf(req *http.Request) (analytics.Range, error) {
	q := req.URL.Query()
	return analytics.ParseRange(q.Get("days"), q.Get("start"), q.Get("end"), r.location())
}

func (r *Router) location() *time.Location {
	return r.Clock.Now().Location()
}
