package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bryanwahyu/rcis/internal/analytics"
	appdashboard "github.com/bryanwahyu/rcis/internal/application/dashboard"
	"github.com/bryanwahyu/rcis/internal/domain/records"
	"github.com/bryanwahyu/rcis/internal/domain/rework"
)

// GET /v1/analytics/overview?days=30
func (r *Router) handleOverview(w http.ResponseWriter, req *http.Request) error {
	rng, err := r.rangeOf(req)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, r.Dashboard.Overview(req.Context(), rng))
}

// GET /v1/analytics/trend
func (r *Router) handleTrend(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, http.StatusOK, r.Dashboard.Trend(req.Context()))
}

// GET /v1/analytics/pareto?field=defectType&n=5
func (r *Router) handlePareto(w http.ResponseWriter, req *http.Request) error {
	rng, err := r.rangeOf(req)
	if err != nil {
		return err
	}
	field, err := fieldParam(req, "field", rework.FieldDefectType)
	if err != nil {
		return err
	}
	n, err := intParam(req, "n", appdashboard.ParetoSize)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, r.Dashboard.Pareto(req.Context(), rng, field, n))
}

// GET /v1/analytics/group?field=station
func (r *Router) handleGroup(w http.ResponseWriter, req *http.Request) error {
	rng, err := r.rangeOf(req)
	if err != nil {
		return err
	}
	field, err := fieldParam(req, "field", rework.FieldStation)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, r.Dashboard.Group(req.Context(), rng, field))
}

// GET /v1/analytics/crosstab?row=defectType&col=shift
func (r *Router) handleCrossTab(w http.ResponseWriter, req *http.Request) error {
	rng, err := r.rangeOf(req)
	if err != nil {
		return err
	}
	row, err := fieldParam(req, "row", rework.FieldDefectType)
	if err != nil {
		return err
	}
	col, err := fieldParam(req, "col", rework.FieldShift)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, r.Dashboard.CrossTab(req.Context(), rng, row, col))
}

// GET /v1/analytics/breakdown/{dim}
func (r *Router) handleBreakdown(w http.ResponseWriter, req *http.Request) error {
	rng, err := r.rangeOf(req)
	if err != nil {
		return err
	}
	shares, err := r.Dashboard.Breakdown(req.Context(), rng, chi.URLParam(req, "dim"))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, shares)
}

// GET /v1/analytics/heatmap
func (r *Router) handleHeatMap(w http.ResponseWriter, req *http.Request) error {
	rng, err := r.rangeOf(req)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, r.Dashboard.HeatMap(req.Context(), rng))
}

// GET /v1/analytics/recurrence?threshold=3&days=7
func (r *Router) handleRecurrence(w http.ResponseWriter, req *http.Request) error {
	rng, err := r.rangeOf(req)
	if err != nil {
		return err
	}
	threshold, err := intParam(req, "threshold", analytics.RecurrenceThreshold)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, r.Dashboard.Recurrence(req.Context(), rng, threshold))
}

// GET /v1/analytics/insights
func (r *Router) handleInsights(w http.ResponseWriter, req *http.Request) error {
	rng, err := r.rangeOf(req)
	if err != nil {
		return err
	}
	insights := r.Dashboard.Insights(req.Context(), rng)
	if r.Metrics != nil {
		r.Metrics.ObserveInsights(insights)
	}
	return writeJSON(w, http.StatusOK, insights)
}

// POST /v1/analytics/insights/narrative?days=7
func (r *Router) handleNarrative(w http.ResponseWriter, req *http.Request) error {
	rng, err := r.rangeOf(req)
	if err != nil {
		return err
	}
	insights := r.Dashboard.Insights(req.Context(), rng)
	n, err := r.AI.Narrate(req.Context(), insights)
	r.observeNarrative(err)
	if err != nil {
		r.Log.Warn("insight narrative", zap.Int("insights", len(insights)), zap.Error(err))
		return err
	}
	return writeJSON(w, http.StatusOK, n)
}

func (r *Router) observeNarrative(err error) {
	if r.Metrics == nil {
		return
	}
	if err != nil {
		r.Metrics.ObserveNarrative("error")
		return
	}
	r.Metrics.ObserveNarrative("ok")
}

func fieldParam(req *http.Request, name string, def rework.Field) (rework.Field, error) {
	v := req.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	return rework.ParseField(v)
}

func intParam(req *http.Request, name string, def int) (int, error) {
	v := req.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, records.Invalidf("%s must be an integer, got %q", name, v)
	}
	return n, nil
}
