// Package dashboard serves the analytics views. Each call fetches the
// rework log once, narrows it to the requested range and runs the
// analytics over that snapshot.
package dashboard

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/bryanwahyu/rcis/internal/analytics"
	"github.com/bryanwahyu/rcis/internal/application"
	"github.com/bryanwahyu/rcis/internal/domain/catalog"
	"github.com/bryanwahyu/rcis/internal/domain/records"
	"github.com/bryanwahyu/rcis/internal/domain/rework"
)

// Overview windows.
const (
	WeeklyDays  = 7
	MonthlyDays = 30
	ParetoSize  = 5
)

type Service struct {
	Reworks rework.Repository
	Clock   application.Clock
	Log     *zap.Logger
}

// snapshot loads every event. A store failure is logged and treated as
// an empty log.
func (s *Service) snapshot(ctx context.Context) []rework.Event {
	list, err := s.Reworks.List(ctx)
	if err != nil {
		s.Log.Warn("load reworks for analytics", zap.Error(err))
		return []rework.Event{}
	}
	out := make([]rework.Event, 0, len(list))
	for _, e := range list {
		out = append(out, *e)
	}
	return out
}

// recurrenceWindow is the caller's range when one was given, otherwise
// the standard 7-day window.
func recurrenceWindow(r analytics.Range) analytics.Range {
	if r.IsCustom() || r.Days > 0 {
		return r
	}
	return analytics.LastDays(analytics.RecurrenceDays)
}

type Overview struct {
	Window      analytics.Window        `json:"window"`
	Total       int                     `json:"total"`
	Weekly      int                     `json:"weekly"`
	Monthly     int                     `json:"monthly"`
	TopStation  string                  `json:"topStation"`
	TopDefect   string                  `json:"topDefect"`
	Trend       []analytics.MonthBucket `json:"trend"`
	Stations    []analytics.Share       `json:"stations"`
	Pareto      []analytics.ParetoRow   `json:"pareto"`
	Shifts      []analytics.Share       `json:"shifts"`
	Severities  []analytics.Share       `json:"severities"`
	Recurrences []analytics.Recurrence  `json:"recurrences"`
}

func (s *Service) Overview(ctx context.Context, r analytics.Range) Overview {
	now := s.Clock.Now()
	all := s.snapshot(ctx)
	inRange := analytics.Filter(all, r, now)

	return Overview{
		Window:      r.Resolve(now),
		Total:       analytics.Total(inRange),
		Weekly:      analytics.Total(analytics.Filter(all, analytics.LastDays(WeeklyDays), now)),
		Monthly:     analytics.Total(analytics.Filter(all, analytics.LastDays(MonthlyDays), now)),
		TopStation:  analytics.TopStation(inRange),
		TopDefect:   analytics.TopDefect(inRange),
		Trend:       analytics.MonthlyTrend(all, now),
		Stations:    analytics.StationBreakdown(inRange, catalog.Stations),
		Pareto:      analytics.TopN(inRange, rework.FieldDefectType, ParetoSize),
		Shifts:      analytics.ShiftBreakdown(inRange),
		Severities:  analytics.SeverityBreakdown(inRange),
		Recurrences: analytics.DetectRecurrence(all, analytics.RecurrenceThreshold, recurrenceWindow(r), now),
	}
}

// Trend is the six-month count series ending this month.
func (s *Service) Trend(ctx context.Context) []analytics.MonthBucket {
	return analytics.MonthlyTrend(s.snapshot(ctx), s.Clock.Now())
}

// Pareto ranks values of field; n <= 0 returns every value.
func (s *Service) Pareto(ctx context.Context, r analytics.Range, field rework.Field, n int) []analytics.ParetoRow {
	if n <= 0 {
		n = math.MaxInt
	}
	now := s.Clock.Now()
	return analytics.TopN(analytics.Filter(s.snapshot(ctx), r, now), field, n)
}

func (s *Service) Group(ctx context.Context, r analytics.Range, field rework.Field) *analytics.Tally {
	now := s.Clock.Now()
	return analytics.GroupByCount(analytics.Filter(s.snapshot(ctx), r, now), field)
}

func (s *Service) CrossTab(ctx context.Context, r analytics.Range, row, col rework.Field) *analytics.CrossTab {
	now := s.Clock.Now()
	return analytics.CrossTabulate(analytics.Filter(s.snapshot(ctx), r, now), row, col)
}

// Breakdown dimensions with a fixed catalog denominator.
const (
	DimStation  = "station"
	DimSeverity = "severity"
	DimShift    = "shift"
)

func (s *Service) Breakdown(ctx context.Context, r analytics.Range, dim string) ([]analytics.Share, error) {
	var fn func([]rework.Event) []analytics.Share
	switch strings.ToLower(dim) {
	case DimStation:
		fn = func(ev []rework.Event) []analytics.Share { return analytics.StationBreakdown(ev, catalog.Stations) }
	case DimSeverity:
		fn = analytics.SeverityBreakdown
	case DimShift:
		fn = analytics.ShiftBreakdown
	default:
		return nil, records.Invalidf("breakdown dimension must be station, severity or shift, got %q", dim)
	}
	now := s.Clock.Now()
	return fn(analytics.Filter(s.snapshot(ctx), r, now)), nil
}

// HeatMapView is the station x severity grid with its marginals.
type HeatMapView struct {
	analytics.HeatMap
	Total          int                     `json:"total"`
	Max            int                     `json:"max"`
	StationTotals  []analytics.Entry       `json:"stationTotals"`
	SeverityTotals []analytics.Entry       `json:"severityTotals"`
	Risks          []analytics.StationRisk `json:"risks"`
}

func (s *Service) HeatMap(ctx context.Context, r analytics.Range) HeatMapView {
	now := s.Clock.Now()
	h := analytics.RiskHeatMap(analytics.Filter(s.snapshot(ctx), r, now), catalog.Stations, catalog.Severities)
	return HeatMapView{
		HeatMap:        h,
		Total:          h.Total(),
		Max:            h.MaxCell(),
		StationTotals:  h.StationTotals(),
		SeverityTotals: h.SeverityTotals(),
		Risks:          h.StationRisks(),
	}
}

// Recurrence flags defect types seen at least threshold times inside r
// (7 days when r is empty). threshold <= 0 uses the standard 3.
func (s *Service) Recurrence(ctx context.Context, r analytics.Range, threshold int) []analytics.Recurrence {
	if threshold <= 0 {
		threshold = analytics.RecurrenceThreshold
	}
	return analytics.DetectRecurrence(s.snapshot(ctx), threshold, recurrenceWindow(r), s.Clock.Now())
}

// Insights runs the shift and batch rules over r and recurrence over the
// caller's range, or the last 7 days when none was given.
func (s *Service) Insights(ctx context.Context, r analytics.Range) []analytics.Insight {
	now := s.Clock.Now()
	all := s.snapshot(ctx)
	return analytics.GenerateInsights(analytics.Filter(all, r, now), recurrenceWindow(r), now)
}

// Digest renders insights as plain text lines for chat and prompts.
func Digest(insights []analytics.Insight) string {
	var b strings.Builder
	for _, in := range insights {
		fmt.Fprintf(&b, "- [%s/%s] %s (%s)\n", in.Type, in.Severity, in.Message, in.Detail)
	}
	return b.String()
}
