package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bryanwahyu/rcis/internal/analytics"
	"github.com/bryanwahyu/rcis/internal/application"
	"github.com/bryanwahyu/rcis/internal/domain/records"
	"github.com/bryanwahyu/rcis/internal/domain/rework"
	"github.com/bryanwahyu/rcis/internal/infra/db/sqlrepo/sqlrepotest"
)

var now = time.Date(2026, time.October, 18, 14, 30, 0, 0, time.UTC)

func day(ago int) string { return now.AddDate(0, 0, -ago).Format(rework.DateLayout) }

func newService(t *testing.T, events ...rework.Event) *Service {
	t.Helper()
	store := sqlrepotest.New(t, now)
	for i := range events {
		_, err := store.Reworks().Insert(context.Background(), &events[i])
		require.NoError(t, err)
	}
	return &Service{Reworks: store.Reworks(), Clock: application.FixedClock{T: now}, Log: zap.NewNop()}
}

func scenario() []rework.Event {
	return []rework.Event{
		{Date: day(0), Station: "IGBT", DefectType: "Soldering Defect", Quantity: 2, Shift: "A (First)", Severity: "High"},
		{Date: day(1), Station: "IGBT", DefectType: "Soldering Defect", Quantity: 1, Shift: "A (First)", Severity: "High"},
		{Date: day(40), Station: "CVS", DefectType: "Wiring Error", Quantity: 1, Shift: "General", Severity: "Low"},
	}
}

func TestOverview(t *testing.T) {
	svc := newService(t, scenario()...)
	o := svc.Overview(context.Background(), analytics.LastDays(30))

	assert.Equal(t, 3, o.Total)
	assert.Equal(t, 3, o.Weekly)
	assert.Equal(t, 3, o.Monthly)
	assert.Equal(t, "IGBT", o.TopStation)
	assert.Equal(t, "Soldering Defect", o.TopDefect)
	require.Len(t, o.Pareto, 1)
	assert.Equal(t, analytics.ParetoRow{Key: "Soldering Defect", Count: 3, Percent: 100, Cumulative: 100}, o.Pareto[0])
	assert.Len(t, o.Trend, analytics.TrendMonths)
	assert.Equal(t, []analytics.Recurrence{{Defect: "Soldering Defect", Count: 3, WindowDays: 30}}, o.Recurrences)

	for _, s := range o.Stations {
		if s.Label == "IGBT" {
			assert.Equal(t, 100, s.Percent)
		}
	}
}

func TestOverviewDefaultRecurrenceWindow(t *testing.T) {
	svc := newService(t, scenario()...)
	o := svc.Overview(context.Background(), analytics.Range{})
	require.Len(t, o.Recurrences, 1)
	assert.Equal(t, analytics.RecurrenceDays, o.Recurrences[0].WindowDays)
}

func TestBreakdown(t *testing.T) {
	svc := newService(t, scenario()...)
	shares, err := svc.Breakdown(context.Background(), analytics.LastDays(60), "severity")
	require.NoError(t, err)
	assert.Equal(t, []analytics.Share{
		{Label: "Low", Count: 1, Percent: 25},
		{Label: "Medium", Count: 0, Percent: 0},
		{Label: "High", Count: 3, Percent: 75},
	}, shares)

	_, err = svc.Breakdown(context.Background(), analytics.Range{}, "operator")
	assert.ErrorIs(t, err, records.ErrInvalid)
}

func TestHeatMap(t *testing.T) {
	svc := newService(t, scenario()...)
	h := svc.HeatMap(context.Background(), analytics.LastDays(60))
	assert.Equal(t, 4, h.Total)
	assert.Equal(t, 3, h.Max)
	assert.Equal(t, 3, h.Cell("IGBT", "High"))
}

func TestRecurrenceThresholdDefault(t *testing.T) {
	svc := newService(t, scenario()...)
	assert.Len(t, svc.Recurrence(context.Background(), analytics.Range{}, 0), 1)
	assert.Empty(t, svc.Recurrence(context.Background(), analytics.Range{}, 4))
}

func TestGroupAndCrossTab(t *testing.T) {
	svc := newService(t, scenario()...)
	g := svc.Group(context.Background(), analytics.LastDays(60), rework.FieldStation)
	assert.Equal(t, map[string]int{"IGBT": 3, "CVS": 1}, g.Map())

	ct := svc.CrossTab(context.Background(), analytics.LastDays(60), rework.FieldStation, rework.FieldShift)
	assert.Equal(t, 3, ct.Row("IGBT").Count("A (First)"))
	assert.Equal(t, 4, ct.Total())
}

type failingRepo struct{ rework.Repository }

func (failingRepo) List(context.Context) ([]*rework.Event, error) {
	return nil, errors.New("connection refused")
}

func TestStoreFailureYieldsEmptyViews(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	svc := &Service{Reworks: failingRepo{}, Clock: application.FixedClock{T: now}, Log: zap.New(core)}

	o := svc.Overview(context.Background(), analytics.Range{})
	assert.Zero(t, o.Total)
	assert.Equal(t, analytics.NotAvailable, o.TopStation)
	assert.Empty(t, o.Pareto)
	assert.Empty(t, svc.Insights(context.Background(), analytics.Range{}))
	assert.Equal(t, 2, logs.FilterMessage("load reworks for analytics").Len())
}

func TestDigest(t *testing.T) {
	d := Digest([]analytics.Insight{{Type: "shift", Severity: "high", Message: "m", Detail: "d"}})
	assert.Equal(t, "- [shift/high] m (d)\n", d)
	assert.Empty(t, Digest(nil))
}

func TestParetoLimit(t *testing.T) {
	svc := newService(t, scenario()...)
	ctx := context.Background()

	all := svc.Pareto(ctx, analytics.LastDays(60), rework.FieldDefectType, 0)
	require.Len(t, all, 2)
	assert.Equal(t, "Soldering Defect", all[0].Key)
	assert.Equal(t, 100, all[1].Cumulative)

	top := svc.Pareto(ctx, analytics.LastDays(60), rework.FieldDefectType, 1)
	assert.Equal(t, []analytics.ParetoRow{{Key: "Soldering Defect", Count: 3, Percent: 100, Cumulative: 100}}, top)
}
