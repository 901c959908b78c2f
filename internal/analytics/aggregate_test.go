package analytics

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/rcis/internal/domain/catalog"
	"github.com/bryanwahyu/rcis/internal/domain/rework"
)

func TestScenarioThirtyDayRange(t *testing.T) {
	events := Filter(scenarioEvents(), LastDays(30), testNow)

	counts := GroupByCount(events, rework.FieldDefectType)
	assert.Equal(t, map[string]int{"Soldering Defect": 3}, counts.Map())
	assert.Equal(t, "Soldering Defect", TopDefect(events))
	assert.Equal(t, "IGBT", TopStation(events))

	hm := RiskHeatMap(events, catalog.Stations, catalog.Severities)
	assert.Equal(t, 3, hm.Cell("IGBT", "High"))
	assert.Equal(t, 0, hm.Cell("IGBT", "Low"))
	assert.Equal(t, 0, hm.Cell("IGBT", "Medium"))
	assert.Equal(t, 0, hm.Cell("CVS", "Low"))
	assert.Equal(t, 0, hm.Cell("CVS", "High"))
	assert.Equal(t, 3, hm.Total())
}

func TestScenarioRecurrence(t *testing.T) {
	got := DetectRecurrence(scenarioEvents(), 3, LastDays(7), testNow)
	assert.Equal(t, []Recurrence{{Defect: "Soldering Defect", Count: 3, WindowDays: 7}}, got)
}

func TestGroupByCountSumsQuantity(t *testing.T) {
	events := []rework.Event{
		ev("Crimp Issue", "Loom", "High", "General", "", 4, 0),
		ev("Crimp Issue", "", "Low", "General", "", 0, 0),
		ev("Label Error", "CVS", "", "General", "", 2, 0),
	}
	fields := []rework.Field{
		rework.FieldStation, rework.FieldDefectType, rework.FieldSeverity,
		rework.FieldShift, rework.FieldMaterialBatch, rework.FieldOperatorGroup,
	}
	for _, f := range fields {
		t.Run(string(f), func(t *testing.T) {
			assert.Equal(t, Total(events), GroupByCount(events, f).Total())
		})
	}

	stations := GroupByCount(events, rework.FieldStation)
	assert.Equal(t, 1, stations.Count(Unknown), "quantity 0 counts as 1")
	assert.Equal(t, []string{"Loom", Unknown, "CVS"}, stations.Keys())
}

func TestCrossTabulate(t *testing.T) {
	events := []rework.Event{
		ev("Routing Defect", "Loom", "High", "B (Second)", "BATCH-2026-001", 2, 1),
		ev("Routing Defect", "Loom", "High", "A (First)", "BATCH-2026-001", 1, 2),
		ev("Crimp Issue", "CVS", "Low", "B (Second)", "", 1, 3),
	}
	ct := CrossTabulate(events, rework.FieldDefectType, rework.FieldShift)
	assert.Equal(t, []string{"Routing Defect", "Crimp Issue"}, ct.Keys())
	assert.Equal(t, 2, ct.Row("Routing Defect").Count("B (Second)"))
	assert.Equal(t, 1, ct.Row("Routing Defect").Count("A (First)"))
	assert.Equal(t, 0, ct.Row("Missing").Total())
	assert.Equal(t, Total(events), ct.Total())

	batches := CrossTabulate(events, rework.FieldDefectType, rework.FieldMaterialBatch)
	assert.Equal(t, 1, batches.Row("Crimp Issue").Count(Unknown))

	b, err := json.Marshal(ct)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Routing Defect":{"B (Second)":2,"A (First)":1},"Crimp Issue":{"B (Second)":1}}`, string(b))
}

func TestTopN(t *testing.T) {
	var events []rework.Event
	add := func(defect string, qty int) {
		events = append(events, ev(defect, "Loom", "Low", "General", "", qty, 0))
	}
	add("A", 5)
	add("B", 3)
	add("C", 1)
	add("D", 1)
	add("E", 7)
	add("F", 2)

	rows := TopN(events, rework.FieldDefectType, 5)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"E", "A", "B", "F", "C"}, keysOf(rows))

	prev := 0
	for _, r := range rows {
		assert.GreaterOrEqual(t, r.Cumulative, prev)
		prev = r.Cumulative
	}
	assert.Equal(t, 100, rows[len(rows)-1].Cumulative)
	// total of top five is 18
	assert.Equal(t, 39, rows[0].Percent)
	assert.Equal(t, 39, rows[0].Cumulative)
	assert.Equal(t, 67, rows[1].Cumulative)
}

func TestTopNEdges(t *testing.T) {
	assert.Empty(t, TopN(nil, rework.FieldDefectType, 5))
	assert.Empty(t, TopN(scenarioEvents(), rework.FieldDefectType, 0))

	rows := TopN(scenarioEvents(), rework.FieldDefectType, 10)
	require.Len(t, rows, 2)
	assert.Equal(t, 100, rows[1].Cumulative)
}

func TestPercentRoundsHalfUp(t *testing.T) {
	assert.Equal(t, 50, percent(1, 2))
	assert.Equal(t, 33, percent(1, 3))
	assert.Equal(t, 67, percent(2, 3))
	assert.Equal(t, 13, percent(1, 8)) // 12.5
	assert.Equal(t, 0, percent(1, 0))
}

func TestMonthlyTrend(t *testing.T) {
	events := []rework.Event{
		{Date: "2026-10-01", Quantity: 2},
		{Date: "2026-10-31", Quantity: 1},
		{Date: "2026-05-31", Quantity: 4},
		{Date: "2026-05-01", Quantity: 1},
		{Date: "2026-04-30", Quantity: 9}, // older than six months
		{Date: "not a date", Quantity: 9},
	}
	trend := MonthlyTrend(events, testNow)
	require.Len(t, trend, TrendMonths)
	assert.Equal(t, MonthBucket{Month: "May 26", Count: 5}, trend[0])
	assert.Equal(t, MonthBucket{Month: "Oct 26", Count: 3}, trend[5])
	for _, b := range trend[1:5] {
		assert.Zero(t, b.Count)
	}
}

func TestMonthlyTrendAcrossYearBoundary(t *testing.T) {
	now := time.Date(2027, time.February, 3, 8, 0, 0, 0, time.UTC)
	trend := MonthlyTrend(nil, now)
	var labels []string
	for _, b := range trend {
		labels = append(labels, b.Month)
	}
	assert.Equal(t, []string{"Sep 26", "Oct 26", "Nov 26", "Dec 26", "Jan 27", "Feb 27"}, labels)
}

func TestStationBreakdown(t *testing.T) {
	events := []rework.Event{
		ev("X", "IGBT", "High", "General", "", 3, 0),
		ev("X", "Loom", "High", "General", "", 1, 0),
		ev("X", "Paint Shop", "High", "General", "", 4, 0), // not in catalog
	}
	got := StationBreakdown(events, catalog.Stations)
	require.Len(t, got, len(catalog.Stations))
	assert.Equal(t, Share{Label: "CVS", Count: 0, Percent: 0}, got[0])
	assert.Equal(t, Share{Label: "Loom", Count: 1, Percent: 25}, got[1])
	assert.Equal(t, Share{Label: "IGBT", Count: 3, Percent: 75}, got[2])
}

func TestBreakdownsOnEmptyInput(t *testing.T) {
	for _, shares := range [][]Share{
		StationBreakdown(nil, catalog.Stations),
		SeverityBreakdown(nil),
		ShiftBreakdown(nil),
	} {
		require.NotEmpty(t, shares)
		for _, s := range shares {
			assert.Zero(t, s.Count)
			assert.Zero(t, s.Percent)
		}
	}
	assert.Len(t, SeverityBreakdown(nil), 3)
	assert.Len(t, ShiftBreakdown(nil), 3)
	assert.Equal(t, 0, GroupByCount(nil, rework.FieldStation).Len())
	assert.Equal(t, 0, CrossTabulate(nil, rework.FieldDefectType, rework.FieldShift).Len())
	assert.Equal(t, NotAvailable, TopStation(nil))
	assert.Equal(t, NotAvailable, TopDefect(nil))
	assert.Empty(t, DetectRecurrence(nil, 1, LastDays(7), testNow))
	assert.Empty(t, GenerateInsights(nil, LastDays(7), testNow))
}

func TestRiskHeatMapIgnoresOutOfCatalog(t *testing.T) {
	events := []rework.Event{
		ev("X", "IGBT", "High", "General", "", 2, 0),
		ev("X", "Loom", "Medium", "General", "", 5, 0),
		ev("X", "Paint Shop", "High", "General", "", 4, 0),
		ev("X", "Loom", "Catastrophic", "General", "", 4, 0),
		ev("X", "", "", "General", "", 4, 0),
	}
	hm := RiskHeatMap(events, catalog.Stations, catalog.Severities)
	assert.Equal(t, 7, hm.Total())
	require.Len(t, hm.Cells, len(catalog.Stations))
	for _, row := range hm.Cells {
		assert.Len(t, row, len(catalog.Severities))
	}
	assert.Equal(t, 5, hm.MaxCell())

	assert.Equal(t, []Entry{{"Low", 0}, {"Medium", 5}, {"High", 2}}, hm.SeverityTotals())
	risks := hm.StationRisks()
	assert.Equal(t, StationRisk{Station: "CVS", Total: 0, Risk: RiskNone}, risks[0])
	assert.Equal(t, StationRisk{Station: "Loom", Total: 5, Risk: RiskModerate}, risks[1]) // 5/15
	assert.Equal(t, StationRisk{Station: "IGBT", Total: 2, Risk: RiskLow}, risks[2])      // 2/15
}

func TestRiskLevel(t *testing.T) {
	cases := []struct {
		value, max int
		want       string
	}{
		{0, 10, RiskNone},
		{1, 10, RiskLow},
		{3, 10, RiskModerate},
		{5, 10, RiskElevated},
		{7, 10, RiskHigh},
		{10, 10, RiskCritical},
		{4, 0, RiskLow},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, RiskLevel(c.value, c.max), "RiskLevel(%d, %d)", c.value, c.max)
	}
}

func TestDetectRecurrence(t *testing.T) {
	events := []rework.Event{
		ev("Crimp Issue", "Loom", "Low", "General", "", 1, 1),
		ev("Crimp Issue", "Loom", "Low", "General", "", 2, 2),
		ev("Label Error", "Loom", "Low", "General", "", 2, 3),
		ev("Torque Defect", "Loom", "Low", "General", "", 5, 6),
		ev("Torque Defect", "Loom", "Low", "General", "", 5, 20), // outside 7 days
	}

	got := DetectRecurrence(events, 3, LastDays(7), testNow)
	assert.Equal(t, []Recurrence{
		{Defect: "Torque Defect", Count: 5, WindowDays: 7},
		{Defect: "Crimp Issue", Count: 3, WindowDays: 7},
	}, got)

	all := DetectRecurrence(events, 1, LastDays(7), testNow)
	assert.Len(t, all, 3, "threshold 1 flags every defect present")

	custom := DetectRecurrence(events, 3, Between(testNow.AddDate(0, 0, -30), testNow), testNow)
	require.NotEmpty(t, custom)
	assert.True(t, custom[0].CustomRange)
	assert.Zero(t, custom[0].WindowDays)
	assert.Equal(t, "selected range", custom[0].WindowLabel())
	assert.Equal(t, 10, custom[0].Count)
}

func TestTopValueTieKeepsFirstSeen(t *testing.T) {
	events := []rework.Event{
		ev("Label Error", "Testing", "Low", "General", "", 2, 0),
		ev("Crimp Issue", "CVS", "Low", "General", "", 2, 0),
	}
	assert.Equal(t, "Label Error", TopDefect(events))
	assert.Equal(t, "Testing", TopStation(events))
}

func TestTallyJSONKeepsOrder(t *testing.T) {
	tl := NewTally()
	tl.Add("b", 1)
	tl.Add("a", 2)
	tl.Add("b", 1)
	b, err := json.Marshal(tl)
	require.NoError(t, err)
	assert.Equal(t, `{"b":2,"a":2}`, string(b))
	assert.Equal(t, []Entry{{"b", 2}, {"a", 2}}, tl.Ranked())
}

func keysOf(rows []ParetoRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Key
	}
	return out
}
