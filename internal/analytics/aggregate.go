package analytics

import (
	"strconv"
	"strings"
	"time"

	"github.com/bryanwahyu/rcis/internal/domain/catalog"
	"github.com/bryanwahyu/rcis/internal/domain/rework"
)

// NotAvailable is returned by the top-value lookups when there is no data.
const NotAvailable = "N/A"

// TrendMonths is the fixed length of the monthly trend.
const TrendMonths = 6

func valueOrUnknown(e rework.Event, f rework.Field) string {
	v := e.Value(f)
	if strings.TrimSpace(v) == "" {
		return Unknown
	}
	return v
}

// Total sums quantities.
func Total(events []rework.Event) int {
	sum := 0
	for _, e := range events {
		sum += e.Qty()
	}
	return sum
}

// GroupByCount sums quantity per distinct value of field.
func GroupByCount(events []rework.Event, field rework.Field) *Tally {
	t := NewTally()
	for _, e := range events {
		t.Add(valueOrUnknown(e, field), e.Qty())
	}
	return t
}

// CrossTabulate sums quantity per (a, b) value pair.
func CrossTabulate(events []rework.Event, a, b rework.Field) *CrossTab {
	c := NewCrossTab()
	for _, e := range events {
		c.Add(valueOrUnknown(e, a), valueOrUnknown(e, b), e.Qty())
	}
	return c
}

// ParetoRow is one bar of a Pareto chart. Percent and Cumulative are
// relative to the total of the rows returned, not of all events.
type ParetoRow struct {
	Key        string `json:"key"`
	Count      int    `json:"count"`
	Percent    int    `json:"percent"`
	Cumulative int    `json:"cumulative"`
}

// TopN ranks the values of field by count and keeps the first n.
// Cumulative ends at exactly 100 on the last row.
func TopN(events []rework.Event, field rework.Field, n int) []ParetoRow {
	if n <= 0 {
		return []ParetoRow{}
	}
	ranked := GroupByCount(events, field).Ranked()
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	total := 0
	for _, e := range ranked {
		total += e.Count
	}
	rows := make([]ParetoRow, 0, len(ranked))
	running := 0
	for _, e := range ranked {
		running += e.Count
		rows = append(rows, ParetoRow{
			Key:        e.Key,
			Count:      e.Count,
			Percent:    percent(e.Count, total),
			Cumulative: percent(running, total),
		})
	}
	return rows
}

// MonthBucket is one point of the monthly trend.
type MonthBucket struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// MonthlyTrend buckets events into the six calendar months ending with
// the month of now, oldest first. No caller range applies to the trend.
func MonthlyTrend(events []rework.Event, now time.Time) []MonthBucket {
	loc := now.Location()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	out := make([]MonthBucket, 0, TrendMonths)
	for i := TrendMonths - 1; i >= 0; i-- {
		from := first.AddDate(0, -i, 0)
		to := from.AddDate(0, 1, 0)
		count := 0
		for _, e := range events {
			d, ok := e.Day(loc)
			if !ok {
				continue
			}
			if !d.Before(from) && d.Before(to) {
				count += e.Qty()
			}
		}
		out = append(out, MonthBucket{Month: from.Format("Jan 06"), Count: count})
	}
	return out
}

// Share is a catalog entry's count and its percentage of the catalog total.
type Share struct {
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// Breakdown reports every catalog value of field, zero counts included.
// Values outside the catalog are not part of the denominator.
func Breakdown(events []rework.Event, field rework.Field, values []string) []Share {
	counts := GroupByCount(events, field)
	total := 0
	for _, v := range values {
		total += counts.Count(v)
	}
	if total == 0 {
		total = 1
	}
	out := make([]Share, 0, len(values))
	for _, v := range values {
		c := counts.Count(v)
		out = append(out, Share{Label: v, Count: c, Percent: percent(c, total)})
	}
	return out
}

func StationBreakdown(events []rework.Event, stations []string) []Share {
	return Breakdown(events, rework.FieldStation, stations)
}

func SeverityBreakdown(events []rework.Event) []Share {
	return Breakdown(events, rework.FieldSeverity, catalog.Severities)
}

func ShiftBreakdown(events []rework.Event) []Share {
	return Breakdown(events, rework.FieldShift, catalog.Shifts)
}

// Recurrence flags a defect type that reached the threshold inside its
// window. CustomRange is set instead of WindowDays when an explicit
// start/end pair was used.
type Recurrence struct {
	Defect      string `json:"defect"`
	Count       int    `json:"count"`
	WindowDays  int    `json:"windowDays,omitempty"`
	CustomRange bool   `json:"customRange,omitempty"`
}

// WindowLabel reads "7 days" or "selected range".
func (r Recurrence) WindowLabel() string {
	if r.CustomRange {
		return "selected range"
	}
	if r.WindowDays == 1 {
		return "1 day"
	}
	return strconv.Itoa(r.WindowDays) + " days"
}

// DetectRecurrence filters events to window and flags every defect type
// whose count is at least threshold, highest count first.
func DetectRecurrence(events []rework.Event, threshold int, window Range, now time.Time) []Recurrence {
	counts := GroupByCount(Filter(events, window, now), rework.FieldDefectType)
	out := []Recurrence{}
	for _, e := range counts.Ranked() {
		if e.Count < threshold {
			continue
		}
		r := Recurrence{Defect: e.Key, Count: e.Count}
		if window.IsCustom() {
			r.CustomRange = true
		} else {
			r.WindowDays = window.LookbackDays()
		}
		out = append(out, r)
	}
	return out
}

// TopValue is the highest-count value of field, or NotAvailable.
func TopValue(events []rework.Event, field rework.Field) string {
	ranked := GroupByCount(events, field).Ranked()
	if len(ranked) == 0 {
		return NotAvailable
	}
	return ranked[0].Key
}

func TopStation(events []rework.Event) string { return TopValue(events, rework.FieldStation) }

func TopDefect(events []rework.Event) string { return TopValue(events, rework.FieldDefectType) }

// percent rounds part/whole*100 half up. whole must be positive.
func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return (part*200 + whole) / (2 * whole)
}
