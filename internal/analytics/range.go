// Package analytics holds the defect-pattern computations behind the
// dashboard: date-window filtering, grouped counts, Pareto ranking, heat
// map, recurrence detection and insight generation.
//
// Every function here is pure and works on an in-memory snapshot of the
// rework log. Counts always sum each event's quantity, never the number
// of records.
package analytics

import (
	"strconv"
	"strings"
	"time"

	"github.com/bryanwahyu/rcis/internal/domain/records"
	"github.com/bryanwahyu/rcis/internal/domain/rework"
)

// DefaultLookbackDays applies when a caller gives no range at all.
const DefaultLookbackDays = 30

// Range selects events either by a trailing day count or by an explicit
// calendar-date pair. Start and End are only honoured when both are set;
// their time-of-day is ignored.
type Range struct {
	Days  int
	Start time.Time
	End   time.Time
}

// LastDays is a trailing window ending now.
func LastDays(n int) Range { return Range{Days: n} }

// Between is an explicit window covering both days in full.
func Between(start, end time.Time) Range { return Range{Start: start, End: end} }

// IsCustom reports whether the explicit start/end pair is in effect.
func (r Range) IsCustom() bool { return !r.Start.IsZero() && !r.End.IsZero() }

// LookbackDays is the day count a non-custom range resolves to.
func (r Range) LookbackDays() int {
	if r.Days > 0 {
		return r.Days
	}
	return DefaultLookbackDays
}

// ParseRange reads a range from query or flag values. start and end must
// come together as YYYY-MM-DD and take precedence over days. All empty is
// the zero Range.
func ParseRange(days, start, end string, loc *time.Location) (Range, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start != "" || end != "" {
		if start == "" || end == "" {
			return Range{}, records.Invalidf("start and end must be given together")
		}
		s, err := time.ParseInLocation(rework.DateLayout, start, loc)
		if err != nil {
			return Range{}, records.Invalidf("start %q is not a YYYY-MM-DD date", start)
		}
		e, err := time.ParseInLocation(rework.DateLayout, end, loc)
		if err != nil {
			return Range{}, records.Invalidf("end %q is not a YYYY-MM-DD date", end)
		}
		if e.Before(s) {
			return Range{}, records.Invalidf("end %s is before start %s", end, start)
		}
		return Between(s, e), nil
	}
	if days = strings.TrimSpace(days); days != "" {
		n, err := strconv.Atoi(days)
		if err != nil || n < 1 {
			return Range{}, records.Invalidf("days must be a positive integer, got %q", days)
		}
		return LastDays(n), nil
	}
	return Range{}, nil
}

// Window is a resolved, inclusive time interval.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Resolve turns r into concrete bounds, using now for "today" and for the
// location calendar dates are interpreted in.
func (r Range) Resolve(now time.Time) Window {
	loc := now.Location()
	if r.IsCustom() {
		start := startOfDay(r.Start, loc)
		end := startOfDay(r.End, loc).AddDate(0, 0, 1).Add(-time.Millisecond)
		return Window{Start: start, End: end}
	}
	start := startOfDay(now, loc).AddDate(0, 0, -r.LookbackDays())
	return Window{Start: start, End: now}
}

// Filter returns the events whose date falls inside r. The result shares
// no backing array with events. Events with unparseable dates are dropped.
func Filter(events []rework.Event, r Range, now time.Time) []rework.Event {
	w := r.Resolve(now)
	out := make([]rework.Event, 0, len(events))
	for _, e := range events {
		d, ok := e.Day(now.Location())
		if !ok {
			continue
		}
		if w.Contains(d) {
			out = append(out, e)
		}
	}
	return out
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
