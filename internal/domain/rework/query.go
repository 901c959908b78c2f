package rework

import "strings"

// Query filters the rework log the way the log page does: a free-text
// search plus exact matches on the dropdown filters.
type Query struct {
	Search     string
	Station    string
	DefectType string
	Severity   string
	Shift      string
}

func (q Query) IsZero() bool { return q == Query{} }

func (q Query) Matches(e *Event) bool {
	if s := strings.ToLower(strings.TrimSpace(q.Search)); s != "" {
		hit := containsFold(e.DefectType, s) ||
			containsFold(e.Station, s) ||
			containsFold(e.SuspectedRootCause, s) ||
			containsFold(e.MaterialBatch, s) ||
			containsFold(e.Remarks, s) ||
			strings.Contains(e.Date, s)
		if !hit {
			return false
		}
	}
	if q.Station != "" && e.Station != q.Station {
		return false
	}
	if q.DefectType != "" && e.DefectType != q.DefectType {
		return false
	}
	if q.Severity != "" && e.Severity != q.Severity {
		return false
	}
	if q.Shift != "" && e.Shift != q.Shift {
		return false
	}
	return true
}

func containsFold(field, lowered string) bool {
	return strings.Contains(strings.ToLower(field), lowered)
}
