package rework

import (
	"strings"
	"time"

	"github.com/bryanwahyu/rcis/internal/domain/catalog"
	"github.com/bryanwahyu/rcis/internal/domain/records"
)

// ID tipe untuk Event
type ID string

// DateLayout is the calendar-date format used for event dates.
const DateLayout = "2006-01-02"

// Event is one logged rework occurrence.
type Event struct {
	ID                 ID        `json:"id"`
	Date               string    `json:"date"`
	Station            string    `json:"station"`
	DefectType         string    `json:"defectType"`
	Quantity           int       `json:"quantity"`
	Shift              string    `json:"shift"`
	OperatorGroup      string    `json:"operatorGroup,omitempty"`
	MaterialBatch      string    `json:"materialBatch,omitempty"`
	Severity           string    `json:"severity"`
	SuspectedRootCause string    `json:"suspectedRootCause,omitempty"`
	Remarks            string    `json:"remarks,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// Qty is the quantity used by every count; anything below 1 counts as 1.
func (e Event) Qty() int {
	if e.Quantity < 1 {
		return 1
	}
	return e.Quantity
}

// Day parses the event date as midnight in loc. Records with a malformed
// date report ok=false and are left out of date-bounded computations.
func (e Event) Day(loc *time.Location) (time.Time, bool) {
	return ParseDay(e.Date, loc)
}

// ParseDay accepts YYYY-MM-DD, or an RFC 3339 timestamp whose calendar
// date is taken as written.
func ParseDay(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	if d, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return d, true
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, loc), true
	}
	return time.Time{}, false
}

// Validate enforces the record invariants before it reaches the store.
func (e Event) Validate() error {
	if _, ok := ParseDay(e.Date, time.UTC); !ok {
		return records.Invalidf("date %q is not a valid YYYY-MM-DD date", e.Date)
	}
	if strings.TrimSpace(e.Station) == "" {
		return records.Invalidf("station is required")
	}
	if strings.TrimSpace(e.DefectType) == "" {
		return records.Invalidf("defectType is required")
	}
	if e.Quantity < 1 {
		return records.Invalidf("quantity must be at least 1, got %d", e.Quantity)
	}
	if !catalog.Contains(catalog.Severities, e.Severity) {
		return records.Invalidf("severity must be one of Low, Medium, High, got %q", e.Severity)
	}
	if !catalog.Contains(catalog.Shifts, e.Shift) {
		return records.Invalidf("unknown shift %q", e.Shift)
	}
	if e.OperatorGroup != "" && !catalog.Contains(catalog.OperatorGroups, e.OperatorGroup) {
		return records.Invalidf("unknown operatorGroup %q", e.OperatorGroup)
	}
	return nil
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Date               *string `json:"date,omitempty"`
	Station            *string `json:"station,omitempty"`
	DefectType         *string `json:"defectType,omitempty"`
	Quantity           *int    `json:"quantity,omitempty"`
	Shift              *string `json:"shift,omitempty"`
	OperatorGroup      *string `json:"operatorGroup,omitempty"`
	MaterialBatch      *string `json:"materialBatch,omitempty"`
	Severity           *string `json:"severity,omitempty"`
	SuspectedRootCause *string `json:"suspectedRootCause,omitempty"`
	Remarks            *string `json:"remarks,omitempty"`
}

// Apply copies the set fields onto e.
func (p Patch) Apply(e *Event) {
	setString(&e.Date, p.Date)
	setString(&e.Station, p.Station)
	setString(&e.DefectType, p.DefectType)
	if p.Quantity != nil {
		e.Quantity = *p.Quantity
	}
	setString(&e.Shift, p.Shift)
	setString(&e.OperatorGroup, p.OperatorGroup)
	setString(&e.MaterialBatch, p.MaterialBatch)
	setString(&e.Severity, p.Severity)
	setString(&e.SuspectedRootCause, p.SuspectedRootCause)
	setString(&e.Remarks, p.Remarks)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
