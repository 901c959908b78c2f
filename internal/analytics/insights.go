package analytics

import (
	"fmt"
	"time"

	"github.com/bryanwahyu/rcis/internal/domain/rework"
)

// Insight types
const (
	InsightShift      = "shift"
	InsightBatch      = "batch"
	InsightRecurrence = "recurrence"
)

// Insight severities
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
)

// Rule thresholds.
const (
	ShiftSharePercent   = 60
	BatchSharePercent   = 40
	BatchMinCount       = 3
	RecurrenceThreshold = 3
	RecurrenceDays      = 7
)

// Insight is one pattern alert.
type Insight struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Defect   string `json:"defect"`
	Detail   string `json:"detail"`
}

// GenerateInsights runs the three pattern rules over events: shift
// concentration, batch correlation, then recurrence inside
// recurrenceWindow. Output order is rule order, and within a rule the
// first-seen order of defect types.
func GenerateInsights(events []rework.Event, recurrenceWindow Range, now time.Time) []Insight {
	out := []Insight{}
	out = append(out, shiftInsights(events)...)
	out = append(out, batchInsights(events)...)
	for _, r := range DetectRecurrence(events, RecurrenceThreshold, recurrenceWindow, now) {
		out = append(out, Insight{
			Type:     InsightRecurrence,
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("Recurring defect: %s - %d times in %s", r.Defect, r.Count, r.WindowLabel()),
			Defect:   r.Defect,
			Detail:   "Review countermeasure",
		})
	}
	return out
}

func shiftInsights(events []rework.Event) []Insight {
	var out []Insight
	byShift := CrossTabulate(events, rework.FieldDefectType, rework.FieldShift)
	for _, defect := range byShift.Keys() {
		shifts := byShift.Row(defect)
		total := shifts.Total()
		for _, s := range shifts.Entries() {
			pct := percent(s.Count, total)
			if pct < ShiftSharePercent {
				continue
			}
			out = append(out, Insight{
				Type:     InsightShift,
				Severity: SeverityHigh,
				Message:  fmt.Sprintf("%s %d%% linked to %s Shift", defect, pct, s.Key),
				Defect:   defect,
				Detail:   fmt.Sprintf("%d of %d occurrences", s.Count, total),
			})
		}
	}
	return out
}

func batchInsights(events []rework.Event) []Insight {
	var out []Insight
	byBatch := CrossTabulate(events, rework.FieldDefectType, rework.FieldMaterialBatch)
	for _, defect := range byBatch.Keys() {
		batches := byBatch.Row(defect)
		ranked := batches.Ranked()
		if len(ranked) == 0 {
			continue
		}
		top := ranked[0]
		total := batches.Total()
		pct := percent(top.Count, total)
		if pct < BatchSharePercent || top.Count < BatchMinCount {
			continue
		}
		out = append(out, Insight{
			Type:     InsightBatch,
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("%s spike after %s (%d%%)", defect, top.Key, pct),
			Defect:   defect,
			Detail:   fmt.Sprintf("%d of %d occurrences", top.Count, total),
		})
	}
	return out
}
