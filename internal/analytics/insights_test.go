package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/rcis/internal/domain/rework"
)

func insightFixture() []rework.Event {
	return []rework.Event{
		ev("Routing Defect", "Loom", "High", "B (Second)", "BATCH-2026-003", 1, 1),
		ev("Crimp Issue", "CVS", "Low", "A (First)", "BATCH-2026-002", 1, 1),
		ev("Routing Defect", "Loom", "High", "B (Second)", "BATCH-2026-003", 1, 2),
		ev("Routing Defect", "Loom", "Medium", "B (Second)", "BATCH-2026-003", 1, 3),
		ev("Crimp Issue", "CVS", "Low", "General", "BATCH-2026-002", 1, 5),
		ev("Routing Defect", "IGBT", "Low", "A (First)", "BATCH-2026-001", 1, 4),
	}
}

func TestGenerateInsights(t *testing.T) {
	got := GenerateInsights(insightFixture(), LastDays(RecurrenceDays), testNow)

	want := []Insight{
		{
			Type:     InsightShift,
			Severity: SeverityHigh,
			Message:  "Routing Defect 75% linked to B (Second) Shift",
			Defect:   "Routing Defect",
			Detail:   "3 of 4 occurrences",
		},
		{
			Type:     InsightBatch,
			Severity: SeverityMedium,
			Message:  "Routing Defect spike after BATCH-2026-003 (75%)",
			Defect:   "Routing Defect",
			Detail:   "3 of 4 occurrences",
		},
		{
			Type:     InsightRecurrence,
			Severity: SeverityHigh,
			Message:  "Recurring defect: Routing Defect - 4 times in 7 days",
			Defect:   "Routing Defect",
			Detail:   "Review countermeasure",
		},
	}
	assert.Equal(t, want, got)
}

func TestGenerateInsightsIsStable(t *testing.T) {
	a := GenerateInsights(insightFixture(), LastDays(RecurrenceDays), testNow)
	b := GenerateInsights(insightFixture(), LastDays(RecurrenceDays), testNow)
	assert.Equal(t, a, b)
}

func TestBatchRuleNeedsThreeOccurrences(t *testing.T) {
	events := []rework.Event{
		ev("Label Error", "CVS", "Low", "A (First)", "BATCH-2026-004", 1, 1),
		ev("Label Error", "CVS", "Low", "B (Second)", "BATCH-2026-004", 1, 1),
	}
	for _, in := range GenerateInsights(events, LastDays(RecurrenceDays), testNow) {
		assert.NotEqual(t, InsightBatch, in.Type)
	}

	// quantity counts toward the raw batch count
	events[0].Quantity = 2
	var batch []Insight
	for _, in := range GenerateInsights(events, LastDays(RecurrenceDays), testNow) {
		if in.Type == InsightBatch {
			batch = append(batch, in)
		}
	}
	require.Len(t, batch, 1)
	assert.Equal(t, "3 of 3 occurrences", batch[0].Detail)
}

func TestShiftRuleBelowThreshold(t *testing.T) {
	events := []rework.Event{
		ev("Wiring Error", "CVS", "Low", "A (First)", "", 1, 1),
		ev("Wiring Error", "CVS", "Low", "B (Second)", "", 1, 1),
	}
	for _, in := range GenerateInsights(events, LastDays(RecurrenceDays), testNow) {
		assert.NotEqual(t, InsightShift, in.Type)
	}
}

func TestRecurrenceInsightForCustomRange(t *testing.T) {
	r := Between(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC))
	var rec []Insight
	for _, in := range GenerateInsights(insightFixture(), r, testNow) {
		if in.Type == InsightRecurrence {
			rec = append(rec, in)
		}
	}
	require.Len(t, rec, 1)
	assert.Equal(t, "Recurring defect: Routing Defect - 4 times in selected range", rec[0].Message)
}
