package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/rcis/internal/domain/records"
	"github.com/bryanwahyu/rcis/internal/domain/rework"
)

func TestRangeResolve(t *testing.T) {
	t.Run("zero range defaults to 30 days", func(t *testing.T) {
		w := Range{}.Resolve(testNow)
		assert.Equal(t, time.Date(2026, time.September, 18, 0, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, testNow, w.End)
	})

	t.Run("day lookback starts at midnight", func(t *testing.T) {
		w := LastDays(7).Resolve(testNow)
		assert.Equal(t, time.Date(2026, time.October, 11, 0, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, testNow, w.End)
	})

	t.Run("custom range covers the whole end day", func(t *testing.T) {
		start := time.Date(2026, time.October, 1, 9, 0, 0, 0, time.UTC)
		end := time.Date(2026, time.October, 5, 0, 0, 0, 0, time.UTC)
		w := Between(start, end).Resolve(testNow)
		assert.Equal(t, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, time.Date(2026, time.October, 5, 23, 59, 59, 999_000_000, time.UTC), w.End)
	})

	t.Run("start without end falls back to days", func(t *testing.T) {
		r := Range{Days: 5, Start: testNow}
		assert.False(t, r.IsCustom())
		assert.Equal(t, time.Date(2026, time.October, 13, 0, 0, 0, 0, time.UTC), r.Resolve(testNow).Start)
	})
}

func TestFilterBounds(t *testing.T) {
	events := []rework.Event{
		{ID: "today", Date: daysAgo(0)},
		{ID: "edge", Date: daysAgo(30)},
		{ID: "outside", Date: daysAgo(31)},
		{ID: "future", Date: daysAgo(-1)},
		{ID: "garbage", Date: "18/10/2026"},
		{ID: "empty", Date: ""},
	}

	got := Filter(events, Range{}, testNow)
	require.Len(t, got, 2)
	assert.Equal(t, rework.ID("today"), got[0].ID)
	assert.Equal(t, rework.ID("edge"), got[1].ID)

	w := Range{}.Resolve(testNow)
	for _, e := range got {
		d, ok := e.Day(time.UTC)
		require.True(t, ok)
		assert.True(t, w.Contains(d), "event %s outside window", e.ID)
	}
}

func TestFilterCustomRangeInclusive(t *testing.T) {
	events := []rework.Event{
		{ID: "before", Date: "2026-09-30"},
		{ID: "first", Date: "2026-10-01"},
		{ID: "last", Date: "2026-10-05"},
		{ID: "after", Date: "2026-10-06"},
	}
	r := Between(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC))

	var ids []rework.ID
	for _, e := range Filter(events, r, testNow) {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []rework.ID{"first", "last"}, ids)
}

func TestFilterIsSubsetAndComplementary(t *testing.T) {
	events := scenarioEvents()
	inside := Filter(events, LastDays(30), testNow)
	outside := Filter(events, Between(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), testNow.AddDate(0, 0, -31)), testNow)

	assert.Len(t, inside, 2)
	assert.Len(t, outside, 1)
	assert.Equal(t, len(events), len(inside)+len(outside))
	assert.Equal(t, rework.ID("3"), outside[0].ID)
}

func TestFilterAcceptsTimestampDates(t *testing.T) {
	events := []rework.Event{{ID: "ts", Date: "2026-10-17T22:15:00Z"}}
	assert.Len(t, Filter(events, LastDays(1), testNow), 1)
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("", "", "", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, Range{}, r)

	r, err = ParseRange("7", "", "", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, LastDays(7), r)

	r, err = ParseRange("7", "2026-10-01", "2026-10-05", time.UTC)
	require.NoError(t, err)
	assert.True(t, r.IsCustom())
	assert.Equal(t, time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC), r.End)

	for _, tc := range [][3]string{
		{"0", "", ""},
		{"abc", "", ""},
		{"", "2026-10-01", ""},
		{"", "01/10/2026", "2026-10-05"},
		{"", "2026-10-05", "2026-10-01"},
	} {
		_, err := ParseRange(tc[0], tc[1], tc[2], time.UTC)
		assert.ErrorIs(t, err, records.ErrInvalid, "%v", tc)
	}
}
