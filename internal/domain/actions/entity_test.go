package actions

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bryanwahyu/rcis/internal/domain/catalog"
	"github.com/bryanwahyu/rcis/internal/domain/records"
)

var now = time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)

func TestOverdue(t *testing.T) {
	cases := []struct {
		name   string
		target string
		status string
		want   bool
	}{
		{"past open", "2026-10-17", catalog.StatusOpen, true},
		{"past in progress", "2026-09-01", catalog.StatusInProgress, true},
		{"past closed", "2026-09-01", catalog.StatusClosed, false},
		{"due today", "2026-10-18", catalog.StatusOpen, false},
		{"future", "2026-11-01", catalog.StatusOpen, false},
		{"bad date", "soon", catalog.StatusOpen, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := Action{TargetDate: tc.target, Status: tc.status}
			assert.Equal(t, tc.want, a.Overdue(now))
		})
	}
}

func TestCountStatuses(t *testing.T) {
	list := []*Action{
		{Status: catalog.StatusOpen, TargetDate: "2026-10-01"},
		{Status: catalog.StatusOpen, TargetDate: "2026-12-01"},
		{Status: catalog.StatusInProgress, TargetDate: "2026-10-10"},
		{Status: catalog.StatusClosed, TargetDate: "2026-10-01"},
	}
	assert.Equal(t, StatusCounts{Open: 2, InProgress: 1, Closed: 1, Overdue: 2, Total: 4}, CountStatuses(list, now))
	assert.Equal(t, StatusCounts{}, CountStatuses(nil, now))
}

func TestValidate(t *testing.T) {
	ok := Action{
		DefectType:        "Crimp Issue",
		Description:       "Recalibrate crimp height",
		ResponsiblePerson: "R. Sari",
		TargetDate:        "2026-11-01",
		Status:            catalog.StatusOpen,
	}
	assert.NoError(t, ok.Validate())

	bad := ok
	bad.Status = "Done"
	assert.True(t, errors.Is(bad.Validate(), records.ErrInvalid))

	bad = ok
	bad.TargetDate = "01/11/2026"
	assert.ErrorIs(t, bad.Validate(), records.ErrInvalid)
}

func TestPatchApply(t *testing.T) {
	a := Action{Status: catalog.StatusOpen, Description: "x"}
	closed := catalog.StatusClosed
	Patch{Status: &closed}.Apply(&a)
	assert.Equal(t, catalog.StatusClosed, a.Status)
	assert.Equal(t, "x", a.Description)
}
