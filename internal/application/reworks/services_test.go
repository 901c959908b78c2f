package reworks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/rcis/internal/application"
	"github.com/bryanwahyu/rcis/internal/domain/catalog"
	"github.com/bryanwahyu/rcis/internal/domain/records"
	"github.com/bryanwahyu/rcis/internal/domain/rework"
	"github.com/bryanwahyu/rcis/internal/infra/db/sqlrepo/sqlrepotest"
)

var now = time.Date(2026, time.October, 18, 10, 0, 0, 0, time.UTC)

func newService(t *testing.T) *Service {
	store := sqlrepotest.New(t, now)
	return &Service{Repo: store.Reworks(), Clock: application.FixedClock{T: now}}
}

func TestCreateDefaults(t *testing.T) {
	svc := newService(t)
	e, err := svc.Create(context.Background(), CreateCommand{
		Station:    catalog.Custom("  Line 7 "),
		DefectType: catalog.Known("Crimp Issue"),
		Shift:      "General",
		Severity:   "Medium",
	})
	require.NoError(t, err)
	assert.Equal(t, "Line 7", e.Station)
	assert.Equal(t, "2026-10-18", e.Date)
	assert.Equal(t, 1, e.Quantity)
	assert.NotEmpty(t, e.ID)
}

func TestCreateRejects(t *testing.T) {
	svc := newService(t)
	base := CreateCommand{
		Station:    catalog.Known("IGBT"),
		DefectType: catalog.Known("Soldering Defect"),
		Shift:      "A (First)",
		Severity:   "High",
	}

	unknown := base
	unknown.Station = catalog.Known("Line 7")
	_, err := svc.Create(context.Background(), unknown)
	assert.ErrorIs(t, err, records.ErrInvalid)

	negative := base
	negative.Quantity = -2
	_, err = svc.Create(context.Background(), negative)
	assert.ErrorIs(t, err, records.ErrInvalid)

	blank := base
	blank.DefectType = catalog.Custom(" ")
	_, err = svc.Create(context.Background(), blank)
	assert.ErrorIs(t, err, records.ErrInvalid)
}

func TestListAndFilter(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	for _, c := range []CreateCommand{
		{Station: catalog.Known("IGBT"), DefectType: catalog.Known("Soldering Defect"), Shift: "A (First)", Severity: "High", Remarks: "cold joint"},
		{Station: catalog.Known("CVS"), DefectType: catalog.Known("Wiring Error"), Shift: "B (Second)", Severity: "Low"},
	} {
		_, err := svc.Create(ctx, c)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, rework.Query{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Wiring Error", all[0].DefectType, "newest first")

	hits, err := svc.List(ctx, rework.Query{Search: "COLD"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "IGBT", hits[0].Station)

	none, err := svc.List(ctx, rework.Query{Station: "Loom"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	e, err := svc.Create(ctx, CreateCommand{
		Station: catalog.Known("Loom"), DefectType: catalog.Known("Routing Defect"),
		Shift: "A (First)", Severity: "Low", Quantity: 2,
	})
	require.NoError(t, err)

	bad := "Critical"
	_, err = svc.Update(ctx, e.ID, rework.Patch{Severity: &bad})
	assert.ErrorIs(t, err, records.ErrInvalid)

	high := "High"
	u, err := svc.Update(ctx, e.ID, rework.Patch{Severity: &high})
	require.NoError(t, err)
	assert.Equal(t, "High", u.Severity)
	assert.Equal(t, 2, u.Quantity)

	require.NoError(t, svc.Delete(ctx, e.ID))
	assert.ErrorIs(t, svc.Delete(ctx, e.ID), records.ErrNotFound)
	_, err = svc.Update(ctx, e.ID, rework.Patch{Severity: &high})
	assert.ErrorIs(t, err, records.ErrNotFound)
}
