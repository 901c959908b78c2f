package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bryanwahyu/rcis/internal/application"
	"github.com/bryanwahyu/rcis/internal/application/seed"
	"github.com/bryanwahyu/rcis/internal/domain/records"
	"github.com/bryanwahyu/rcis/internal/infra/db/sqlrepo/sqlrepotest"
)

func TestSeedSnapshotClear(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)
	store := sqlrepotest.New(t, now)
	svc := &Service{
		Admin: store,
		Seeder: &seed.Generator{
			Reworks: store.Reworks(), Actions: store.Actions(), Knowledge: store.Knowledge(),
			Clock: application.FixedClock{T: now}, Log: zap.NewNop(), Seed: 5,
		},
		Role: "Viewer",
		Log:  zap.NewNop(),
	}

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Viewer", snap.Role)
	assert.Zero(t, snap.Total)

	_, err = svc.Seed(ctx)
	require.NoError(t, err)
	snap, err = svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 150, snap.Counts[records.Reworks])
	assert.Equal(t, 10, snap.Counts[records.Actions])
	assert.Equal(t, 6, snap.Counts[records.Knowledge])
	assert.Equal(t, 166, snap.Total)

	removed, err := svc.ClearAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 166, removed)
	snap, err = svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Zero(t, snap.Total)
}
