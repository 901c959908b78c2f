package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bryanwahyu/rcis/internal/config"
	"github.com/bryanwahyu/rcis/internal/domain/records"
)

func TestOpenSQLite(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = filepath.Join(t.TempDir(), "rcis.db")

	store, err := Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Ping(context.Background()))
	n, err := store.Count(context.Background(), records.Reworks)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Driver = "oracle"
	_, err := Open(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
