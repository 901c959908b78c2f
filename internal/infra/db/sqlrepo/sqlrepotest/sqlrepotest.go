// Package sqlrepotest opens throwaway SQLite-backed stores for tests.
package sqlrepotest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bryanwahyu/rcis/internal/infra/db/sqlite"
	"github.com/bryanwahyu/rcis/internal/infra/db/sqlrepo"
)

// New returns a store in t.TempDir whose clock ticks one second per write,
// starting at start.
func New(t testing.TB, start time.Time) *sqlrepo.Store {
	t.Helper()
	conn, err := sqlite.Connect(context.Background(), filepath.Join(t.TempDir(), "rcis.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	tick := start
	s := sqlrepo.New(conn, sqlrepo.SQLite, sqlrepo.WithClock(func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}))
	t.Cleanup(func() { s.Close() })
	return s
}
