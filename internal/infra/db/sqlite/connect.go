// Package sqlite opens the embedded single-file store used for local runs
// and tests. The driver is pure Go, so no cgo toolchain is needed.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/bryanwahyu/rcis/internal/infra/db/sqlrepo"
)

// Connect opens path (":memory:" works too) and applies Schema.
func Connect(ctx context.Context, path string) (*sql.DB, error) {
	// SQLite allows a single writer.
	db, err := sqlrepo.OpenPool(ctx, "sqlite", path, sqlrepo.Pool{MaxOpen: 1})
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite pragma: %w", err)
	}
	for _, stmt := range Schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite schema: %w", err)
		}
	}
	return db, nil
}

var Schema = []string{
	`CREATE TABLE IF NOT EXISTS reworks (
  id TEXT PRIMARY KEY,
  event_date TEXT NOT NULL,
  station TEXT NOT NULL,
  defect_type TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  shift TEXT NOT NULL DEFAULT '',
  operator_group TEXT NOT NULL DEFAULT '',
  material_batch TEXT NOT NULL DEFAULT '',
  severity TEXT NOT NULL DEFAULT '',
  suspected_root_cause TEXT NOT NULL DEFAULT '',
  remarks TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS actions (
  id TEXT PRIMARY KEY,
  defect_type TEXT NOT NULL,
  description TEXT NOT NULL,
  responsible_person TEXT NOT NULL,
  target_date TEXT NOT NULL,
  status TEXT NOT NULL,
  effectiveness_review TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS knowledge (
  id TEXT PRIMARY KEY,
  problem TEXT NOT NULL,
  root_cause TEXT NOT NULL,
  corrective_action TEXT NOT NULL,
  before_results TEXT NOT NULL DEFAULT '',
  after_results TEXT NOT NULL DEFAULT '',
  station TEXT NOT NULL DEFAULT '',
  defect_type TEXT NOT NULL DEFAULT '',
  date_closed TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
)`,
}
