package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/bryanwahyu/rcis/internal/infra/db/sqlrepo"
)

// Connect opens a pooled Postgres handle (lib/pq).
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	return sqlrepo.OpenPool(ctx, "postgres", dsn, sqlrepo.ServerPool)
}

// Schema creates the three record tables when they are missing.
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
  created_at TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_reworks_created ON reworks (created_at)`,
	`CREATE TABLE IF NOT EXISTS actions (
  id TEXT PRIMARY KEY,
  defect_type TEXT NOT NULL,
  description TEXT NOT NULL,
  responsible_person TEXT NOT NULL,
  target_date TEXT NOT NULL,
  status TEXT NOT NULL,
  effectiveness_review TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL
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
  created_at TIMESTAMPTZ NOT NULL
)`,
}
