package mysql

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"

	"github.com/bryanwahyu/rcis/internal/infra/db/sqlrepo"
)

// Connect opens a pooled MySQL handle. The DSN must carry parseTime=true
// so DATETIME columns scan into time.Time.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	return sqlrepo.OpenPool(ctx, "mysql", dsn, sqlrepo.ServerPool)
}
