package sqlrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Pool sizes a database/sql handle.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	PingTimeout time.Duration
}

// ServerPool suits the networked drivers (MySQL, Postgres).
var ServerPool = Pool{MaxOpen: 25, MaxIdle: 10, MaxLifetime: 30 * time.Minute, PingTimeout: 5 * time.Second}

// OpenPool opens driverName with dsn, applies p and pings once. The handle
// is closed again when the ping fails.
func OpenPool(ctx context.Context, driverName, dsn string, p Pool) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	if p.MaxOpen > 0 {
		db.SetMaxOpenConns(p.MaxOpen)
	}
	if p.MaxIdle > 0 {
		db.SetMaxIdleConns(p.MaxIdle)
	}
	if p.MaxLifetime > 0 {
		db.SetConnMaxLifetime(p.MaxLifetime)
	}

	if p.PingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.PingTimeout)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driverName, err)
	}
	return db, nil
}
