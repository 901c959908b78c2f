// Package db picks the SQL backend named in config and returns a ready
// record store.
package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bryanwahyu/rcis/internal/config"
	"github.com/bryanwahyu/rcis/internal/infra/db/mysql"
	"github.com/bryanwahyu/rcis/internal/infra/db/postgres"
	"github.com/bryanwahyu/rcis/internal/infra/db/sqlite"
	"github.com/bryanwahyu/rcis/internal/infra/db/sqlrepo"
)

func Open(ctx context.Context, cfg *config.Config, log *zap.Logger, opts ...sqlrepo.Option) (*sqlrepo.Store, error) {
	switch cfg.Database.Driver {
	case config.DriverMySQL:
		conn, err := mysql.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, fmt.Errorf("connect mysql: %w", err)
		}
		return prepare(ctx, sqlrepo.New(conn, sqlrepo.MySQL, opts...), mysql.Schema, cfg, log)
	case config.DriverPostgres:
		conn, err := postgres.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return prepare(ctx, sqlrepo.New(conn, sqlrepo.Postgres, opts...), postgres.Schema, cfg, log)
	case config.DriverSQLite:
		conn, err := sqlite.Connect(ctx, cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.Database.Path, err)
		}
		log.Info("database ready", zap.String("driver", "sqlite"), zap.String("path", cfg.Database.Path))
		return sqlrepo.New(conn, sqlrepo.SQLite, opts...), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
}

func prepare(ctx context.Context, s *sqlrepo.Store, ddl []string, cfg *config.Config, log *zap.Logger) (*sqlrepo.Store, error) {
	if cfg.Database.AutoCreate {
		if err := s.Migrate(ctx, ddl); err != nil {
			s.Close()
			return nil, err
		}
	}
	log.Info("database ready",
		zap.String("driver", s.Dialect().Name),
		zap.String("host", cfg.Database.Host),
		zap.String("name", cfg.Database.Name),
		zap.Bool("autoCreate", cfg.Database.AutoCreate),
	)
	return s, nil
}
