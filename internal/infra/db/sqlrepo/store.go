// Package sqlrepo implements the record store ports on database/sql. The
// same statements run against MySQL, Postgres and SQLite; only placeholder
// syntax differs between them.
package sqlrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/rcis/internal/domain/records"
)

// Dialect captures the placeholder style of a SQL backend.
type Dialect struct {
	Name     string
	Numbered bool // $1, $2 ... instead of ?
}

var (
	MySQL    = Dialect{Name: "mysql"}
	Postgres = Dialect{Name: "postgres", Numbered: true}
	SQLite   = Dialect{Name: "sqlite"}
)

// Rebind rewrites ? placeholders for dialects that number them.
func (d Dialect) Rebind(q string) string {
	if !d.Numbered {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Store owns the connection and hands out one repository per collection.
type Store struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
	newID   func() string
}

type Option func(*Store)

// WithClock overrides the creation/update timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs overrides id generation.
func WithIDs(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func New(db *sql.DB, d Dialect, opts ...Option) *Store {
	s := &Store{
		db:      db,
		dialect: d,
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) DB() *sql.DB      { return s.db }
func (s *Store) Dialect() Dialect { return s.dialect }
func (s *Store) Close() error     { return s.db.Close() }
func (s *Store) stamp() time.Time { return s.now().UTC() }

func (s *Store) Reworks() *ReworkRepository      { return &ReworkRepository{s: s} }
func (s *Store) Actions() *ActionRepository      { return &ActionRepository{s: s} }
func (s *Store) Knowledge() *KnowledgeRepository { return &KnowledgeRepository{s: s} }

func (s *Store) exec(ctx context.Context, q string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.dialect.Rebind(q), args...)
}

func (s *Store) query(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.dialect.Rebind(q), args...)
}

func (s *Store) queryRow(ctx context.Context, q string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.dialect.Rebind(q), args...)
}

func table(c records.Collection) (string, error) {
	switch c {
	case records.Reworks:
		return "reworks", nil
	case records.Actions:
		return "actions", nil
	case records.Knowledge:
		return "knowledge", nil
	}
	return "", records.Invalidf("unknown collection %q", c)
}

// Count returns the number of rows in a collection.
func (s *Store) Count(ctx context.Context, c records.Collection) (int, error) {
	t, err := table(c)
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.queryRow(ctx, "SELECT COUNT(*) FROM "+t).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", t, err)
	}
	return n, nil
}

// Clear deletes every row of a collection.
func (s *Store) Clear(ctx context.Context, c records.Collection) error {
	t, err := table(c)
	if err != nil {
		return err
	}
	if _, err := s.exec(ctx, "DELETE FROM "+t); err != nil {
		return fmt.Errorf("clear %s: %w", t, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Migrate runs CREATE TABLE IF NOT EXISTS statements supplied by the
// driver package.
func (s *Store) Migrate(ctx context.Context, ddl []string) error {
	for _, stmt := range ddl {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema (%s): %w", s.dialect.Name, err)
		}
	}
	return nil
}

func (s *Store) deleteByID(ctx context.Context, c records.Collection, id string) (bool, error) {
	t, err := table(c)
	if err != nil {
		return false, err
	}
	res, err := s.exec(ctx, "DELETE FROM "+t+" WHERE id=?", id)
	if err != nil {
		return false, fmt.Errorf("delete %s %s: %w", t, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
