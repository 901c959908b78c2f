package sqlrepo

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bryanwahyu/rcis/internal/domain/records"
)

// timestamp scans DATETIME/TIMESTAMPTZ columns as well as the text form
// SQLite hands back.
type timestamp struct{ t *time.Time }

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

func (ts timestamp) Scan(v any) error {
	switch x := v.(type) {
	case nil:
		*ts.t = time.Time{}
		return nil
	case time.Time:
		*ts.t = x.UTC()
		return nil
	case []byte:
		return ts.parse(string(x))
	case string:
		return ts.parse(x)
	}
	return fmt.Errorf("unsupported timestamp type %T", v)
}

func (ts timestamp) parse(s string) error {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*ts.t = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unparsable timestamp %q", s)
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return records.ErrNotFound
	}
	return err
}
