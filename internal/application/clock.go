package application

import "time"

// Clock interface supaya gampang ditest
type Clock interface {
	Now() time.Time
}

// SystemClock implementasi default, pakai time.Now() di zona pabrik.
type SystemClock struct {
	Loc *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Loc == nil {
		return time.Now()
	}
	return time.Now().In(c.Loc)
}

// FixedClock always returns T. Used by tests and by the CLI's --now flag.
type FixedClock struct{ T time.Time }

func (c FixedClock) Now() time.Time { return c.T }
