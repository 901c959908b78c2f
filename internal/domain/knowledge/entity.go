package knowledge

import (
	"errors"
	"strings"
	"time"

	"github.com/bryanwahyu/rcis/internal/domain/records"
	"github.com/bryanwahyu/rcis/internal/domain/rework"
)

type ID string

// Entry is a closed problem written up for the knowledge bank.
type Entry struct {
	ID               ID        `json:"id"`
	Problem          string    `json:"problem"`
	RootCause        string    `json:"rootCause"`
	CorrectiveAction string    `json:"correctiveAction"`
	BeforeResults    string    `json:"beforeResults"`
	AfterResults     string    `json:"afterResults"`
	Station          string    `json:"station,omitempty"`
	DefectType       string    `json:"defectType,omitempty"`
	DateClosed       string    `json:"dateClosed,omitempty"`
	Image            string    `json:"image,omitempty"` // object store URL
	CreatedAt        time.Time `json:"createdAt"`
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.Problem) == "" {
		return records.Invalidf("problem is required")
	}
	if strings.TrimSpace(e.RootCause) == "" {
		return records.Invalidf("rootCause is required")
	}
	if strings.TrimSpace(e.CorrectiveAction) == "" {
		return records.Invalidf("correctiveAction is required")
	}
	if e.DateClosed != "" {
		if _, ok := rework.ParseDay(e.DateClosed, time.UTC); !ok {
			return records.Invalidf("dateClosed %q is not a valid YYYY-MM-DD date", e.DateClosed)
		}
	}
	return nil
}

type Patch struct {
	Problem          *string `json:"problem,omitempty"`
	RootCause        *string `json:"rootCause,omitempty"`
	CorrectiveAction *string `json:"correctiveAction,omitempty"`
	BeforeResults    *string `json:"beforeResults,omitempty"`
	AfterResults     *string `json:"afterResults,omitempty"`
	Station          *string `json:"station,omitempty"`
	DefectType       *string `json:"defectType,omitempty"`
	DateClosed       *string `json:"dateClosed,omitempty"`
	Image            *string `json:"image,omitempty"`
}

func (p Patch) Apply(e *Entry) {
	set(&e.Problem, p.Problem)
	set(&e.RootCause, p.RootCause)
	set(&e.CorrectiveAction, p.CorrectiveAction)
	set(&e.BeforeResults, p.BeforeResults)
	set(&e.AfterResults, p.AfterResults)
	set(&e.Station, p.Station)
	set(&e.DefectType, p.DefectType)
	set(&e.DateClosed, p.DateClosed)
	set(&e.Image, p.Image)
}

func set(dst, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Query mirrors the knowledge bank search box and its two dropdowns.
type Query struct {
	Search     string
	Station    string
	DefectType string
}

func (q Query) Matches(e *Entry) bool {
	if s := strings.ToLower(strings.TrimSpace(q.Search)); s != "" {
		if !strings.Contains(strings.ToLower(e.Problem), s) &&
			!strings.Contains(strings.ToLower(e.RootCause), s) &&
			!strings.Contains(strings.ToLower(e.CorrectiveAction), s) {
			return false
		}
	}
	if q.Station != "" && e.Station != q.Station {
		return false
	}
	if q.DefectType != "" && e.DefectType != q.DefectType {
		return false
	}
	return true
}

// ErrImagesDisabled is returned when no object store is configured.
var ErrImagesDisabled = errors.New("image storage is not configured")
