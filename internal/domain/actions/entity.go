package actions

import (
	"strings"
	"time"

	"github.com/bryanwahyu/rcis/internal/domain/catalog"
	"github.com/bryanwahyu/rcis/internal/domain/records"
	"github.com/bryanwahyu/rcis/internal/domain/rework"
)

type ID string

// Action is a corrective action raised against a defect type.
type Action struct {
	ID                  ID        `json:"id"`
	DefectType          string    `json:"defectType"`
	Description         string    `json:"description"`
	ResponsiblePerson   string    `json:"responsiblePerson"`
	TargetDate          string    `json:"targetDate"`
	Status              string    `json:"status"`
	EffectivenessReview string    `json:"effectivenessReview,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// Overdue is derived on read: the action is not closed and its target day
// is before today. A target date that does not parse is never overdue.
func (a Action) Overdue(now time.Time) bool {
	if a.Status == catalog.StatusClosed {
		return false
	}
	target, ok := rework.ParseDay(a.TargetDate, now.Location())
	if !ok {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return target.Before(today)
}

func (a Action) Validate() error {
	if strings.TrimSpace(a.DefectType) == "" {
		return records.Invalidf("defectType is required")
	}
	if strings.TrimSpace(a.Description) == "" {
		return records.Invalidf("description is required")
	}
	if strings.TrimSpace(a.ResponsiblePerson) == "" {
		return records.Invalidf("responsiblePerson is required")
	}
	if _, ok := rework.ParseDay(a.TargetDate, time.UTC); !ok {
		return records.Invalidf("targetDate %q is not a valid YYYY-MM-DD date", a.TargetDate)
	}
	if !catalog.Contains(catalog.ActionStatuses, a.Status) {
		return records.Invalidf("status must be one of Open, In Progress, Closed, got %q", a.Status)
	}
	return nil
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	DefectType          *string `json:"defectType,omitempty"`
	Description         *string `json:"description,omitempty"`
	ResponsiblePerson   *string `json:"responsiblePerson,omitempty"`
	TargetDate          *string `json:"targetDate,omitempty"`
	Status              *string `json:"status,omitempty"`
	EffectivenessReview *string `json:"effectivenessReview,omitempty"`
}

func (p Patch) Apply(a *Action) {
	set(&a.DefectType, p.DefectType)
	set(&a.Description, p.Description)
	set(&a.ResponsiblePerson, p.ResponsiblePerson)
	set(&a.TargetDate, p.TargetDate)
	set(&a.Status, p.Status)
	set(&a.EffectivenessReview, p.EffectivenessReview)
}

func set(dst, v *string) {
	if v != nil {
		*dst = *v
	}
}

// FilterOverdue is the pseudo-status accepted by list filters.
const FilterOverdue = "Overdue"

// StatusCounts tallies actions per status plus the derived overdue count.
type StatusCounts struct {
	Open       int `json:"open"`
	InProgress int `json:"inProgress"`
	Closed     int `json:"closed"`
	Overdue    int `json:"overdue"`
	Total      int `json:"total"`
}

func CountStatuses(list []*Action, now time.Time) StatusCounts {
	var c StatusCounts
	for _, a := range list {
		switch a.Status {
		case catalog.StatusOpen:
			c.Open++
		case catalog.StatusInProgress:
			c.InProgress++
		case catalog.StatusClosed:
			c.Closed++
		}
		if a.Overdue(now) {
			c.Overdue++
		}
		c.Total++
	}
	return c
}
