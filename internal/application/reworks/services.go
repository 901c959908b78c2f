package reworks

import (
	"context"
	"strings"

	"github.com/bryanwahyu/rcis/internal/application"
	"github.com/bryanwahyu/rcis/internal/domain/catalog"
	"github.com/bryanwahyu/rcis/internal/domain/records"
	"github.com/bryanwahyu/rcis/internal/domain/rework"
)

// Service implements use-cases untuk rework log
type Service struct {
	Repo  rework.Repository
	Clock application.Clock
}

// CreateCommand is the log form. Station and DefectType accept catalog
// entries or custom text; the rest are plain values.
type CreateCommand struct {
	Date               string         `json:"date"`
	Station            catalog.Choice `json:"station"`
	DefectType         catalog.Choice `json:"defectType"`
	Quantity           int            `json:"quantity"`
	Shift              string         `json:"shift"`
	OperatorGroup      string         `json:"operatorGroup"`
	MaterialBatch      string         `json:"materialBatch"`
	Severity           string         `json:"severity"`
	SuspectedRootCause string         `json:"suspectedRootCause"`
	Remarks            string         `json:"remarks"`
}

// Create validates and stores a new event. Date defaults to today and
// quantity to 1.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*rework.Event, error) {
	if err := cmd.Station.Validate(catalog.Stations); err != nil {
		return nil, records.Invalidf("station: %v", err)
	}
	if err := cmd.DefectType.Validate(catalog.DefectTypes); err != nil {
		return nil, records.Invalidf("defectType: %v", err)
	}
	e := &rework.Event{
		Date:               strings.TrimSpace(cmd.Date),
		Station:            cmd.Station.Resolve(),
		DefectType:         cmd.DefectType.Resolve(),
		Quantity:           cmd.Quantity,
		Shift:              cmd.Shift,
		OperatorGroup:      cmd.OperatorGroup,
		MaterialBatch:      strings.TrimSpace(cmd.MaterialBatch),
		Severity:           cmd.Severity,
		SuspectedRootCause: strings.TrimSpace(cmd.SuspectedRootCause),
		Remarks:            strings.TrimSpace(cmd.Remarks),
	}
	if e.Date == "" {
		e.Date = s.Clock.Now().Format(rework.DateLayout)
	}
	if e.Quantity == 0 {
		e.Quantity = 1
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return s.Repo.Insert(ctx, e)
}

// List returns the log, newest first, narrowed by q.
func (s *Service) List(ctx context.Context, q rework.Query) ([]*rework.Event, error) {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if q.IsZero() {
		return all, nil
	}
	out := []*rework.Event{}
	for _, e := range all {
		if q.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id rework.ID) (*rework.Event, error) {
	return s.Repo.Get(ctx, id)
}

// Update validates the merged record before writing the patch.
func (s *Service) Update(ctx context.Context, id rework.ID, p rework.Patch) (*rework.Event, error) {
	cur, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	merged := *cur
	p.Apply(&merged)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return s.Repo.Update(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id rework.ID) error {
	ok, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return records.ErrNotFound
	}
	return nil
}
