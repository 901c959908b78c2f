package actions

import (
	"context"
	"strings"

	"github.com/bryanwahyu/rcis/internal/application"
	"github.com/bryanwahyu/rcis/internal/domain/actions"
	"github.com/bryanwahyu/rcis/internal/domain/catalog"
	"github.com/bryanwahyu/rcis/internal/domain/records"
)

// Service implements use-cases untuk corrective actions
type Service struct {
	Repo  actions.Repository
	Clock application.Clock
}

type CreateCommand struct {
	DefectType          catalog.Choice `json:"defectType"`
	Description         string         `json:"description"`
	ResponsiblePerson   string         `json:"responsiblePerson"`
	TargetDate          string         `json:"targetDate"`
	Status              string         `json:"status"`
	EffectivenessReview string         `json:"effectivenessReview"`
}

// View is an action with its derived overdue flag.
type View struct {
	*actions.Action
	Overdue bool `json:"overdue"`
}

func (s *Service) view(a *actions.Action) View {
	return View{Action: a, Overdue: a.Overdue(s.Clock.Now())}
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (View, error) {
	if err := cmd.DefectType.Validate(catalog.DefectTypes); err != nil {
		return View{}, records.Invalidf("defectType: %v", err)
	}
	a := &actions.Action{
		DefectType:          cmd.DefectType.Resolve(),
		Description:         strings.TrimSpace(cmd.Description),
		ResponsiblePerson:   strings.TrimSpace(cmd.ResponsiblePerson),
		TargetDate:          strings.TrimSpace(cmd.TargetDate),
		Status:              cmd.Status,
		EffectivenessReview: strings.TrimSpace(cmd.EffectivenessReview),
	}
	if a.Status == "" {
		a.Status = catalog.StatusOpen
	}
	if err := a.Validate(); err != nil {
		return View{}, err
	}
	stored, err := s.Repo.Insert(ctx, a)
	if err != nil {
		return View{}, err
	}
	return s.view(stored), nil
}

// List filters by status; "Overdue" selects the derived flag instead.
func (s *Service) List(ctx context.Context, status string) ([]View, error) {
	switch status {
	case "", actions.FilterOverdue, catalog.StatusOpen, catalog.StatusInProgress, catalog.StatusClosed:
	default:
		return nil, records.Invalidf("unknown status filter %q", status)
	}
	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.Clock.Now()
	out := []View{}
	for _, a := range all {
		overdue := a.Overdue(now)
		switch {
		case status == actions.FilterOverdue && !overdue:
			continue
		case status != "" && status != actions.FilterOverdue && a.Status != status:
			continue
		}
		out = append(out, View{Action: a, Overdue: overdue})
	}
	return out, nil
}

// Summary counts actions per status plus overdue.
func (s *Service) Summary(ctx context.Context) (actions.StatusCounts, error) {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return actions.StatusCounts{}, err
	}
	return actions.CountStatuses(all, s.Clock.Now()), nil
}

func (s *Service) Get(ctx context.Context, id actions.ID) (View, error) {
	a, err := s.Repo.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	return s.view(a), nil
}

func (s *Service) Update(ctx context.Context, id actions.ID, p actions.Patch) (View, error) {
	cur, err := s.Repo.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	merged := *cur
	p.Apply(&merged)
	if err := merged.Validate(); err != nil {
		return View{}, err
	}
	a, err := s.Repo.Update(ctx, id, p)
	if err != nil {
		return View{}, err
	}
	return s.view(a), nil
}

func (s *Service) Delete(ctx context.Context, id actions.ID) error {
	ok, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return records.ErrNotFound
	}
	return nil
}
