package settings

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bryanwahyu/rcis/internal/application/seed"
	"github.com/bryanwahyu/rcis/internal/domain/records"
)

// Service backs the settings page: role display, record counts, demo
// seeding and the wipe.
type Service struct {
	Admin  records.Admin
	Seeder *seed.Generator
	Role   string
	Log    *zap.Logger
}

type Snapshot struct {
	Role   string                     `json:"role"`
	Counts map[records.Collection]int `json:"counts"`
	Total  int                        `json:"total"`
}

func (s *Service) Counts(ctx context.Context) (map[records.Collection]int, int, error) {
	counts := make(map[records.Collection]int, 3)
	total := 0
	for _, c := range records.All() {
		n, err := s.Admin.Count(ctx, c)
		if err != nil {
			return nil, 0, fmt.Errorf("count %s: %w", c, err)
		}
		counts[c] = n
		total += n
	}
	return counts, total, nil
}

func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	counts, total, err := s.Counts(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Role: s.Role, Counts: counts, Total: total}, nil
}

func (s *Service) Seed(ctx context.Context) (seed.Result, error) {
	return s.Seeder.Run(ctx)
}

// ClearAll wipes every collection and returns how many rows were removed.
func (s *Service) ClearAll(ctx context.Context) (int, error) {
	_, total, err := s.Counts(ctx)
	if err != nil {
		return 0, err
	}
	for _, c := range records.All() {
		if err := s.Admin.Clear(ctx, c); err != nil {
			return 0, err
		}
	}
	s.Log.Warn("all records cleared", zap.Int("removed", total))
	return total, nil
}
