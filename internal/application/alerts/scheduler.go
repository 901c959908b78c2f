// Package alerts posts a digest of the current pattern alerts on a cron
// schedule.
package alerts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/bryanwahyu/rcis/internal/analytics"
	"github.com/bryanwahyu/rcis/internal/application"
	"github.com/bryanwahyu/rcis/internal/application/dashboard"
)

// InsightSource is satisfied by dashboard.Service.
type InsightSource interface {
	Insights(ctx context.Context, r analytics.Range) []analytics.Insight
}

// Notifier delivers a digest somewhere people will read it.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// LogNotifier writes the digest to the log; used when no chat channel is set.
type LogNotifier struct{ Log *zap.Logger }

func (n LogNotifier) Notify(_ context.Context, text string) error {
	n.Log.Info("alert digest", zap.String("digest", text))
	return nil
}

type Scheduler struct {
	Source       InsightSource
	Notifier     Notifier
	Clock        application.Clock
	Log          *zap.Logger
	LookbackDays int
}

// Parse reads a standard 5-field cron expression
// (minute hour day-of-month month day-of-week) or a descriptor like @daily.
// Examples: "0 7 * * *" (daily 7am), "0 6,14,22 * * 1-6" (each shift start).
func Parse(spec string) (cron.Schedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return parser.Parse(strings.TrimSpace(spec))
}

// Run blocks until ctx is done, firing RunOnce at each scheduled time.
// It returns early when the schedule has no future activation.
func (s *Scheduler) Run(ctx context.Context, sched cron.Schedule) {
	for {
		now := s.Clock.Now()
		next := sched.Next(now)
		if next.IsZero() {
			s.Log.Error("alert schedule never fires, digest disabled", zap.Time("from", now))
			return
		}
		wait := next.Sub(now)
		s.Log.Info("next alert digest", zap.Time("at", next), zap.Duration("in", wait.Round(time.Minute)))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if _, err := s.RunOnce(ctx); err != nil {
			s.Log.Error("alert digest", zap.Error(err))
		}
	}
}

// RunOnce builds the digest for the lookback window and sends it. Nothing
// is sent when there are no insights.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	days := s.LookbackDays
	if days <= 0 {
		days = analytics.RecurrenceDays
	}
	insights := s.Source.Insights(ctx, analytics.LastDays(days))
	if len(insights) == 0 {
		s.Log.Debug("alert digest skipped, no insights", zap.Int("lookbackDays", days))
		return 0, nil
	}
	if err := s.Notifier.Notify(ctx, Format(insights, days, s.Clock.Now())); err != nil {
		return 0, fmt.Errorf("send digest: %w", err)
	}
	s.Log.Info("alert digest sent", zap.Int("insights", len(insights)))
	return len(insights), nil
}

// Format is the chat message body.
func Format(insights []analytics.Insight, days int, now time.Time) string {
	return fmt.Sprintf("*Rework alerts* (last %d days, as of %s)\n%s",
		days, now.Format("Mon Jan 2 15:04"), dashboard.Digest(insights))
}
