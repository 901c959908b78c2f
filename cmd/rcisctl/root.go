package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bryanwahyu/rcis/internal/analytics"
	"github.com/bryanwahyu/rcis/internal/application"
	appdashboard "github.com/bryanwahyu/rcis/internal/application/dashboard"
	"github.com/bryanwahyu/rcis/internal/application/seed"
	appsettings "github.com/bryanwahyu/rcis/internal/application/settings"
	"github.com/bryanwahyu/rcis/internal/config"
	"github.com/bryanwahyu/rcis/internal/domain/rework"
	"github.com/bryanwahyu/rcis/internal/infra/db"
	"github.com/bryanwahyu/rcis/internal/infra/db/sqlrepo"
	"github.com/bryanwahyu/rcis/internal/logging"
)

// env is what every subcommand needs once the root has loaded config.
type env struct {
	configPath string
	now        string
	days       string
	start      string
	end        string

	cfg   *config.Config
	log   *zap.Logger
	store *sqlrepo.Store
	clock application.Clock
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "rcisctl",
		Short:         "Rework analytics from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.open(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return e.close()
		},
	}
	root.PersistentFlags().StringVar(&e.configPath, "config", "", "config file (default CONFIG_PATH or ./config.yaml)")
	root.PersistentFlags().StringVar(&e.now, "now", "", "pretend today is this date (YYYY-MM-DD or RFC 3339)")

	root.AddCommand(
		e.overviewCmd(),
		e.insightsCmd(),
		e.heatmapCmd(),
		e.paretoCmd(),
		e.seedCmd(),
		e.clearCmd(),
		e.countsCmd(),
	)
	return root
}

func (e *env) open(cmd *cobra.Command) error {
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	clock, err := clockFor(e.now, cfg.Location)
	if err != nil {
		return err
	}
	store, err := db.Open(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	e.cfg, e.log, e.clock, e.store = cfg, log, clock, store
	return nil
}

func (e *env) close() error {
	if e.log != nil {
		_ = e.log.Sync()
	}
	if e.store == nil {
		return nil
	}
	err := e.store.Close()
	e.store = nil
	return err
}

func clockFor(now string, loc *time.Location) (application.Clock, error) {
	if now == "" {
		return application.SystemClock{Loc: loc}, nil
	}
	if t, err := time.ParseInLocation(rework.DateLayout, now, loc); err == nil {
		return application.FixedClock{T: t}, nil
	}
	t, err := time.Parse(time.RFC3339, now)
	if err != nil {
		return nil, fmt.Errorf("--now %q: want YYYY-MM-DD or RFC 3339", now)
	}
	return application.FixedClock{T: t.In(loc)}, nil
}

// rangeFlags adds --days/--start/--end to cmd.
func (e *env) rangeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&e.days, "days", "", "trailing window in days (default 30)")
	cmd.Flags().StringVar(&e.start, "start", "", "first day of a custom range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&e.end, "end", "", "last day of a custom range (YYYY-MM-DD)")
}

func (e *env) rangeOf() (analytics.Range, error) {
	return analytics.ParseRange(e.days, e.start, e.end, e.clock.Now().Location())
}

func (e *env) dashboard() *appdashboard.Service {
	return &appdashboard.Service{Reworks: e.store.Reworks(), Clock: e.clock, Log: e.log}
}

func (e *env) settings(seedValue uint64) *appsettings.Service {
	return &appsettings.Service{
		Admin: e.store,
		Seeder: &seed.Generator{
			Reworks:   e.store.Reworks(),
			Actions:   e.store.Actions(),
			Knowledge: e.store.Knowledge(),
			Clock:     e.clock,
			Log:       e.log,
			Seed:      seedValue,
		},
		Role: e.cfg.App.Role,
		Log:  e.log,
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
