package main

import (
	"errors"

	"github.com/spf13/cobra"

	appdashboard "github.com/bryanwahyu/rcis/internal/application/dashboard"
	"github.com/bryanwahyu/rcis/internal/domain/rework"
)

var errConfirm = errors.New("clear deletes every record; pass --yes to confirm")

func (e *env) overviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Dashboard totals, trend, Pareto and distributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := e.rangeOf()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), e.dashboard().Overview(cmd.Context(), r))
		},
	}
	e.rangeFlags(cmd)
	return cmd
}

func (e *env) insightsCmd() *cobra.Command {
	var digest bool
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Shift, batch and recurrence pattern alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := e.rangeOf()
			if err != nil {
				return err
			}
			insights := e.dashboard().Insights(cmd.Context(), r)
			if digest {
				_, err := cmd.OutOrStdout().Write([]byte(appdashboard.Digest(insights)))
				return err
			}
			return printJSON(cmd.OutOrStdout(), insights)
		},
	}
	e.rangeFlags(cmd)
	cmd.Flags().BoolVar(&digest, "digest", false, "print plain text lines instead of JSON")
	return cmd
}

func (e *env) heatmapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Station x severity risk grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := e.rangeOf()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), e.dashboard().HeatMap(cmd.Context(), r))
		},
	}
	e.rangeFlags(cmd)
	return cmd
}

func (e *env) paretoCmd() *cobra.Command {
	var (
		field string
		n     int
	)
	cmd := &cobra.Command{
		Use:   "pareto",
		Short: "Rank values of a field by rework quantity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := e.rangeOf()
			if err != nil {
				return err
			}
			f, err := rework.ParseField(field)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), e.dashboard().Pareto(cmd.Context(), r, f, n))
		},
	}
	e.rangeFlags(cmd)
	cmd.Flags().StringVar(&field, "field", string(rework.FieldDefectType), "field to rank")
	cmd.Flags().IntVar(&n, "n", appdashboard.ParetoSize, "rows to keep; 0 keeps all")
	return cmd
}

func (e *env) seedCmd() *cobra.Command {
	var seedValue uint64
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo data set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := e.settings(seedValue).Seed(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().Uint64Var(&seedValue, "seed", 0, "random seed; 0 picks one")
	return cmd
}

func (e *env) clearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every rework, action and knowledge entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errConfirm
			}
			removed, err := e.settings(0).ClearAll(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]int{"removed": removed})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the wipe")
	return cmd
}

func (e *env) countsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "counts",
		Short: "Records per collection and the configured role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := e.settings(0).Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), snap)
		},
	}
}
