package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/echoes/internal/config"
	"github.com/MikeSquared-Agency/echoes/internal/report"
	"github.com/MikeSquared-Agency/echoes/internal/stats"
)

func newStatsCmd() *cobra.Command {
	var groupBy string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print message and word totals plus a per-period timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			group, err := stats.ParseGroupBy(groupBy)
			if err != nil {
				return err
			}

			cfg := config.Load()
			logger := setupLogging(cfg.LogLevel, os.Stderr)

			p, cleanup, err := buildPipeline(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			msgs, err := p.Load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := report.WriteOverview(out, stats.ComputeOverview(msgs, people(cfg)...)); err != nil {
				return err
			}
			fmt.Fprintln(out)
			return report.WriteTimeline(out, stats.Timeline(msgs, group))
		},
	}

	cmd.Flags().StringVarP(&groupBy, "group-by", "g", "month", "Timeline bucket (day, month, year)")
	return cmd
}
