package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "echoes",
		Short: "Chat archive analytics dashboard",
		Long: `echoes loads exported chat archives from two messaging platforms,
merges them into one time-ordered message table and serves it behind a login.

Configuration is read from the environment (and a .env file when present).

Examples:
  echoes serve                        # Start the dashboard API
  echoes dump --query "eat, love"     # Print matching messages
  echoes dump --format csv > all.csv  # Export the merged table
  echoes stats --group-by year        # Message counts per year and sender`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newDumpCmd(), newStatsCmd())
	return root
}

func setupLogging(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
