package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MikeSquared-Agency/echoes/internal/config"
	"github.com/MikeSquared-Agency/echoes/internal/report"
	"github.com/MikeSquared-Agency/echoes/internal/stats"
)

type dumpOptions struct {
	format string
	query  string
	sender string
	from   string
	to     string
	offset int
	limit  int
}

func newDumpCmd() *cobra.Command {
	var opts dumpOptions

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Load the archives once and print the merged message table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "o", "table", "Output format (table, json, csv)")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "Comma separated keywords; rows containing any are kept")
	cmd.Flags().StringVar(&opts.sender, "sender", "", "Only messages from this sender")
	cmd.Flags().StringVar(&opts.from, "from", "", "First day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.to, "to", "", "Last day to include (YYYY-MM-DD)")
	cmd.Flags().IntVar(&opts.offset, "offset", 0, "Skip this many matching rows")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Print at most this many rows (0 = all)")
	return cmd
}

func runDump(cmd *cobra.Command, opts dumpOptions) error {
	format, err := report.ParseFormat(opts.format)
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

	from, until, err := stats.DayRange(opts.from, opts.to, p.Zone())
	if err != nil {
		return err
	}

	msgs, err := p.Load(cmd.Context())
	if err != nil {
		return err
	}

	page := stats.Filter(msgs, stats.Query{
		Keywords: stats.ParseKeywords(opts.query),
		Sender:   opts.sender,
		From:     from,
		Until:    until,
		Offset:   opts.offset,
		Limit:    opts.limit,
	})
	logger.Debug("rows selected", "matched", page.Total, "printed", len(page.Rows))

	return report.WriteRows(cmd.OutOrStdout(), page.Rows, format, terminalWidth())
}

// terminalWidth returns stdout's width, or zero when it is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}
