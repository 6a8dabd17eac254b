package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"jlptag/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var (
		lines  int
		follow bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the run log written by previous tag runs",
		Long: `Show the tail of the run log that tagging mirrors into the configured
log directory. Every run appends to the same file; use the run_id field to
tell runs apart.`,
		Example: `  jlptag logs
  jlptag logs --lines 200
  jlptag logs --follow`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			path := logs.Path(cfg)
			if path == "" {
				return errors.New("paths.log_dir is not configured, runs are not logged to a file")
			}

			out := cmd.OutOrStdout()
			tail, offset, err := logs.ReadLast(path, lines)
			if err != nil {
				return err
			}
			if len(tail) == 0 && offset == 0 && !follow {
				fmt.Fprintf(out, "No run log at %s yet.\n", path)
				return nil
			}
			for _, line := range tail {
				fmt.Fprintln(out, line)
			}

			if !follow {
				return nil
			}
			if err := logs.Follow(cmd.Context(), path, offset, out); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&lines, "lines", 50, "Number of trailing lines to show")
	cmd.Flags().BoolVar(&follow, "follow", false, "Keep printing lines as runs append them")
	return cmd
}
