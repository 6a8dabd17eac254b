package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"jlptag/internal/annotate"
	"jlptag/internal/config"
	"jlptag/internal/dict"
	"jlptag/internal/fileutil"
	"jlptag/internal/logging"
	"jlptag/internal/preflight"
	"jlptag/internal/vocab"
)

func newTagCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var backup bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Tag every dictionary entry with its JLPT level",
		Long: `Tag builds the vocabulary index from the configured tier lists, scans every
dictionary entry once, and writes the resolved level into entries whose stored
value differs. Entries already carrying the right level are left untouched, so
repeated runs are safe.

Examples:
  jlptag tag                 # full run against the configured database
  jlptag tag --dry-run       # decide everything, write nothing
  jlptag tag --backup        # verified database copy before the first write`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			logger, runID, err := ctx.newRunLogger(cfg)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			out := cmd.OutOrStdout()
			results := preflight.RunAll(cmd.Context(), cfg)
			if !jsonOut {
				fmt.Fprintln(out, "Preflight checks:")
			}
			if failed := reportPreflight(out, results, jsonOut); failed > 0 {
				err := fmt.Errorf("preflight failed: %d of %d checks did not pass", failed, len(results))
				logging.ErrorWithContext(logger, "tagging run aborted", "preflight_failed", logging.Error(err))
				return err
			}

			stats, summary, err := runTag(cmd, cfg, logger, dryRun, backup)
			if err != nil {
				// The returned error reaches stderr only, not the run log.
				logging.ErrorWithContext(logger, "tagging run aborted", "run_failed", logging.Error(err))
				return err
			}

			if jsonOut {
				return writeJSON(cmd, newTagReport(runID, stats, summary))
			}
			printTagSummary(out, stats, summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Decide every entry but write nothing")
	cmd.Flags().BoolVar(&backup, "backup", false, "Copy the database to a timestamped backup before writing")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the run summary as JSON")
	return cmd
}

// runTag holds the database lock for the whole mutation path: optional
// backup, index build, scan, write.
func runTag(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, dryRun, backup bool) (vocab.Stats, *annotate.Summary, error) {
	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return vocab.Stats{}, nil, fmt.Errorf("acquire database lock: %w", err)
	}
	if !locked {
		return vocab.Stats{}, nil, fmt.Errorf("database lock %s is held by another jlptag run", cfg.LockPath())
	}
	defer func() {
		_ = lock.Unlock()
	}()

	if backup && !dryRun {
		backupPath, err := fileutil.BackupFile(cfg.Paths.Database)
		if err != nil {
			return vocab.Stats{}, nil, fmt.Errorf("back up database: %w", err)
		}
		logger.Info("database backed up", logging.String("path", backupPath))
	}

	index, stats, err := vocab.NewLoader(cfg, logger).Load(cmd.Context())
	if err != nil {
		return stats, nil, fmt.Errorf("build vocabulary index: %w", err)
	}

	store, err := dict.Open(cfg.Paths.Database)
	if err != nil {
		return stats, nil, err
	}
	defer func() {
		_ = store.Close()
	}()

	summary, err := annotate.New(store, index, dryRun, logger).Run(cmd.Context())
	if err != nil {
		return stats, nil, err
	}
	return stats, summary, nil
}

// reportPreflight prints check lines in text mode and stays quiet in JSON
// mode unless something failed; a failed check must be visible either way.
func reportPreflight(out io.Writer, results []preflight.Result, jsonOut bool) int {
	if !jsonOut {
		return printCheckResults(out, results)
	}
	failed := 0
	for _, result := range results {
		if !result.Passed {
			fmt.Fprintln(out, renderCheckLine(result, false))
			failed++
		}
	}
	return failed
}

type tagReport struct {
	RunID            string   `json:"run_id"`
	Lists            int      `json:"lists"`
	MissingLists     []string `json:"missing_lists,omitempty"`
	Rows             int      `json:"rows"`
	SkippedRows      int      `json:"skipped_rows"`
	Forms            int      `json:"forms"`
	Processed        int      `json:"processed"`
	KanjiMatches     int      `json:"kanji_matches"`
	ReadingMatches   int      `json:"reading_matches"`
	MeaningConfirmed int      `json:"meaning_confirmed"`
	KanjiMismatches  int      `json:"kanji_mismatches"`
	MeaningRejected  int      `json:"meaning_rejected"`
	NoMatch          int      `json:"no_match"`
	AlreadyTagged    int      `json:"already_tagged"`
	Queued           int      `json:"queued"`
	Applied          int      `json:"applied"`
	DryRun           bool     `json:"dry_run"`
	ElapsedSeconds   float64  `json:"elapsed_seconds"`
}

func newTagReport(runID string, stats vocab.Stats, summary *annotate.Summary) tagReport {
	missing := make([]string, 0, len(stats.MissingLists))
	for _, level := range stats.MissingLists {
		missing = append(missing, string(level))
	}
	return tagReport{
		RunID:            runID,
		Lists:            stats.Lists,
		MissingLists:     missing,
		Rows:             stats.Rows,
		SkippedRows:      stats.Skipped,
		Forms:            stats.Forms,
		Processed:        summary.Processed,
		KanjiMatches:     summary.KanjiMatches,
		ReadingMatches:   summary.ReadingMatches,
		MeaningConfirmed: summary.MeaningConfirmed,
		KanjiMismatches:  summary.KanjiMismatches,
		MeaningRejected:  summary.MeaningRejected,
		NoMatch:          summary.NoMatch,
		AlreadyTagged:    summary.AlreadyTagged,
		Queued:           summary.Queued,
		Applied:          summary.Applied,
		DryRun:           summary.DryRun,
		ElapsedSeconds:   summary.Elapsed.Seconds(),
	}
}

const summaryElapsedPrecision = 10 * time.Millisecond

func printTagSummary(out io.Writer, stats vocab.Stats, summary *annotate.Summary) {
	fmt.Fprintf(out, "\nVocabulary: %d lists, %d rows (%d skipped), %d forms indexed\n",
		stats.Lists, stats.Rows, stats.Skipped, stats.Forms)
	if len(stats.MissingLists) > 0 {
		tiers := make([]string, 0, len(stats.MissingLists))
		for _, level := range stats.MissingLists {
			tiers = append(tiers, string(level))
		}
		fmt.Fprintf(out, "Missing lists: %s\n", strings.Join(tiers, ", "))
	}

	rows := [][]string{
		{"Kanji matches", strconv.Itoa(summary.KanjiMatches)},
		{"Reading matches", strconv.Itoa(summary.ReadingMatches)},
		{"Meaning confirmed", strconv.Itoa(summary.MeaningConfirmed)},
		{"Kanji mismatches", strconv.Itoa(summary.KanjiMismatches)},
		{"Meaning rejected", strconv.Itoa(summary.MeaningRejected)},
		{"No match", strconv.Itoa(summary.NoMatch)},
		{"Already tagged", strconv.Itoa(summary.AlreadyTagged)},
		{"Queued", strconv.Itoa(summary.Queued)},
		{"Applied", strconv.Itoa(summary.Applied)},
	}
	fmt.Fprintln(out, renderTable([]string{"OUTCOME", "ENTRIES"}, rows, 1))

	if summary.DryRun {
		fmt.Fprintf(out, "Dry run: %d updates were decided but nothing was written.\n", summary.Queued)
	}
	fmt.Fprintf(out, "Processed %d entries in %s.\n", summary.Processed, summary.Elapsed.Round(summaryElapsedPrecision))
}
