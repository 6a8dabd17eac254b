package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"jlptag/internal/dict"
	"jlptag/internal/jlpt"
	"jlptag/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check vocabulary inputs and dictionary database health",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			results := preflight.RunAll(cmd.Context(), cfg)
			health, _ := dict.Diagnose(cmd.Context(), cfg.Paths.Database)

			var stats dict.TagStats
			haveStats := false
			if health.Healthy() {
				stats, err = tagStatsFor(cmd, cfg.Paths.Database)
				if err != nil {
					return err
				}
				haveStats = true
			}

			failed := 0
			for _, result := range results {
				if !result.Passed {
					failed++
				}
			}

			if jsonOut {
				if err := writeJSON(cmd, newCheckReport(results, health, stats, haveStats)); err != nil {
					return err
				}
			} else {
				printCheckReport(cmd, results, health, stats, haveStats)
			}

			if failed > 0 || !health.Healthy() {
				return errors.New("check found problems")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the report as JSON")
	return cmd
}

func tagStatsFor(cmd *cobra.Command, path string) (dict.TagStats, error) {
	store, err := dict.Open(path)
	if err != nil {
		return dict.TagStats{}, err
	}
	defer func() {
		_ = store.Close()
	}()
	return store.TagStats(cmd.Context())
}

type checkReport struct {
	Checks   []checkResultReport `json:"checks"`
	Database databaseReport      `json:"database"`
	Levels   map[string]int      `json:"levels,omitempty"`
	Untagged int                 `json:"untagged,omitempty"`
	Other    int                 `json:"other,omitempty"`
	Healthy  bool                `json:"healthy"`
}

type checkResultReport struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

type databaseReport struct {
	Path           string   `json:"path"`
	Exists         bool     `json:"exists"`
	Readable       bool     `json:"readable"`
	TablePresent   bool     `json:"table_present"`
	MissingColumns []string `json:"missing_columns,omitempty"`
	Entries        int      `json:"entries"`
	Error          string   `json:"error,omitempty"`
}

func newCheckReport(results []preflight.Result, health dict.Health, stats dict.TagStats, haveStats bool) checkReport {
	report := checkReport{
		Database: databaseReport{
			Path:           health.DBPath,
			Exists:         health.DatabaseExists,
			Readable:       health.DatabaseReadable,
			TablePresent:   health.TableExists,
			MissingColumns: health.MissingColumns,
			Entries:        health.TotalEntries,
			Error:          health.Error,
		},
		Healthy: health.Healthy(),
	}
	for _, result := range results {
		report.Checks = append(report.Checks, checkResultReport(result))
		if !result.Passed {
			report.Healthy = false
		}
	}
	if haveStats {
		report.Levels = make(map[string]int, len(stats.ByLevel))
		for level, count := range stats.ByLevel {
			report.Levels[string(level)] = count
		}
		report.Untagged = stats.Untagged
		report.Other = stats.Other
	}
	return report
}

func printCheckReport(cmd *cobra.Command, results []preflight.Result, health dict.Health, stats dict.TagStats, haveStats bool) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Preflight checks:")
	printCheckResults(out, results)

	fmt.Fprintln(out, "\nDatabase:")
	fmt.Fprintf(out, "  Path: %s\n", health.DBPath)
	fmt.Fprintf(out, "  Exists: %s\n", yesNo(health.DatabaseExists))
	fmt.Fprintf(out, "  Readable: %s\n", yesNo(health.DatabaseReadable))
	fmt.Fprintf(out, "  dict_index present: %s\n", yesNo(health.TableExists))
	if len(health.MissingColumns) > 0 {
		missing := append([]string(nil), health.MissingColumns...)
		sort.Strings(missing)
		fmt.Fprintf(out, "  Missing columns: %s\n", strings.Join(missing, ", "))
	} else {
		fmt.Fprintln(out, "  Missing columns: none")
	}
	fmt.Fprintf(out, "  Entries: %d\n", health.TotalEntries)
	if health.Error != "" {
		fmt.Fprintf(out, "  Error: %s\n", health.Error)
	}

	if !haveStats {
		return
	}
	rows := make([][]string, 0, len(jlpt.Levels())+2)
	for _, level := range jlpt.Levels() {
		rows = append(rows, []string{string(level), strconv.Itoa(stats.ByLevel[level])})
	}
	rows = append(rows,
		[]string{"other", strconv.Itoa(stats.Other)},
		[]string{"untagged", strconv.Itoa(stats.Untagged)},
	)
	fmt.Fprintln(out, "\nLevel distribution:")
	fmt.Fprintln(out, renderTable([]string{"LEVEL", "ENTRIES"}, rows, 1))
}
