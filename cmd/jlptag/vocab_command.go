package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"jlptag/internal/config"
	"jlptag/internal/jlpt"
	"jlptag/internal/logging"
	"jlptag/internal/vocab"
)

func newVocabCommand(ctx *commandContext) *cobra.Command {
	vocabCmd := &cobra.Command{
		Use:   "vocab",
		Short: "Inspect the vocabulary index without touching the database",
	}

	vocabCmd.AddCommand(newVocabStatsCommand(ctx))
	vocabCmd.AddCommand(newVocabLookupCommand(ctx))
	vocabCmd.AddCommand(newVocabSearchCommand(ctx))

	return vocabCmd
}

// loadIndex builds the index quietly; inspection commands report through
// their own output, not the run logger.
func loadIndex(cmd *cobra.Command, cfg *config.Config) (*vocab.Index, vocab.Stats, error) {
	index, stats, err := vocab.NewLoader(cfg, logging.NewNop()).Load(cmd.Context())
	if err != nil {
		return nil, stats, fmt.Errorf("build vocabulary index: %w", err)
	}
	return index, stats, nil
}

func newVocabStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-tier row counts for the configured vocabulary lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			_, stats, err := loadIndex(cmd, cfg)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, newVocabStatsReport(stats))
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(jlpt.Levels()))
			for _, level := range jlpt.Levels() {
				count, ok := stats.RowsByLevel[level]
				if !ok {
					rows = append(rows, []string{string(level), "missing"})
					continue
				}
				rows = append(rows, []string{string(level), strconv.Itoa(count)})
			}
			fmt.Fprintln(out, renderTable([]string{"TIER", "ROWS"}, rows, 1))
			fmt.Fprintf(out, "Forms indexed: %d (%d rows, %d skipped)\n", stats.Forms, stats.Rows, stats.Skipped)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the stats as JSON")
	return cmd
}

type vocabStatsReport struct {
	Lists        int            `json:"lists"`
	MissingLists []string       `json:"missing_lists,omitempty"`
	Rows         int            `json:"rows"`
	SkippedRows  int            `json:"skipped_rows"`
	Forms        int            `json:"forms"`
	RowsByLevel  map[string]int `json:"rows_by_level"`
}

func newVocabStatsReport(stats vocab.Stats) vocabStatsReport {
	report := vocabStatsReport{
		Lists:       stats.Lists,
		Rows:        stats.Rows,
		SkippedRows: stats.Skipped,
		Forms:       stats.Forms,
		RowsByLevel: make(map[string]int, len(stats.RowsByLevel)),
	}
	for level, count := range stats.RowsByLevel {
		report.RowsByLevel[string(level)] = count
	}
	for _, level := range stats.MissingLists {
		report.MissingLists = append(report.MissingLists, string(level))
	}
	return report
}

func newVocabLookupCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "lookup <form>",
		Short: "Resolve one word form against the vocabulary index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			index, _, err := loadIndex(cmd, cfg)
			if err != nil {
				return err
			}

			form := strings.TrimSpace(args[0])
			entry, ok := index.Lookup(form)
			if !ok {
				return fmt.Errorf("form %q is not in the vocabulary index", form)
			}

			if jsonOut {
				return writeJSON(cmd, map[string]any{
					"form":         form,
					"level":        string(entry.Level),
					"meanings":     entry.Meanings,
					"source_kanji": entry.SourceKanji,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Form: %s\n", form)
			fmt.Fprintf(out, "Level: %s\n", entry.Level)
			fmt.Fprintf(out, "Meanings: %s\n", strings.Join(entry.Meanings, "; "))
			if entry.SourceKanji != "" {
				fmt.Fprintf(out, "Source kanji: %s\n", entry.SourceKanji)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the entry as JSON")
	return cmd
}

func newVocabSearchCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOut bool
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "search <meaning>",
		Short: "Find word forms whose glosses resemble an English phrase",
		Example: `  jlptag vocab search "to eat"
  jlptag vocab search intake --limit 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			index, _, err := loadIndex(cmd, cfg)
			if err != nil {
				return err
			}

			query := strings.TrimSpace(args[0])
			hits := vocab.NewMeaningSearcher(index).Search(query, limit)

			if jsonOut {
				return writeJSON(cmd, newVocabSearchReport(query, hits))
			}

			out := cmd.OutOrStdout()
			if len(hits) == 0 {
				fmt.Fprintf(out, "No meanings resemble %q.\n", query)
				return nil
			}
			rows := make([][]string, 0, len(hits))
			for _, hit := range hits {
				rows = append(rows, []string{
					hit.Form,
					string(hit.Level),
					fmt.Sprintf("%.2f", hit.Score),
					strings.Join(hit.Meanings, "; "),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"FORM", "TIER", "SCORE", "MEANINGS"}, rows, 2))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the hits as JSON")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of hits to show")
	return cmd
}

type vocabSearchReport struct {
	Query string           `json:"query"`
	Hits  []vocabSearchHit `json:"hits"`
}

type vocabSearchHit struct {
	Form     string   `json:"form"`
	Level    string   `json:"level"`
	Score    float64  `json:"score"`
	Meanings []string `json:"meanings"`
}

func newVocabSearchReport(query string, hits []vocab.SearchHit) vocabSearchReport {
	report := vocabSearchReport{Query: query, Hits: make([]vocabSearchHit, 0, len(hits))}
	for _, hit := range hits {
		report.Hits = append(report.Hits, vocabSearchHit{
			Form:     hit.Form,
			Level:    string(hit.Level),
			Score:    hit.Score,
			Meanings: hit.Meanings,
		})
	}
	return report
}
