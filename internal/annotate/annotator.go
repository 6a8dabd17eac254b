package annotate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"jlptag/internal/dict"
	"jlptag/internal/logging"
	"jlptag/internal/vocab"
)

// Summary counts every branch of a run. One entry lands in exactly one of
// the cascade counters, and the write counters partition the matched ones.
type Summary struct {
	Processed        int
	KanjiMatches     int
	ReadingMatches   int
	MeaningConfirmed int
	KanjiMismatches  int
	MeaningRejected  int
	NoMatch          int
	AlreadyTagged    int
	Queued           int
	Applied          int
	DryRun           bool
	Elapsed          time.Duration
}

// Matched returns how many entries resolved to a level candidate.
func (s *Summary) Matched() int {
	return s.KanjiMatches + s.ReadingMatches + s.MeaningConfirmed
}

// Annotator walks the dictionary once and applies resolved levels.
type Annotator struct {
	store   *dict.Store
	index   *vocab.Index
	logger  *slog.Logger
	sampler *logging.ProgressSampler
	dryRun  bool
}

// New builds an annotator. The logger may be nil.
func New(store *dict.Store, index *vocab.Index, dryRun bool, logger *slog.Logger) *Annotator {
	return &Annotator{
		store:   store,
		index:   index,
		logger:  logging.NewComponentLogger(logger, "annotate"),
		sampler: logging.NewProgressSampler(10),
		dryRun:  dryRun,
	}
}

// Run scans every dictionary entry, decides its level through the cascade,
// and commits the changed rows in a single transaction. Entries that already
// carry the resolved level are left untouched, so a second run over the same
// data queues nothing. In dry-run mode the scan happens but no write does.
func (a *Annotator) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	summary := &Summary{DryRun: a.dryRun}

	total, err := a.store.CountEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}
	a.logger.Info("annotation started",
		logging.Int("entries", total),
		logging.Int("forms", a.index.Len()),
		logging.Bool("dry_run", a.dryRun),
	)

	var updates []dict.LevelUpdate
	err = a.store.ScanEntries(ctx, func(entry dict.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		summary.Processed++
		a.logProgress(summary.Processed, total)

		decision := Decide(entry, a.index)
		a.count(summary, decision)
		if !decision.Verdict.Matched() {
			a.traceReject(entry, decision)
			return nil
		}
		if string(decision.Level) == entry.Level {
			summary.AlreadyTagged++
			return nil
		}
		updates = append(updates, dict.LevelUpdate{ID: entry.ID, Level: decision.Level})
		summary.Queued++
		a.logger.Debug("update queued",
			logging.Int64(logging.FieldEntryID, entry.ID),
			logging.String(logging.FieldForm, decision.Key),
			logging.String(logging.FieldTier, string(decision.Level)),
			logging.String(logging.FieldRule, decision.Rule),
		)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan entries: %w", err)
	}

	if a.dryRun {
		summary.Elapsed = time.Since(start)
		a.logger.Info("dry run complete, no rows written",
			logging.Int("queued", summary.Queued),
			logging.Duration("elapsed", summary.Elapsed),
		)
		return summary, nil
	}

	if err := a.store.ApplyLevels(ctx, updates); err != nil {
		return nil, fmt.Errorf("apply levels: %w", err)
	}
	summary.Applied = len(updates)
	summary.Elapsed = time.Since(start)
	a.logger.Info("annotation complete",
		logging.Int("matched", summary.Matched()),
		logging.Int("applied", summary.Applied),
		logging.Int("already_tagged", summary.AlreadyTagged),
		logging.Duration("elapsed", summary.Elapsed),
	)
	return summary, nil
}

func (a *Annotator) count(summary *Summary, decision Decision) {
	switch decision.Verdict {
	case VerdictKanjiMatch:
		summary.KanjiMatches++
	case VerdictReadingMatch:
		summary.ReadingMatches++
	case VerdictMeaningConfirmed:
		summary.MeaningConfirmed++
	case VerdictKanjiMismatch:
		summary.KanjiMismatches++
	case VerdictMeaningRejected:
		summary.MeaningRejected++
	case VerdictNoMatch:
		summary.NoMatch++
	}
}

func (a *Annotator) traceReject(entry dict.Entry, decision Decision) {
	if decision.Verdict == VerdictNoMatch {
		return
	}
	a.logger.Debug("reading hit rejected",
		logging.Int64(logging.FieldEntryID, entry.ID),
		logging.String(logging.FieldForm, entry.Kanji),
		logging.String("reading", entry.Reading),
		logging.String(logging.FieldRule, decision.Rule),
		logging.String("verdict", string(decision.Verdict)),
	)
}

func (a *Annotator) logProgress(processed, total int) {
	if total <= 0 {
		return
	}
	percent := float64(processed) / float64(total) * 100
	if a.sampler.ShouldLog(percent, "scan") {
		a.logger.Info("scan progress",
			logging.Int("processed", processed),
			logging.Int("entries", total),
		)
	}
}
