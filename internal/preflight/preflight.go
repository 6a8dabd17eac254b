package preflight

import (
	"context"

	"jlptag/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config, in the order a
// run consumes its inputs: vocabulary first, then the database.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	return []Result{
		CheckDirectoryAccess("Vocabulary directory", cfg.Paths.VocabDir),
		CheckVocabLists(cfg.Paths.VocabDir),
		CheckDatabaseFile(cfg.Paths.Database),
		CheckSchema(ctx, cfg.Paths.Database),
	}
}
