package preflight

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"jlptag/internal/dict"
	"jlptag/internal/jlpt"
	"jlptag/internal/vocab"
)

// CheckDirectoryAccess verifies that the directory exists and is readable.
// The tagger never writes into the vocabulary directory, so write access is
// not required.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// CheckVocabLists counts the tier lists present in dir. One list is enough
// to pass; the run warns about the rest, but zero lists means there is
// nothing to do at all.
func CheckVocabLists(dir string) Result {
	const name = "Vocabulary lists"

	var missing []string
	found := 0
	for _, level := range jlpt.Levels() {
		if _, err := os.Stat(filepath.Join(dir, vocab.ListFileName(level))); err != nil {
			missing = append(missing, string(level))
			continue
		}
		found++
	}
	total := len(jlpt.Levels())
	if found == 0 {
		return Result{Name: name, Detail: fmt.Sprintf("no lists found in %s", dir)}
	}
	if len(missing) > 0 {
		return Result{
			Name:   name,
			Passed: true,
			Detail: fmt.Sprintf("%d of %d present (missing: %s)", found, total, strings.Join(missing, ", ")),
		}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d of %d present", found, total)}
}

// CheckDatabaseFile verifies that the database file exists and is writable.
func CheckDatabaseFile(path string) Result {
	const name = "Dictionary database"

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSchema verifies the dict_index table and its required columns.
func CheckSchema(ctx context.Context, path string) Result {
	const name = "Database schema"

	health, err := dict.Diagnose(ctx, path)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	if !health.DatabaseExists {
		return Result{Name: name, Detail: "database missing, schema unknown"}
	}
	if !health.TableExists {
		return Result{Name: name, Detail: "table dict_index not found"}
	}
	if len(health.MissingColumns) > 0 {
		return Result{
			Name:   name,
			Detail: fmt.Sprintf("dict_index missing columns: %s", strings.Join(health.MissingColumns, ", ")),
		}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("dict_index with %d entries", health.TotalEntries)}
}
