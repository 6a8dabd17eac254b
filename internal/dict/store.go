package dict

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"jlptag/internal/jlpt"
)

// ErrMissingDatabase marks an Open against a database file that does not exist.
var ErrMissingDatabase = errors.New("dictionary database not found")

// tableName is the headword table maintained by the reader application.
const tableName = "dict_index"

var requiredColumns = []string{"kanji", "reading", "meaning", "level"}

// Store manages read and update access to the dictionary database.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to an existing dictionary database. The file must already
// exist: the sqlite driver would silently create an empty database otherwise,
// and an empty database is always operator error here.
func Open(path string) (*Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingDatabase, path)
		}
		return nil, fmt.Errorf("stat database: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("database path %q is a directory", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	return &Store{db: db, path: path}, nil
}

// Diagnose reports database health for path without requiring a prior Open.
// A missing file is a finding in the report, not an error.
func Diagnose(ctx context.Context, path string) (Health, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Health{DBPath: path}, nil
	}
	store, err := Open(path)
	if err != nil {
		return Health{DBPath: path, Error: err.Error()}, err
	}
	defer func() {
		_ = store.Close()
	}()
	return store.CheckHealth(ctx)
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// VerifySchema confirms the dict_index table exists with every column the
// annotator reads or writes. It is the schema half of preflight; Open already
// covered file existence.
func (s *Store) VerifySchema(ctx context.Context) error {
	exists, err := s.tableExists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("table %s not found in %s", tableName, s.path)
	}

	columns, err := s.columns(ctx)
	if err != nil {
		return err
	}
	if missing := missingColumns(columns); len(missing) > 0 {
		return fmt.Errorf("table %s is missing columns %v (has the level column been added?)", tableName, missing)
	}
	return nil
}

// CountEntries returns the number of dictionary rows.
func (s *Store) CountEntries(ctx context.Context) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM dict_index`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}

// ScanEntries streams every dictionary row to fn in rowid order. A non-nil
// error from fn aborts the scan and is returned unchanged.
func (s *Store) ScanEntries(ctx context.Context, fn func(Entry) error) error {
	rows, err := s.db.QueryContext(ctx, `SELECT rowid, kanji, reading, meaning, level FROM dict_index ORDER BY rowid`)
	if err != nil {
		return fmt.Errorf("read entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return fmt.Errorf("scan entry: %w", err)
		}
		if err := fn(entry); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate entries: %w", err)
	}
	return nil
}

// ApplyLevels writes all queued level updates inside one transaction. Either
// every update lands or none does; a failure mid-batch rolls the whole batch
// back and the database stays exactly as it was.
func (s *Store) ApplyLevels(ctx context.Context, updates []LevelUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `UPDATE dict_index SET level = ? WHERE rowid = ?`)
	if err != nil {
		return fmt.Errorf("prepare level update: %w", err)
	}
	defer stmt.Close()

	for _, update := range updates {
		if _, err := stmt.ExecContext(ctx, string(update.Level), update.ID); err != nil {
			return fmt.Errorf("update entry %d: %w", update.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit level updates: %w", err)
	}
	return nil
}

// TagStats returns a count of entries grouped by stored level.
func (s *Store) TagStats(ctx context.Context) (TagStats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT COALESCE(level, ''), COUNT(1) FROM dict_index GROUP BY COALESCE(level, '')`)
	if err != nil {
		return TagStats{}, fmt.Errorf("tag stats: %w", err)
	}
	defer rows.Close()

	stats := TagStats{ByLevel: make(map[jlpt.Level]int)}
	for rows.Next() {
		var stored string
		var count int
		if err := rows.Scan(&stored, &count); err != nil {
			return TagStats{}, fmt.Errorf("scan tag stats: %w", err)
		}
		stats.Total += count
		switch level, ok := jlpt.ParseLevel(stored); {
		case stored == "":
			stats.Untagged += count
		case ok:
			stats.ByLevel[level] += count
		default:
			stats.Other += count
		}
	}
	if err := rows.Err(); err != nil {
		return TagStats{}, fmt.Errorf("iterate tag stats: %w", err)
	}
	return stats, nil
}

// CheckHealth returns diagnostic information about the dictionary database.
func (s *Store) CheckHealth(ctx context.Context) (Health, error) {
	health := Health{DBPath: s.path}

	if s.path == "" {
		return health, errors.New("dictionary database path is unknown")
	}

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			health.DatabaseExists = false
			return health, nil
		}
		return health, fmt.Errorf("stat database: %w", err)
	}
	if info.IsDir() {
		return health, fmt.Errorf("database path %q is a directory", s.path)
	}
	health.DatabaseExists = true

	if s.db == nil {
		return health, errors.New("database connection unavailable")
	}

	connCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(connCtx); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("ping database: %w", err)
	}
	health.DatabaseReadable = true

	exists, err := s.tableExists(connCtx)
	if err != nil {
		health.Error = err.Error()
		return health, err
	}
	health.TableExists = exists
	if !exists {
		return health, nil
	}

	columns, err := s.columns(connCtx)
	if err != nil {
		health.Error = err.Error()
		return health, err
	}
	health.ColumnsPresent = columns
	health.MissingColumns = missingColumns(columns)

	total, err := s.CountEntries(connCtx)
	if err != nil {
		health.Error = err.Error()
		return health, err
	}
	health.TotalEntries = total

	return health, nil
}

func (s *Store) tableExists(ctx context.Context) (bool, error) {
	var name string
	row := s.db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, tableName)
	if err := row.Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("query table info: %w", err)
	}
	return true, nil
}

func (s *Store) columns(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `PRAGMA table_info(dict_index)`)
	if err != nil {
		return nil, fmt.Errorf("table info: %w", err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var (
			cid     int
			name    string
			typeStr string
			notNull int
			dflt    any
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typeStr, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scan table info: %w", err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate table info: %w", err)
	}
	return columns, nil
}

func missingColumns(present []string) []string {
	have := make(map[string]struct{}, len(present))
	for _, name := range present {
		have[name] = struct{}{}
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := have[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (Entry, error) {
	var (
		id      int64
		kanji   sql.NullString
		reading sql.NullString
		meaning sql.NullString
		level   sql.NullString
	)
	if err := scanner.Scan(&id, &kanji, &reading, &meaning, &level); err != nil {
		return Entry{}, err
	}
	return Entry{
		ID:      id,
		Kanji:   kanji.String,
		Reading: reading.String,
		Meaning: meaning.String,
		Level:   level.String,
	}, nil
}
