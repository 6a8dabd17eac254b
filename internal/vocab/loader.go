package vocab

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"jlptag/internal/config"
	"jlptag/internal/jlpt"
	"jlptag/internal/logging"
)

// ErrEmptyIndex marks a load that produced no usable vocabulary at all.
// There is nothing to match against, so the run must not touch the database.
var ErrEmptyIndex = errors.New("vocabulary index is empty")

// Stats reports what the loader consumed.
type Stats struct {
	Lists        int
	MissingLists []jlpt.Level
	Rows         int
	Skipped      int
	Forms        int
	RowsByLevel  map[jlpt.Level]int
}

// Loader reads the five tier lists from the vocabulary directory.
type Loader struct {
	dir      string
	encoding string
	logger   *slog.Logger
}

// NewLoader builds a loader from configuration. The logger may be nil.
func NewLoader(cfg *config.Config, logger *slog.Logger) *Loader {
	return &Loader{
		dir:      cfg.Paths.VocabDir,
		encoding: cfg.Vocab.Encoding,
		logger:   logging.NewComponentLogger(logger, "vocab"),
	}
}

// Load ingests every available tier list in least-to-most-advanced order and
// resolves the result into an Index. A missing list is a warning; an index
// with zero forms is ErrEmptyIndex.
func (l *Loader) Load(ctx context.Context) (*Index, Stats, error) {
	builder := NewBuilder()
	stats := Stats{RowsByLevel: make(map[jlpt.Level]int)}

	for _, level := range jlpt.Levels() {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		path := filepath.Join(l.dir, ListFileName(level))
		rows, skipped, err := l.loadList(level, path, builder)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				stats.MissingLists = append(stats.MissingLists, level)
				logging.WarnWithContext(l.logger, "vocabulary list missing", "vocab_list_missing",
					logging.String(logging.FieldTier, string(level)),
					logging.String("path", path),
					logging.String(logging.FieldImpact, "tier contributes no vocabulary"),
				)
				continue
			}
			return nil, stats, err
		}

		stats.Lists++
		stats.Rows += rows
		stats.Skipped += skipped
		stats.RowsByLevel[level] = rows
		l.logger.Info("vocabulary list ingested",
			logging.String(logging.FieldTier, string(level)),
			logging.Int("rows", rows),
			logging.Int("skipped", skipped),
		)
	}

	index := builder.Build()
	stats.Forms = index.Len()
	if stats.Forms == 0 {
		return nil, stats, fmt.Errorf("%w: read %d lists, %d rows", ErrEmptyIndex, stats.Lists, stats.Rows)
	}

	l.logger.Info("vocabulary index built",
		logging.Int("forms", stats.Forms),
		logging.Int("rows", stats.Rows),
		logging.Int("lists", stats.Lists),
	)
	return index, stats, nil
}

// loadList reads one tier list. Malformed rows are skipped and counted, never
// fatal; only I/O failures propagate.
func (l *Loader) loadList(level jlpt.Level, path string, builder *Builder) (rows, skipped int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open vocabulary list: %w", err)
	}
	defer file.Close()

	decoded, err := decodeReader(file, l.encoding)
	if err != nil {
		return 0, 0, err
	}

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1 // allow variable column count

	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			rows++
			skipped++
			l.traceSkip(level, line, "unparseable row")
			continue
		}
		if err != nil {
			return rows, skipped, fmt.Errorf("read %s: %w", filepath.Base(path), err)
		}

		rows++
		if len(record) < 3 {
			skipped++
			l.traceSkip(level, line, "fewer than 3 fields")
			continue
		}
		kanji := strings.TrimSpace(record[0])
		kana := strings.TrimSpace(record[1])
		meaning := strings.TrimSpace(record[2])
		if kanji == "" && kana == "" {
			skipped++
			l.traceSkip(level, line, "no word form")
			continue
		}
		if meaning == "" {
			skipped++
			l.traceSkip(level, line, "no meaning")
			continue
		}
		builder.Add(level, kanji, kana, meaning)
	}
	return rows, skipped, nil
}

func (l *Loader) traceSkip(level jlpt.Level, line int, reason string) {
	l.logger.Debug("vocabulary row skipped",
		logging.String(logging.FieldTier, string(level)),
		logging.Int("line", line),
		logging.String("reason", reason),
	)
}

// decodeReader wraps r so the CSV layer always sees UTF-8. Real-world JLPT
// lists still circulate in Shift-JIS and EUC-JP.
func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch encoding {
	case "", "utf-8":
		return r, nil
	case "shift-jis":
		return transform.NewReader(r, japanese.ShiftJIS.NewDecoder()), nil
	case "euc-jp":
		return transform.NewReader(r, japanese.EUCJP.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("vocab encoding: unsupported value %q", encoding)
	}
}
