package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeVocab()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.VocabDir) == "" {
		c.Paths.VocabDir = defaultVocabDir
	}
	if c.Paths.VocabDir, err = expandPath(c.Paths.VocabDir); err != nil {
		return fmt.Errorf("paths.vocab_dir: %w", err)
	}
	// JLPTAG_DATABASE wins over the config file so scripted runs can point the
	// same config at throwaway copies of the database.
	if value, ok := os.LookupEnv("JLPTAG_DATABASE"); ok && strings.TrimSpace(value) != "" {
		c.Paths.Database = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.Database) == "" {
		c.Paths.Database = defaultDatabase
	}
	if c.Paths.Database, err = expandPath(c.Paths.Database); err != nil {
		return fmt.Errorf("paths.database: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeVocab() {
	encoding := strings.ToLower(strings.TrimSpace(c.Vocab.Encoding))
	switch encoding {
	case "", "utf8", "utf-8":
		encoding = "utf-8"
	case "sjis", "shift_jis", "shift-jis", "shiftjis":
		encoding = "shift-jis"
	case "eucjp", "euc_jp", "euc-jp":
		encoding = "euc-jp"
	}
	c.Vocab.Encoding = encoding
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
