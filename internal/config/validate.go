package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateVocab(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.VocabDir == "" {
		return errors.New("paths.vocab_dir must be set")
	}
	if c.Paths.Database == "" {
		return errors.New("paths.database must be set (or set JLPTAG_DATABASE)")
	}
	return nil
}

func (c *Config) validateVocab() error {
	switch c.Vocab.Encoding {
	case "utf-8", "shift-jis", "euc-jp":
		return nil
	default:
		return fmt.Errorf("vocab.encoding must be one of utf-8, shift-jis, euc-jp (got %q)", c.Vocab.Encoding)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	return nil
}
