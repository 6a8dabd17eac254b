package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"jlptag/internal/config"
	"jlptag/internal/logging"
	"jlptag/internal/textutil"
)

type commandContext struct {
	configFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolvedPath, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolvedPath
		c.configExists = exists
	})
	return c.config, c.configErr
}

// configSource reports where ensureConfig read its configuration from and
// whether that file existed. Only meaningful after ensureConfig succeeds.
func (c *commandContext) configSource() (string, bool) {
	return c.configPath, c.configExists
}

// newRunLogger builds the structured logger for one command invocation and
// stamps every record with a fresh run id, so interleaved log files stay
// attributable.
func (c *commandContext) newRunLogger(cfg *config.Config) (*slog.Logger, string, error) {
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, "", err
	}
	runID := uuid.NewString()
	return logger.With(logging.String(logging.FieldRunID, runID)), runID, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	return textutil.Ternary(value, "yes", "no")
}
