package main

import (
	"io"
	"log/slog"
	"sync"

	"github.com/spf13/cobra"

	"ghostie/internal/config"
	"ghostie/internal/logging"
)

type commandContext struct {
	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load()
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// logger returns the foreground logger writing to w.
func (c *commandContext) logger(w io.Writer) *slog.Logger {
	level := "info"
	if cfg := c.configValue(); cfg != nil {
		level = cfg.Logging.Level
	}
	return logging.NewInteractive(w, level)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
