package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePolling(); err != nil {
		return err
	}
	if err := c.validateGitHub(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePolling() error {
	if c.PollingInterval <= 0 {
		return errors.New("polling_interval must be positive (seconds)")
	}
	if c.PollingWindowDays <= 0 {
		return errors.New("polling_window_days must be positive")
	}
	if c.FetchRetries < 0 {
		return errors.New("fetch_retries must not be negative")
	}
	return nil
}

func (c *Config) validateGitHub() error {
	parsed, err := url.Parse(c.GitHub.BaseURL)
	if err != nil {
		return fmt.Errorf("github.base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("github.base_url must be an http(s) URL, got %q", c.GitHub.BaseURL)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
}
