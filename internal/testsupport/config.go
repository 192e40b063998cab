package testsupport

import (
	"path/filepath"
	"testing"

	"ghostie/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.ConfigDir = filepath.Join(base, "home")
	cfgVal.Paths.RuntimeDir = filepath.Join(base, "run")
	cfgVal.EnableOSNotifications = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithPollingWindowDays overrides the rolling window length.
func WithPollingWindowDays(days int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.PollingWindowDays = days
	}
}

// WithPollingInterval overrides the tick cadence in seconds.
func WithPollingInterval(seconds int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.PollingInterval = seconds
	}
}

// WithNtfyTopic sets the ntfy topic URL.
func WithNtfyTopic(topic string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = topic
	}
}

// WithGitHubBaseURL points the notification source at another server.
func WithGitHubBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.GitHub.BaseURL = url
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.ConfigDir)
}
