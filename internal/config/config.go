package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_settings.toml
var sampleSettings string

// HomeEnv overrides the config directory when set.
const HomeEnv = "GHOSTIE_HOME"

// GitHub contains settings for the remote notification source.
type GitHub struct {
	BaseURL        string `toml:"base_url"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Notifications contains settings for the optional ntfy alert channel.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains daemon log output settings.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Paths contains directory overrides. ConfigDir is never read from the
// settings file; it is the directory the settings file lives in.
type Paths struct {
	ConfigDir  string `toml:"-"`
	RuntimeDir string `toml:"runtime_dir"`
}

// Config encapsulates all configuration values for ghostie.
type Config struct {
	PollingInterval       int  `toml:"polling_interval"`
	PollingWindowDays     int  `toml:"polling_window_days"`
	EnableOSNotifications bool `toml:"enable_os_notifications"`
	FetchRetries          int  `toml:"fetch_retries"`

	GitHub        GitHub        `toml:"github"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
	Paths         Paths         `toml:"paths"`
}

// DefaultConfigDir returns the absolute config directory, honoring GHOSTIE_HOME.
func DefaultConfigDir() (string, error) {
	if value := strings.TrimSpace(os.Getenv(HomeEnv)); value != "" {
		return expandPath(value)
	}
	return expandPath(defaultConfigDir)
}

// Load reads settings.toml from the config directory when present and returns
// the normalized, validated config along with the settings path and whether
// the file existed.
func Load() (*Config, string, bool, error) {
	cfg := Default()

	dir, err := DefaultConfigDir()
	if err != nil {
		return nil, "", false, err
	}
	settingsPath := filepath.Join(dir, settingsFileName)

	exists := true
	file, err := os.Open(settingsPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		exists = false
	case err != nil:
		return nil, "", false, fmt.Errorf("open settings: %w", err)
	default:
		defer file.Close()
		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse settings: %w", err)
		}
	}
	cfg.Paths.ConfigDir = dir

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, settingsPath, exists, nil
}

// EnsureDirectories creates the config and runtime directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.ConfigDir, c.Paths.RuntimeDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SettingsPath returns the human-edited settings file location.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Paths.ConfigDir, settingsFileName)
}

// CachePath returns the SQLite notification cache location.
func (c *Config) CachePath() string {
	return filepath.Join(c.Paths.ConfigDir, cacheFileName)
}

// TokenPath returns the persisted GitHub token location.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Paths.ConfigDir, tokenFileName)
}

// PIDPath returns the pid marker location.
func (c *Config) PIDPath() string {
	return filepath.Join(c.Paths.RuntimeDir, ProcessName+"_pid_file")
}

// LockPath returns the flock file guarding pid registration.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.RuntimeDir, ProcessName+".lock")
}

// StdoutLogPath returns the daemon stdout capture file.
func (c *Config) StdoutLogPath() string {
	return filepath.Join(c.Paths.RuntimeDir, ProcessName+"_daemon.out")
}

// StderrLogPath returns the daemon stderr capture file.
func (c *Config) StderrLogPath() string {
	return filepath.Join(c.Paths.RuntimeDir, ProcessName+"_daemon.err")
}

// PollInterval returns the tick cadence.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollingInterval) * time.Second
}

// Window returns the rolling window length used for fetching and pruning.
func (c *Config) Window() time.Duration {
	return time.Duration(c.PollingWindowDays) * 24 * time.Hour
}

// GitHubTimeout returns the per-request timeout for the notification source.
func (c *Config) GitHubTimeout() time.Duration {
	return time.Duration(c.GitHub.RequestTimeout) * time.Second
}

// NtfyTimeout returns the per-request timeout for ntfy delivery.
func (c *Config) NtfyTimeout() time.Duration {
	return time.Duration(c.Notifications.RequestTimeout) * time.Second
}

// CreateSample writes the sample settings file to path.
func CreateSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	return os.WriteFile(path, []byte(sampleSettings), 0o644)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
