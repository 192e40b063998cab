package config

const (
	defaultConfigDir          = "~/.ghostie"
	defaultPollingInterval    = 60
	defaultPollingWindowDays  = 2
	defaultFetchRetries       = 0
	defaultGitHubBaseURL      = "https://api.github.com/"
	defaultGitHubTimeout      = 30
	defaultNtfyRequestTimeout = 10
	defaultLogLevel           = "info"
	defaultLogFormat          = "console"

	// ProcessName keys the pid marker and the daemon log files.
	ProcessName = "ghostie"

	settingsFileName = "settings.toml"
	cacheFileName    = "notifications.db"
	tokenFileName    = "github.token"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		PollingInterval:       defaultPollingInterval,
		PollingWindowDays:     defaultPollingWindowDays,
		EnableOSNotifications: true,
		FetchRetries:          defaultFetchRetries,
		GitHub: GitHub{
			BaseURL:        defaultGitHubBaseURL,
			RequestTimeout: defaultGitHubTimeout,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyRequestTimeout,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Paths: Paths{
			ConfigDir: defaultConfigDir,
		},
	}
}
