package preflight

import (
	"context"
	"runtime"

	"ghostie/internal/alerts"
	"ghostie/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	// Optional failures are reported but do not stop the daemon.
	Optional bool
	Detail   string
}

// RunAll executes every applicable check. auth may be nil when no token is
// available, in which case the GitHub check is reported as failed.
func RunAll(ctx context.Context, cfg *config.Config, auth AuthChecker) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Config directory", cfg.Paths.ConfigDir),
		CheckDirectoryAccess("Runtime directory", cfg.Paths.RuntimeDir),
		CheckToken(cfg),
	}

	if auth != nil {
		results = append(results, CheckGitHub(ctx, auth))
	} else {
		results = append(results, Result{Name: "GitHub API", Detail: "skipped (no token)"})
	}

	if cfg.EnableOSNotifications {
		if name, _, ok := alerts.DesktopCommand(runtime.GOOS, "", 0); ok {
			results = append(results, CheckBinary("Desktop notifier", name, true))
		} else {
			results = append(results, Result{Name: "Desktop notifier", Optional: true, Detail: "unsupported on " + runtime.GOOS})
		}
	}
	if cfg.Notifications.NtfyTopic != "" {
		results = append(results, CheckNtfy(ctx, cfg.Notifications.NtfyTopic))
	}

	return results
}

// Failed reports whether any required check failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}
