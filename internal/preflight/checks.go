package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"ghostie/internal/config"
	"ghostie/internal/credentials"
)

const (
	githubCheckTimeout = 10 * time.Second
	ntfyCheckTimeout   = 5 * time.Second
)

// AuthChecker verifies GitHub credentials. github.Client implements it.
type AuthChecker interface {
	CheckAuth(ctx context.Context) (string, error)
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckBinary reports whether command resolves on PATH.
func CheckBinary(name, command string, optional bool) Result {
	command = strings.TrimSpace(command)
	if command == "" {
		return Result{Name: name, Optional: optional, Detail: "command not configured"}
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return Result{Name: name, Optional: optional, Detail: fmt.Sprintf("binary %q not found", command)}
	}
	return Result{Name: name, Passed: true, Optional: optional, Detail: path}
}

// CheckToken reports where the GitHub token comes from.
func CheckToken(cfg *config.Config) Result {
	const name = "GitHub token"
	if _, err := credentials.Get(cfg); err != nil {
		if errors.Is(err, credentials.ErrTokenMissing) {
			return Result{Name: name, Detail: "not set (run `ghostie token set`)"}
		}
		return Result{Name: name, Detail: err.Error()}
	}
	if info, err := os.Stat(cfg.TokenPath()); err == nil {
		if info.Mode().Perm()&0o077 != 0 {
			return Result{Name: name, Detail: fmt.Sprintf("%s is readable by other users (mode %s)", cfg.TokenPath(), info.Mode().Perm())}
		}
		return Result{Name: name, Passed: true, Detail: cfg.TokenPath()}
	}
	return Result{Name: name, Passed: true, Detail: "from $" + credentials.EnvKey}
}

// CheckGitHub verifies the token against the API with a single attempt.
func CheckGitHub(ctx context.Context, auth AuthChecker) Result {
	const name = "GitHub API"
	checkCtx, cancel := context.WithTimeout(ctx, githubCheckTimeout)
	defer cancel()

	login, err := auth.CheckAuth(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: summarizeError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "authenticated as " + login}
}

// CheckNtfy verifies that the ntfy server behind topic answers HTTP requests.
// The topic itself is not published to.
func CheckNtfy(ctx context.Context, topic string) Result {
	const name = "ntfy"
	endpoint, err := url.Parse(strings.TrimSpace(topic))
	if err != nil || endpoint.Scheme == "" || endpoint.Host == "" {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("invalid topic url %q", topic)}
	}
	health := url.URL{Scheme: endpoint.Scheme, Host: endpoint.Host, Path: "/v1/health"}

	checkCtx, cancel := context.WithTimeout(ctx, ntfyCheckTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, health.String(), nil)
	if err != nil {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("health check failed (%v)", err)}
	}
	resp, err := (&http.Client{Timeout: ntfyCheckTimeout}).Do(req)
	if err != nil {
		return Result{Name: name, Optional: true, Detail: summarizeError(err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("health check failed (%d)", resp.StatusCode)}
	}
	return Result{Name: name, Passed: true, Optional: true, Detail: endpoint.Host + " reachable"}
}

func summarizeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out (server unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timed out (server unreachable)"
	}
	return err.Error()
}
