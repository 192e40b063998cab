package alerts

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// ErrNotifierUnavailable indicates no desktop notifier exists on this host.
var ErrNotifierUnavailable = errors.New("desktop notifier unavailable")

// Desktop raises a native desktop notification through notify-send on Linux
// or osascript on macOS.
type Desktop struct {
	goos string
}

// NewDesktop builds a desktop sink for the running platform.
func NewDesktop() *Desktop {
	return &Desktop{goos: runtime.GOOS}
}

func (d *Desktop) Send(ctx context.Context, message string, timeout time.Duration) error {
	name, args, ok := DesktopCommand(d.goos, message, timeout)
	if !ok {
		return fmt.Errorf("%w on %s", ErrNotifierUnavailable, d.goos)
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("%w: %s not found", ErrNotifierUnavailable, name)
	}

	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()
	output, err := exec.CommandContext(ctx, path, args...).CombinedOutput()
	if err != nil {
		if detail := strings.TrimSpace(string(output)); detail != "" {
			return fmt.Errorf("%s: %w: %s", name, err, detail)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// DesktopCommand returns the notifier invocation for goos. ok is false on
// platforms without a supported notifier.
func DesktopCommand(goos, message string, timeout time.Duration) (name string, args []string, ok bool) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		args = []string{}
		if timeout > 0 {
			args = append(args, "-t", strconv.FormatInt(timeout.Milliseconds(), 10))
		}
		args = append(args, "-a", AppName, AppName, message)
		return "notify-send", args, true
	case "darwin":
		script := fmt.Sprintf("display notification %s with title %s", appleScriptString(message), appleScriptString(AppName))
		return "osascript", []string{"-e", script}, true
	default:
		return "", nil, false
	}
}

func appleScriptString(value string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(value)
	return `"` + escaped + `"`
}
