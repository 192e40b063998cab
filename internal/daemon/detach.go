package daemon

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
)

// Detach starts executable in a new session with its standard streams bound
// to stdout and stderr, then releases it. The returned pid is meant for
// Registration.Commit.
func Detach(executable string, args []string, stdout, stderr *os.File) (int, error) {
	if strings.TrimSpace(executable) == "" {
		return 0, fmt.Errorf("resolve executable: executable path is empty")
	}
	devNull, err := os.Open(os.DevNull)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", os.DevNull, err)
	}
	defer devNull.Close()

	proc := exec.Command(executable, args...)
	proc.Stdin = devNull
	proc.Stdout = stdout
	proc.Stderr = stderr
	proc.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := proc.Start(); err != nil {
		return 0, fmt.Errorf("launch daemon: %w", err)
	}
	pid := proc.Process.Pid
	if err := proc.Process.Release(); err != nil {
		return pid, fmt.Errorf("release daemon process: %w", err)
	}
	return pid, nil
}
