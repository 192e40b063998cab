package daemonctl

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ghostie/internal/config"
	"ghostie/internal/daemon"
	"ghostie/internal/logsink"
)

// DaemonCommand is the hidden subcommand the detached child runs.
const DaemonCommand = "daemon"

// DetachedFlag tells the child that its parent records the pid marker.
const DetachedFlag = "--detached"

// StartResult describes a successful launch.
type StartResult struct {
	PID        int
	StdoutPath string
	StderrPath string
}

// Start registers a new instance, truncates the log files and detaches
// `executable daemon` with its streams bound to them. A live instance yields
// daemon.ErrAlreadyRunning and nothing is launched.
func Start(cfg *config.Config, executable string) (StartResult, error) {
	if strings.TrimSpace(executable) == "" {
		return StartResult{}, errors.New("resolve executable: executable path is empty")
	}
	mgr, err := daemon.NewManager(cfg)
	if err != nil {
		return StartResult{}, err
	}
	sink, err := logsink.New(cfg)
	if err != nil {
		return StartResult{}, err
	}

	reg, err := mgr.Register()
	if err != nil {
		return StartResult{}, err
	}

	stdout, stderr, err := sink.Prepare()
	if err != nil {
		reg.Abort()
		return StartResult{}, err
	}
	// The child holds its own descriptors after Detach.
	defer stdout.Close()
	defer stderr.Close()

	pid, err := daemon.Detach(executable, []string{DaemonCommand, DetachedFlag}, stdout, stderr)
	if err != nil {
		reg.Abort()
		return StartResult{}, err
	}
	if err := reg.Commit(pid); err != nil {
		return StartResult{}, fmt.Errorf("record daemon pid %d: %w", pid, err)
	}

	outPath, errPath := sink.Paths()
	return StartResult{PID: pid, StdoutPath: outPath, StderrPath: errPath}, nil
}

// StopResult describes the outcome of Stop.
type StopResult struct {
	PID    int
	Exited bool
}

// Stop sends SIGTERM to the live instance and waits up to grace for it to
// exit. A zero PID in the result means nothing was running.
func Stop(cfg *config.Config, grace time.Duration) (StopResult, error) {
	mgr, err := daemon.NewManager(cfg)
	if err != nil {
		return StopResult{}, err
	}
	pid, err := mgr.Kill()
	if err != nil || pid == 0 {
		return StopResult{PID: pid}, err
	}
	return StopResult{PID: pid, Exited: WaitForExit(pid, grace)}, nil
}

// WaitForExit polls until pid is gone or timeout elapses.
func WaitForExit(pid int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		alive, err := daemon.ProcessAlive(pid)
		if err == nil && !alive {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// Status reports the marker state and recorded pid.
func Status(cfg *config.Config) (daemon.State, int, error) {
	mgr, err := daemon.NewManager(cfg)
	if err != nil {
		return daemon.StateAbsent, 0, err
	}
	return mgr.State()
}
