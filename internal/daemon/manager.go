package daemon

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/sys/unix"

	"ghostie/internal/config"
)

// State classifies the pid marker.
type State int

const (
	StateAbsent State = iota
	StateStale
	StateLive
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateStale:
		return "stale"
	case StateLive:
		return "running"
	default:
		return "unknown"
	}
}

// Manager reads and writes the pid marker for one runtime directory.
type Manager struct {
	pidPath  string
	lockPath string
}

// NewManager builds a manager for the configured runtime directory.
func NewManager(cfg *config.Config) (*Manager, error) {
	if cfg == nil {
		return nil, errors.New("daemon manager requires config")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	return &Manager{
		pidPath:  cfg.PIDPath(),
		lockPath: cfg.LockPath(),
	}, nil
}

// PIDPath returns the marker location.
func (m *Manager) PIDPath() string {
	return m.pidPath
}

// State inspects the marker. A marker that cannot be parsed counts as stale.
func (m *Manager) State() (State, int, error) {
	data, err := os.ReadFile(m.pidPath)
	if errors.Is(err, os.ErrNotExist) {
		return StateAbsent, 0, nil
	}
	if err != nil {
		return StateAbsent, 0, fmt.Errorf("read pid marker %q: %w", m.pidPath, err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return StateStale, 0, nil
	}
	alive, err := ProcessAlive(pid)
	if err != nil {
		return StateAbsent, pid, fmt.Errorf("check pid %d: %w", pid, err)
	}
	if !alive {
		return StateStale, pid, nil
	}
	return StateLive, pid, nil
}

// Registration is an in-progress start. The registration lock is held until
// Commit or Abort.
type Registration struct {
	manager *Manager
	lock    *flock.Flock
	done    bool
}

// Register claims the right to start a new instance. A live marker yields an
// AlreadyRunningError; a stale marker is removed.
func (m *Manager) Register() (*Registration, error) {
	lock := flock.New(m.lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire registration lock: %w", err)
	}
	if !ok {
		return nil, ErrRegistrationInProgress
	}

	state, pid, err := m.State()
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	switch state {
	case StateLive:
		_ = lock.Unlock()
		return nil, &AlreadyRunningError{PID: pid}
	case StateStale:
		if err := m.removeMarker(); err != nil {
			_ = lock.Unlock()
			return nil, err
		}
	}
	return &Registration{manager: m, lock: lock}, nil
}

// Commit records pid as the live instance and releases the lock.
func (r *Registration) Commit(pid int) error {
	if r.done {
		return errors.New("registration already finished")
	}
	r.done = true
	defer r.lock.Unlock()

	if pid <= 0 {
		return fmt.Errorf("invalid pid %d", pid)
	}
	value := strconv.Itoa(pid) + "\n"
	if err := os.WriteFile(r.manager.pidPath, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write pid marker: %w", err)
	}
	return nil
}

// Abort releases the lock without writing a marker.
func (r *Registration) Abort() {
	if r.done {
		return
	}
	r.done = true
	_ = r.lock.Unlock()
}

// Kill terminates the live instance with SIGTERM and removes the marker. It
// returns the signalled pid, or 0 when nothing was running.
func (m *Manager) Kill() (int, error) {
	state, pid, err := m.State()
	if err != nil {
		return 0, err
	}
	switch state {
	case StateAbsent:
		return 0, nil
	case StateStale:
		return 0, m.removeMarker()
	}
	if pid == os.Getpid() {
		return 0, fmt.Errorf("refusing to kill current process (pid %d)", pid)
	}
	if err := unix.Kill(pid, unix.SIGTERM); err != nil && !errors.Is(err, unix.ESRCH) {
		return 0, fmt.Errorf("signal pid %d: %w", pid, err)
	}
	if err := m.removeMarker(); err != nil {
		return pid, err
	}
	return pid, nil
}

// Release removes the marker if it still records pid. The daemon calls this
// on exit so a newer registration is never clobbered.
func (m *Manager) Release(pid int) error {
	data, err := os.ReadFile(m.pidPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read pid marker %q: %w", m.pidPath, err)
	}
	recorded, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || recorded != pid {
		return nil
	}
	return m.removeMarker()
}

func (m *Manager) removeMarker() error {
	if err := os.Remove(m.pidPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove pid marker %q: %w", m.pidPath, err)
	}
	return nil
}

// ProcessAlive reports whether pid names a running process. It treats zombies as dead so an exited but unreaped child does
// not block a restart.
func ProcessAlive(pid int) (bool, error) {
	exists, err := process.PidExists(int32(pid))
	if err != nil || !exists {
		return false, err
	}
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return false, nil
	}
	statuses, err := proc.Status()
	if err != nil {
		return true, nil
	}
	for _, status := range statuses {
		if status == process.Zombie {
			return false, nil
		}
	}
	return true, nil
}
