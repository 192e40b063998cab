package daemon

import (
	"errors"
	"fmt"
)

// ErrAlreadyRunning matches AlreadyRunningError via errors.Is.
var ErrAlreadyRunning = errors.New("ghostie is already running")

// ErrRegistrationInProgress indicates another process holds the registration lock.
var ErrRegistrationInProgress = errors.New("another ghostie start is in progress")

// AlreadyRunningError reports the pid of the live instance.
type AlreadyRunningError struct {
	PID int
}

func (e *AlreadyRunningError) Error() string {
	return fmt.Sprintf("ghostie is already running (pid %d)", e.PID)
}

// Is lets errors.Is(err, ErrAlreadyRunning) succeed.
func (e *AlreadyRunningError) Is(target error) bool {
	return target == ErrAlreadyRunning
}
