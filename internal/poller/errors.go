package poller

import "fmt"

// FetchError wraps a failure to list notifications from the remote source.
type FetchError struct {
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Attempts > 1 {
		return fmt.Sprintf("fetch notifications (after %d attempts): %v", e.Attempts, e.Err)
	}
	return fmt.Sprintf("fetch notifications: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
