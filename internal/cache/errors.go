package cache

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by ReadByID when no record has the requested id.
var ErrNotFound = errors.New("notification not found")

// ErrInvalidRecord rejects a record before it reaches the database.
type ErrInvalidRecord struct {
	Reason string
}

func (e ErrInvalidRecord) Error() string {
	return "invalid notification: " + e.Reason
}

// StorageError reports an I/O or serialization failure inside the store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("cache %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// BatchError identifies the record at which WriteBatch stopped. Records
// before Index were persisted; records from Index on were not.
type BatchError struct {
	Index int
	ID    string
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("write batch stopped at record %d (id %q): %v", e.Index+1, e.ID, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
