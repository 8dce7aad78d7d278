package store

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageUnavailable is returned by the constructors when the
	// underlying engine cannot be opened. Nothing can run without a store.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNotFound is returned by Get when no record has the requested id.
	ErrNotFound = errors.New("provider not found")

	// ErrMissingID is returned by Update when the record carries no id.
	ErrMissingID = errors.New("provider id is required")
)

// ReadError reports a failed read operation.
type ReadError struct {
	Op  string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("store %s: read failed: %v", e.Op, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a failed write operation.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("store %s: write failed: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
