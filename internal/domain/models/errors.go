package models

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned when a dataset file has an extension the
// reader does not understand.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// ErrNotImplemented marks declared but intentionally unimplemented operations.
var ErrNotImplemented = errors.New("not implemented")

// FormatError reports a source value that could not be coerced into the
// column's declared type. Fatal at load time.
type FormatError struct {
	Column string
	Value  string
	Row    int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("bad value %q in column %s (row %d)", e.Value, e.Column, e.Row)
}

// StorageError wraps failures from the persistence adapter. Not retried;
// surfaced to the caller as-is.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
