package musictag

import (
	"errors"
	"fmt"
)

var (
	// ErrDisposed is returned when an operation is attempted on an
	// unloaded session.
	ErrDisposed = errors.New("session is disposed")

	// ErrNoTag is returned when a file exposes zero tags. Loading such a
	// file fails, since no field would be addressable.
	ErrNoTag = errors.New("file carries no tags")

	// ErrNoTarget is returned by Save when the session holds neither a
	// buffer nor a path to write to.
	ErrNoTarget = errors.New("no save target available")

	// ErrInvalidRating is returned by SetRating for values outside 1-5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrUnsupportedEnvironment is returned when a filesystem operation
	// is requested in an execution context without filesystem access.
	ErrUnsupportedEnvironment = errors.New("filesystem access is not supported in this environment")

	// ErrInvalidInput matches any *ParseError via errors.Is.
	ErrInvalidInput = errors.New("invalid input")

	// ErrWrite matches any *WriteError via errors.Is.
	ErrWrite = errors.New("write failed")
)

// ParseError reports that a buffer or file could not be recognized or
// parsed. It matches ErrInvalidInput with errors.Is.
type ParseError struct {
	Path string // empty for buffer loads
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("parse buffer: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrInvalidInput }

// WriteError reports a serialization or filesystem write failure. It
// matches ErrWrite with errors.Is.
type WriteError struct {
	Path string // empty for buffer-only serialization
	Err  error
}

func (e *WriteError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("write %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("write buffer: %v", e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func (e *WriteError) Is(target error) bool { return target == ErrWrite }
