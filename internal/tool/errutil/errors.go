package errutil

import (
	"errors"
	"fmt"
)

// Sentinel errors for consistent error handling across tools
var (
	ErrDirectoryRequired = errors.New("directory is required")
	ErrDirectoryMissing  = errors.New("directory does not exist")
	ErrNotADirectory     = errors.New("not a directory")
)

// DirectoryError is returned when a directory argument is unusable.
type DirectoryError struct {
	Path  string
	Cause error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Cause)
}

func (e *DirectoryError) Unwrap() error { return e.Cause }

// InvalidInput marks errors caused by the caller's arguments rather than I/O.
func (e *DirectoryError) InvalidInput() bool {
	return errors.Is(e.Cause, ErrDirectoryMissing) || errors.Is(e.Cause, ErrNotADirectory)
}

// Failure kinds reported by Classify.
const (
	KindInvalidInput = "invalid_input"
	KindIO           = "io"
	KindOther        = "other"
)

type invalidInputError interface {
	InvalidInput() bool
}

type ioError interface {
	IOError() bool
}

// Classify reports whether err, or an error it wraps, was caused by bad
// arguments or by the filesystem.
func Classify(err error) string {
	var in invalidInputError
	if errors.As(err, &in) && in.InvalidInput() {
		return KindInvalidInput
	}

	var ioErr ioError
	if errors.As(err, &ioErr) && ioErr.IOError() {
		return KindIO
	}

	return KindOther
}
