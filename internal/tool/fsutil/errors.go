package fsutil

import (
	"fmt"
)

// ListDirError is returned when a directory cannot be listed.
type ListDirError struct {
	Path  string
	Cause error
}

func (e *ListDirError) Error() string {
	return fmt.Sprintf("failed to list directory %s: %v", e.Path, e.Cause)
}

func (e *ListDirError) Unwrap() error {
	return e.Cause
}

func (e *ListDirError) IOError() bool {
	return true
}

// RenameError is returned when renaming a file fails.
type RenameError struct {
	Old   string
	New   string
	Cause error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("failed to rename %s to %s: %v", e.Old, e.New, e.Cause)
}

func (e *RenameError) Unwrap() error {
	return e.Cause
}

func (e *RenameError) IOError() bool {
	return true
}

// OpenError is returned when a file cannot be opened for reading.
type OpenError struct {
	Path  string
	Cause error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("failed to open %s: %v", e.Path, e.Cause)
}

func (e *OpenError) Unwrap() error {
	return e.Cause
}

func (e *OpenError) IOError() bool {
	return true
}
