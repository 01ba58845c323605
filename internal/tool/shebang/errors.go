package shebang

import "fmt"

// ReadFileError is returned when a file cannot be read for a reason other
// than not being text.
type ReadFileError struct {
	Path  string
	Cause error
}

func (e *ReadFileError) Error() string {
	return fmt.Sprintf("failed to read first line of %s: %v", e.Path, e.Cause)
}

func (e *ReadFileError) Unwrap() error { return e.Cause }

func (e *ReadFileError) IOError() bool { return true }

// UnknownFormatError is returned for an unsupported report format.
type UnknownFormatError struct {
	Format string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown report format %q, expected one of: %v", e.Format, Formats)
}

func (e *UnknownFormatError) InvalidInput() bool {
	return true
}
