package storage

import (
	"errors"
	"fmt"
)

// CorruptedError reports a task file that exists but cannot be decoded.
// The file is left untouched.
type CorruptedError struct {
	Path string
	Err  error
}

func (e *CorruptedError) Error() string {
	return fmt.Sprintf("%s is corrupted: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *CorruptedError) Unwrap() error {
	return e.Err
}

// Guidance is the operator advice printed alongside a corruption failure.
func (e *CorruptedError) Guidance() string {
	return "Back up the file, then fix the JSON by hand or delete it to start over."
}

// ReadError reports an I/O failure reading an existing task file.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// WriteError reports a failed save. The previous file content is intact.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("save tasks to %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err contains a storage failure that must abort the
// process rather than be reported as bad input.
func IsFatal(err error) bool {
	var (
		ce *CorruptedError
		re *ReadError
		we *WriteError
	)
	return errors.As(err, &ce) || errors.As(err, &re) || errors.As(err, &we)
}
