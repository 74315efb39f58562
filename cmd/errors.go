package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/nibzard/todo-go/internal/storage"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitUser    = 1
	ExitStorage = 2
)

// ExitCode maps an error returned by Run to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case storage.IsFatal(err):
		return ExitStorage
	default:
		return ExitUser
	}
}

// ReportError prints err for the user. A corrupted task file gets recovery
// guidance instead of the raw decode error alone.
func ReportError(w io.Writer, err error) {
	if err == nil {
		return
	}
	var ce *storage.CorruptedError
	if errors.As(err, &ce) {
		fmt.Fprintf(w, "Error: %s is corrupted.\n", ce.Path)
		fmt.Fprintf(w, "  %v\n", ce.Err)
		fmt.Fprintln(w, ce.Guidance())
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
