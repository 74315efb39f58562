package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/nibzard/todo-go/internal/todo"
)

// doctorCommand checks config and task file validity.
func (a *app) doctorCommand(args []string) error {
	// Parse doctor-specific flags
	flags := newFlagSet("todo doctor")
	verbose := flags.Bool("v", false, "Verbose output")
	if err := parseNoArgs(flags, args); err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Todo Doctor")
	fmt.Fprintln(stdout, "===========")
	fmt.Fprintln(stdout)

	allOK := true

	// Check config
	fmt.Fprintln(stdout, "Config:")
	if len(a.cfg.Files) == 0 {
		fmt.Fprintln(stdout, "  ✅ No config files (using defaults)")
	}
	for _, path := range a.cfg.Files {
		fmt.Fprintf(stdout, "  ✅ Loaded %s\n", path)
	}
	for _, w := range a.cfg.Warnings {
		fmt.Fprintf(stdout, "  ⚠️  %s\n", w)
	}
	configErrs := a.cfg.Validate()
	for _, err := range configErrs {
		fmt.Fprintf(stdout, "  ❌ %v\n", err)
	}
	if len(configErrs) > 0 {
		allOK = false
	} else {
		fmt.Fprintf(stdout, "  ✅ Default priority: %s\n", a.cfg.DefaultPriority)
		fmt.Fprintf(stdout, "  ✅ Logging: level=%s format=%s\n", a.cfg.LogLevel, a.cfg.LogFormat)
	}
	if *verbose {
		for _, key := range []string{"tasks_file", "default_priority", "confirm_delete", "log_level", "log_format"} {
			fmt.Fprintf(stdout, "     %s = %s (%s)\n", key, a.cfg.Value(key), a.cfg.SourceOf(key))
		}
	}
	fmt.Fprintln(stdout)

	// Check tasks file
	path := a.store.Path()
	fmt.Fprintf(stdout, "Tasks file: %s\n", path)
	if !checkTasksFile(path, *verbose) {
		allOK = false
	}
	fmt.Fprintln(stdout)

	// Overall status
	if allOK {
		fmt.Fprintln(stdout, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(stdout, "⚠️  Some checks failed.")
	return errors.New("doctor checks failed")
}

func checkTasksFile(path string, verbose bool) bool {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(stdout, "  ⚠️  Not found (will be created on first add)")
			return true
		}
		fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		return false
	}
	if info.IsDir() {
		fmt.Fprintln(stdout, "  ❌ Error: path is a directory")
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		return false
	}
	fmt.Fprintln(stdout, "  ✅ OK")

	result := todo.CheckFile(data)
	if result.Valid {
		fmt.Fprintln(stdout, "  ✅ Valid")
	} else {
		fmt.Fprintln(stdout, "  ❌ Validation failed:")
		for _, e := range result.Errors {
			fmt.Fprintf(stdout, "     - %v\n", e)
		}
	}
	if verbose && result.Tasks >= 0 {
		fmt.Fprintf(stdout, "  Tasks: %d\n", result.Tasks)
	}
	return result.Valid
}
