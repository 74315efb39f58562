package config

import "flag"

// flagKeys maps global flag names to config keys.
var flagKeys = map[string]string{
	"file":           "tasks_file",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines the global flags on fs, parses args, and records which
// flags were given explicitly.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("todo", flag.ContinueOnError)
	}

	// Paths
	fs.StringVar(&cfg.TasksFile, "file", cfg.TasksFile, "Path to the tasks file")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			cfg.setSource(key, SourceFlag)
		}
	})
	return nil
}
