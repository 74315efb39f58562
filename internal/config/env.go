package config

import "strings"

// Environment variable names.
const (
	EnvTasksFile       = "TODO_FILE"
	EnvDefaultPriority = "TODO_DEFAULT_PRIORITY"
	EnvConfirmDelete   = "TODO_CONFIRM_DELETE"
	EnvLogLevel        = "TODO_LOG_LEVEL"
	EnvLogFormat       = "TODO_LOG_FORMAT"
	EnvLogTimestamps   = "TODO_LOG_TIMESTAMPS"
	EnvLogCaller       = "TODO_LOG_CALLER"
)

// loadFromEnv overrides config from variables returned by lookup.
// Empty values are ignored.
func loadFromEnv(cfg *Config, lookup func(string) (string, bool), source Source) {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return "", false
		}
		return v, true
	}

	if v, ok := get(EnvTasksFile); ok {
		cfg.TasksFile = v
		cfg.setSource("tasks_file", source)
	}
	if v, ok := get(EnvDefaultPriority); ok {
		cfg.DefaultPriority = v
		cfg.setSource("default_priority", source)
	}
	if v, ok := get(EnvConfirmDelete); ok {
		cfg.ConfirmDelete = boolFromString(v)
		cfg.setSource("confirm_delete", source)
	}

	// Logging configuration
	if v, ok := get(EnvLogLevel); ok {
		cfg.LogLevel = v
		cfg.setSource("log_level", source)
	}
	if v, ok := get(EnvLogFormat); ok {
		cfg.LogFormat = v
		cfg.setSource("log_format", source)
	}
	if v, ok := get(EnvLogTimestamps); ok {
		cfg.LogTimestamps = boolFromString(v)
		cfg.setSource("log_timestamps", source)
	}
	if v, ok := get(EnvLogCaller); ok {
		cfg.LogCaller = boolFromString(v)
		cfg.setSource("log_caller", source)
	}
}

func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
