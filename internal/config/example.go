package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todo configuration file
# Save as ~/.todo/config.toml (user) or todo.toml (project).
# Values can be overridden by TODO_* environment variables or CLI flags.

# Tasks file (relative paths resolve against the current directory)
tasks_file = "tasks.json"

# Priority used by "todo add" when -priority is not given: low, medium, high
default_priority = "medium"

# Ask for confirmation before "todo delete" unless -y is passed
confirm_delete = true

# Logging: debug, info, warn, error
log_level = "warn"

# Log format: text, json, logfmt
log_format = "text"

# Show timestamps and caller location in log lines
log_timestamps = false
log_caller = false
`
}
