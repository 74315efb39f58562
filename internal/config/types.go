package config

// Source represents where a configuration value came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceUserFile Source = "user file"
	SourceProjFile Source = "project file"
	SourceDotEnv   Source = ".env"
	SourceEnv      Source = "environment"
	SourceFlag     Source = "flag"
)

// Default values.
const (
	DefaultTasksFile     = "tasks.json"
	DefaultPriority      = "medium"
	DefaultConfirmDelete = true
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"
)

// File names.
const (
	UserConfigDir     = ".todo"
	UserConfigFile    = "config.toml"
	ProjectConfigFile = "todo.toml"
	HiddenConfigFile  = ".todo.toml"
	DotEnvFile        = ".env"
)

// Config holds the full configuration for todo.
type Config struct {
	// Paths
	TasksFile string `toml:"tasks_file"`

	// Task defaults
	DefaultPriority string `toml:"default_priority"`

	// Ask before deleting unless -y is given
	ConfirmDelete bool `toml:"confirm_delete"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`

	// Files that contributed values, in load order (computed)
	Files []string `toml:"-"`

	// Sources maps each field key to the layer that last set it (computed)
	Sources map[string]Source `toml:"-"`

	// Warnings collects non-fatal problems such as unknown keys (computed)
	Warnings []string `toml:"-"`
}

// Fields returns the configurable keys in display order.
func Fields() []string {
	return []string{
		"tasks_file",
		"default_priority",
		"confirm_delete",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// Value returns the string form of a configurable key.
func (c *Config) Value(key string) string {
	switch key {
	case "tasks_file":
		return c.TasksFile
	case "default_priority":
		return c.DefaultPriority
	case "confirm_delete":
		return boolString(c.ConfirmDelete)
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return boolString(c.LogTimestamps)
	case "log_caller":
		return boolString(c.LogCaller)
	default:
		return ""
	}
}

// SourceOf returns the layer that set key.
func (c *Config) SourceOf(key string) Source {
	if s, ok := c.Sources[key]; ok {
		return s
	}
	return SourceDefault
}

func (c *Config) setSource(key string, source Source) {
	if c.Sources == nil {
		c.Sources = make(map[string]Source)
	}
	c.Sources[key] = source
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
