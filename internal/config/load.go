package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/nibzard/todo-go/internal/todo"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file
// 3. Project config file
// 4. .env file in the project root
// 5. Environment variables
// 6. CLI flags, registered on fs and parsed from args
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	cfg.ProjectRoot = wd

	// 2. User config file
	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	// 3. Project config file (overrides user config)
	if path := findProjectConfigFile(cfg.ProjectRoot); path != "" {
		if err := loadConfigFile(cfg, path, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	// 4. .env, only for variables the environment does not already set
	if err := loadDotEnv(cfg, filepath.Join(cfg.ProjectRoot, DotEnvFile)); err != nil {
		return nil, fmt.Errorf("loading %s: %w", DotEnvFile, err)
	}

	// 5. Environment
	loadFromEnv(cfg, os.LookupEnv, SourceEnv)

	// 6. CLI flags
	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, err
	}

	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cfg, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TasksFile = DefaultTasksFile
	cfg.DefaultPriority = DefaultPriority
	cfg.ConfirmDelete = DefaultConfirmDelete
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
	cfg.Sources = make(map[string]Source)
}

// loadConfigFile decodes a TOML file over cfg. Only keys present in the file
// change, and unknown keys are kept as warnings.
func loadConfigFile(cfg *Config, path string, source Source) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	cfg.Files = append(cfg.Files, path)
	for _, key := range Fields() {
		if md.IsDefined(key) {
			cfg.setSource(key, source)
		}
	}
	for _, key := range md.Undecoded() {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("%s: unknown key %q", path, key.String()))
	}
	return nil
}

// loadDotEnv reads a .env file without modifying the process environment.
func loadDotEnv(cfg *Config, path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	cfg.Files = append(cfg.Files, path)

	lookup := func(key string) (string, bool) {
		if _, inEnv := os.LookupEnv(key); inEnv {
			return "", false
		}
		v, ok := values[key]
		return v, ok
	}
	loadFromEnv(cfg, lookup, SourceDotEnv)
	return nil
}

// finalizeConfig computes derived values and resolves paths.
func finalizeConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.TasksFile) == "" {
		return fmt.Errorf("tasks_file is empty")
	}
	cfg.TasksFile = expandPath(cfg.TasksFile)
	if !filepath.IsAbs(cfg.TasksFile) {
		cfg.TasksFile = filepath.Join(cfg.ProjectRoot, cfg.TasksFile)
	}
	cfg.TasksFile = filepath.Clean(cfg.TasksFile)

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	cfg.DefaultPriority = strings.TrimSpace(cfg.DefaultPriority)
	return nil
}

// Validate reports values that are accepted at load time but would fail or
// be ignored later.
func (c *Config) Validate() []error {
	var errs []error
	if !todo.ValidatePriority(c.DefaultPriority) {
		errs = append(errs, fmt.Errorf("default_priority %q: %w", c.DefaultPriority, todo.ErrInvalidPriority))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		errs = append(errs, fmt.Errorf("log_level %q: expected debug, info, warn, error or fatal", c.LogLevel))
	}
	switch c.LogFormat {
	case "text", "json", "logfmt":
	default:
		errs = append(errs, fmt.Errorf("log_format %q: expected text, json or logfmt", c.LogFormat))
	}
	return errs
}
