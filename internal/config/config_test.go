// Package config tests configuration loading.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

// isolate points HOME and the config dirs at a temp dir, clears TODO_*
// variables, and switches into a fresh project directory.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, key := range []string{
		EnvTasksFile, EnvDefaultPriority, EnvConfirmDelete,
		EnvLogLevel, EnvLogFormat, EnvLogTimestamps, EnvLogCaller,
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	project := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(project); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return project
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func load(t *testing.T, args ...string) *Config {
	t.Helper()
	cfg, err := Load(flag.NewFlagSet("todo", flag.ContinueOnError), args)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.TasksFile != DefaultTasksFile {
		t.Errorf("TasksFile: got %q, want %q", cfg.TasksFile, DefaultTasksFile)
	}
	if cfg.DefaultPriority != "medium" {
		t.Errorf("DefaultPriority: got %q, want medium", cfg.DefaultPriority)
	}
	if !cfg.ConfirmDelete {
		t.Error("ConfirmDelete: got false, want true")
	}
	if cfg.LogLevel != "warn" || cfg.LogFormat != "text" {
		t.Errorf("logging: got %q/%q, want warn/text", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadDefaultsResolvePath(t *testing.T) {
	project := isolate(t)
	cfg := load(t)

	want := filepath.Join(project, DefaultTasksFile)
	if cfg.TasksFile != want {
		t.Errorf("TasksFile: got %q, want %q", cfg.TasksFile, want)
	}
	if !filepath.IsAbs(cfg.TasksFile) {
		t.Errorf("TasksFile should be absolute, got %q", cfg.TasksFile)
	}
	if cfg.SourceOf("tasks_file") != SourceDefault {
		t.Errorf("source: got %q, want default", cfg.SourceOf("tasks_file"))
	}
	if len(cfg.Files) != 0 {
		t.Errorf("Files: got %v, want none", cfg.Files)
	}
}

func TestLoadPriorityOrder(t *testing.T) {
	project := isolate(t)
	home := os.Getenv("HOME")

	writeFile(t, filepath.Join(home, UserConfigDir, UserConfigFile), `
tasks_file = "user.json"
log_level = "debug"
default_priority = "low"
confirm_delete = false
`)
	writeFile(t, filepath.Join(project, ProjectConfigFile), `
tasks_file = "project.json"
log_format = "json"
`)
	writeFile(t, filepath.Join(project, DotEnvFile), "TODO_LOG_FORMAT=logfmt\nTODO_DEFAULT_PRIORITY=high\n")
	t.Setenv(EnvDefaultPriority, "medium")

	cfg := load(t, "-log-level", "error")

	if filepath.Base(cfg.TasksFile) != "project.json" {
		t.Errorf("TasksFile: got %q, want project.json", cfg.TasksFile)
	}
	if cfg.SourceOf("tasks_file") != SourceProjFile {
		t.Errorf("tasks_file source: got %q", cfg.SourceOf("tasks_file"))
	}
	if cfg.LogLevel != "error" || cfg.SourceOf("log_level") != SourceFlag {
		t.Errorf("log_level: got %q from %q, want error from flag", cfg.LogLevel, cfg.SourceOf("log_level"))
	}
	if cfg.LogFormat != "logfmt" || cfg.SourceOf("log_format") != SourceDotEnv {
		t.Errorf("log_format: got %q from %q, want logfmt from .env", cfg.LogFormat, cfg.SourceOf("log_format"))
	}
	// The real environment wins over .env.
	if cfg.DefaultPriority != "medium" || cfg.SourceOf("default_priority") != SourceEnv {
		t.Errorf("default_priority: got %q from %q, want medium from environment", cfg.DefaultPriority, cfg.SourceOf("default_priority"))
	}
	if cfg.ConfirmDelete || cfg.SourceOf("confirm_delete") != SourceUserFile {
		t.Errorf("confirm_delete: got %v from %q", cfg.ConfirmDelete, cfg.SourceOf("confirm_delete"))
	}
	if len(cfg.Files) != 3 {
		t.Errorf("Files: got %v, want user, project and .env", cfg.Files)
	}
	if _, set := os.LookupEnv(EnvLogFormat); set {
		t.Error(".env must not modify the process environment")
	}
}

func TestLoadHiddenProjectFile(t *testing.T) {
	project := isolate(t)
	writeFile(t, filepath.Join(project, HiddenConfigFile), `tasks_file = "hidden.json"`)

	cfg := load(t)
	if filepath.Base(cfg.TasksFile) != "hidden.json" {
		t.Errorf("TasksFile: got %q, want hidden.json", cfg.TasksFile)
	}
}

func TestLoadXDGUserFile(t *testing.T) {
	isolate(t)
	writeFile(t, filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "todo", UserConfigFile), `log_level = "info"`)

	cfg := load(t)
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %q, want info", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv(EnvTasksFile, "/tmp/elsewhere/tasks.json")
	t.Setenv(EnvConfirmDelete, "no")
	t.Setenv(EnvLogTimestamps, "1")
	t.Setenv(EnvLogCaller, "true")
	t.Setenv(EnvLogLevel, "  DEBUG ")

	cfg := load(t)
	if cfg.TasksFile != "/tmp/elsewhere/tasks.json" {
		t.Errorf("TasksFile: got %q", cfg.TasksFile)
	}
	if cfg.ConfirmDelete {
		t.Error("ConfirmDelete: got true, want false")
	}
	if !cfg.LogTimestamps || !cfg.LogCaller {
		t.Error("expected timestamps and caller enabled")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want normalized debug", cfg.LogLevel)
	}
}

func TestLoadExpandsHome(t *testing.T) {
	isolate(t)
	t.Setenv(EnvTasksFile, "~/todo/tasks.json")

	cfg := load(t)
	want := filepath.Join(os.Getenv("HOME"), "todo", "tasks.json")
	if cfg.TasksFile != want {
		t.Errorf("TasksFile: got %q, want %q", cfg.TasksFile, want)
	}
}

func TestLoadFlagFile(t *testing.T) {
	isolate(t)
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	cfg, err := Load(fs, []string{"-file", "/data/t.json", "list", "-s", "pending"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TasksFile != "/data/t.json" {
		t.Errorf("TasksFile: got %q", cfg.TasksFile)
	}
	if got := strings.Join(fs.Args(), " "); got != "list -s pending" {
		t.Errorf("remaining args: got %q", got)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	project := isolate(t)
	writeFile(t, filepath.Join(project, ProjectConfigFile), "tasks_file = \n")

	_, err := Load(flag.NewFlagSet("todo", flag.ContinueOnError), nil)
	if err == nil {
		t.Fatal("expected error for malformed TOML")
	}
	if !strings.Contains(err.Error(), "project config file") {
		t.Errorf("error should name the file layer, got %v", err)
	}
}

func TestLoadUnknownKeyWarns(t *testing.T) {
	project := isolate(t)
	writeFile(t, filepath.Join(project, ProjectConfigFile), "tasks_file = \"a.json\"\ncolour = \"blue\"\n")

	cfg := load(t)
	if len(cfg.Warnings) != 1 || !strings.Contains(cfg.Warnings[0], "colour") {
		t.Errorf("Warnings: got %v", cfg.Warnings)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("defaults should be valid, got %v", errs)
	}

	cfg.DefaultPriority = "urgent"
	cfg.LogLevel = "loud"
	cfg.LogFormat = "xml"
	if errs := cfg.Validate(); len(errs) != 3 {
		t.Errorf("Validate: got %d errors, want 3: %v", len(errs), errs)
	}
}

func TestExampleConfigParses(t *testing.T) {
	cfg := &Config{}
	md, err := toml.Decode(ExampleConfig(), cfg)
	if err != nil {
		t.Fatalf("example config does not parse: %v", err)
	}
	if len(md.Undecoded()) != 0 {
		t.Errorf("example config has unknown keys: %v", md.Undecoded())
	}
	for _, key := range Fields() {
		if !md.IsDefined(key) {
			t.Errorf("example config is missing %q", key)
		}
	}
}

func TestBoolFromString(t *testing.T) {
	for _, s := range []string{"1", "true", "YES", "on"} {
		if !boolFromString(s) {
			t.Errorf("boolFromString(%q): got false", s)
		}
	}
	for _, s := range []string{"0", "false", "no", "off", "maybe"} {
		if boolFromString(s) {
			t.Errorf("boolFromString(%q): got true", s)
		}
	}
}
