package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// UserConfigPath returns the preferred user config file path, whether or
// not it exists.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findUserConfigFile checks ~/.todo/config.toml first, then the OS-specific
// config directory.
func findUserConfigFile() string {
	if path := UserConfigPath(); path != "" && fileExists(path) {
		return path
	}
	if dir := osUserConfigDir(); dir != "" {
		path := filepath.Join(dir, "todo", UserConfigFile)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// findProjectConfigFile looks for todo.toml, then .todo.toml, in root.
func findProjectConfigFile(root string) string {
	for _, name := range []string{ProjectConfigFile, HiddenConfigFile} {
		path := filepath.Join(root, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// osUserConfigDir returns the OS-specific user config directory, or "".
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return os.Getenv("APPDATA")
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// expandPath expands environment variables and a leading ~ in p.
func expandPath(p string) string {
	expanded := os.ExpandEnv(p)
	if expanded != "~" && !strings.HasPrefix(expanded, "~/") &&
		!(runtime.GOOS == "windows" && strings.HasPrefix(expanded, `~\`)) {
		return expanded
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return expanded
	}
	if expanded == "~" {
		return home
	}
	return filepath.Join(home, expanded[2:])
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
