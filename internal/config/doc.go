// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.todo/config.toml or OS-specific config directory)
// 3. Project config file (todo.toml or .todo.toml in the project root)
// 4. A .env file in the project root (never overrides the real environment)
// 5. Environment variables (TODO_*)
// 6. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.todo/config.toml (preferred)
// - Windows: %APPDATA%\todo\config.toml
// - macOS: ~/Library/Application Support/todo/config.toml
// - Linux/BSD: $XDG_CONFIG_HOME/todo/config.toml or ~/.config/todo/config.toml
//
// The resolved tasks file path is handed to the storage layer explicitly;
// there is no package-level default path.
package config
