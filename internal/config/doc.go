// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.routines/routines.toml or OS-specific config directory)
// 3. Project config file (routines.toml or .routines.toml in the working directory)
// 4. Explicit config file (-config PATH)
// 5. Environment variables (ROUTINES_*)
// 6. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.routines/routines.toml (preferred)
// - Windows: %APPDATA%\routines\routines.toml
// - macOS: ~/Library/Application Support/routines/routines.toml
// - Linux/BSD: $XDG_CONFIG_HOME/routines/routines.toml or ~/.config/routines/routines.toml
package config
