// Package config loads and validates courseaudit configuration.
//
// Configuration is read from a TOML file with documented precedence:
// explicit command-line flags beat file values, file values beat the
// built-in defaults from Default(). Load resolves the file location
// (explicit path, ./courseaudit.toml, then ~/.config/courseaudit/config.toml),
// expands ~ in every path field, and rejects out-of-range tunables.
package config
