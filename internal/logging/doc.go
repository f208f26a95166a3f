// Package logging constructs the slog loggers used across courseaudit.
//
// Every component receives a *slog.Logger by reference; nothing in this
// repository logs through a package-level global. NewComponentLogger tags a
// child logger with a standardized "component" attribute so that scan,
// index, cache, and audit output can be filtered in one log stream.
//
// Two output formats are supported: "console" (human-readable text, the
// default on a TTY) and "json" (one object per line for ingestion).
package logging
