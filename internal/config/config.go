package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory locations.
type Paths struct {
	CacheDB  string `toml:"cache_db"` // SQLite index snapshot database
	LogDir   string `toml:"log_dir"`
	SheetDir string `toml:"sheet_dir"` // course spreadsheets (.xlsx/.csv)
	Output   string `toml:"output"`    // default audit report path
}

// Scanning contains storage traversal and matching tunables.
type Scanning struct {
	Roots            []string `toml:"roots"`
	Workers          int      `toml:"workers"`
	CacheMaxAgeHours float64  `toml:"cache_max_age_hours"`
	Extensions       []string `toml:"extensions"` // allow-list; empty means every file
	FuzzyThreshold   int      `toml:"fuzzy_threshold"`
}

// Drive contains remote link verification settings.
type Drive struct {
	Enabled        bool   `toml:"enabled"`
	APIToken       string `toml:"api_token"` // empty: unauthenticated public probing
	RequestTimeout int    `toml:"request_timeout"`
}

// Columns maps spreadsheet header labels to course fields.
type Columns struct {
	Course   string `toml:"course"`
	Semester string `toml:"semester"`
	Term     string `toml:"term"`
	Status   string `toml:"status"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for courseaudit.
//
// Sections by subsystem:
//   - Paths: cache database, log directory, report output
//   - Scanning: storage roots, worker pool, cache freshness, match threshold
//   - Drive: remote link checking (disabled, public probe, or API token)
//   - Columns: spreadsheet header labels for course rows
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Scanning Scanning `toml:"scanning"`
	Drive    Drive    `toml:"drive"`
	Columns  Columns  `toml:"columns"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/courseaudit/config.toml")
}

// Load locates, parses, normalizes, and validates a configuration file.
// It returns the config, the resolved path, and whether a file existed there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("courseaudit.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the tool writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(c.Paths.CacheDB),
		c.Paths.LogDir,
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config already exists: %s", expanded)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("ensure config directory: %w", err)
	}
	return os.WriteFile(expanded, []byte(sampleConfig), 0o644)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", path, err)
	}
	return abs, nil
}
