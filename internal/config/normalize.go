package config

import (
	"fmt"
	"runtime"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeScanning(); err != nil {
		return err
	}
	c.normalizeColumns()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.CacheDB) == "" {
		c.Paths.CacheDB = defaultCacheDB
	}
	if c.Paths.CacheDB, err = expandPath(c.Paths.CacheDB); err != nil {
		return fmt.Errorf("paths.cache_db: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.SheetDir) == "" {
		c.Paths.SheetDir = defaultSheetDir
	}
	if c.Paths.SheetDir, err = expandPath(c.Paths.SheetDir); err != nil {
		return fmt.Errorf("paths.sheet_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.Output) == "" {
		c.Paths.Output = defaultOutput
	}
	if c.Paths.Output, err = expandPath(c.Paths.Output); err != nil {
		return fmt.Errorf("paths.output: %w", err)
	}
	return nil
}

func (c *Config) normalizeScanning() error {
	roots := make([]string, 0, len(c.Scanning.Roots))
	for _, root := range c.Scanning.Roots {
		if strings.TrimSpace(root) == "" {
			continue
		}
		expanded, err := expandPath(root)
		if err != nil {
			return fmt.Errorf("scanning.roots: %w", err)
		}
		roots = append(roots, expanded)
	}
	c.Scanning.Roots = roots

	if c.Scanning.Workers <= 0 {
		c.Scanning.Workers = runtime.NumCPU()
	}
	if c.Scanning.CacheMaxAgeHours == 0 {
		c.Scanning.CacheMaxAgeHours = defaultCacheMaxAgeHours
	}

	exts := make([]string, 0, len(c.Scanning.Extensions))
	for _, ext := range c.Scanning.Extensions {
		cleaned := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if cleaned != "" {
			exts = append(exts, cleaned)
		}
	}
	c.Scanning.Extensions = exts
	return nil
}

func (c *Config) normalizeColumns() {
	if strings.TrimSpace(c.Columns.Course) == "" {
		c.Columns.Course = defaultCourseColumn
	}
	if strings.TrimSpace(c.Columns.Semester) == "" {
		c.Columns.Semester = defaultSemesterColumn
	}
	if strings.TrimSpace(c.Columns.Term) == "" {
		c.Columns.Term = defaultTermColumn
	}
	if strings.TrimSpace(c.Columns.Status) == "" {
		c.Columns.Status = defaultStatusColumn
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Drive.RequestTimeout <= 0 {
		c.Drive.RequestTimeout = defaultRequestTimeout
	}
}
