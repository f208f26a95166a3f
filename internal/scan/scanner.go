package scan

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"courseaudit/internal/logging"
)

// OS housekeeping directories that are never worth indexing. Compared
// against normalized directory names.
var denyDirs = map[string]struct{}{
	"system volume information": {},
	"$recycle.bin":              {},
	"windows":                   {},
	"winsxs":                    {},
	"softwaredistribution":      {},
	"recovery":                  {},
	"proc":                      {},
	"sys":                       {},
	"dev":                       {},
}

// Scanner walks storage roots. The zero value is not usable; construct
// with New.
type Scanner struct {
	logger *slog.Logger
}

// New creates a Scanner that logs subtree failures to logger.
func New(logger *slog.Logger) *Scanner {
	return &Scanner{logger: logging.NewComponentLogger(logger, "scan")}
}

// ScanRoot traverses root depth-first and returns every reachable file and
// directory as entries in walk order. An unreadable subtree is logged and
// skipped; an unusable root is returned as the error.
func (s *Scanner) ScanRoot(root Root) ([]Entry, error) {
	info, err := os.Lstat(root.Path)
	if err != nil {
		return nil, fmt.Errorf("access root %s: %w", root.Path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root.Path)
	}

	allow := make(map[string]struct{}, len(root.Extensions))
	for _, ext := range root.Extensions {
		cleaned := strings.TrimPrefix(Normalize(ext), ".")
		if cleaned != "" {
			allow[cleaned] = struct{}{}
		}
	}

	var entries []Entry
	walkErr := filepath.WalkDir(root.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root.Path {
				return err
			}
			s.logger.Debug("skipping unreadable subtree",
				logging.String("path", path),
				logging.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == root.Path {
			return nil
		}

		// Never descend through links: prevents cycles and double-counting.
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		if d.IsDir() {
			name := Normalize(d.Name())
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if _, denied := denyDirs[name]; denied {
				return filepath.SkipDir
			}
			entries = append(entries, NewEntry(path, KindDirectory))
			return nil
		}

		if len(allow) > 0 {
			ext := strings.TrimPrefix(Normalize(filepath.Ext(d.Name())), ".")
			if _, ok := allow[ext]; !ok {
				return nil
			}
		}
		entries = append(entries, NewEntry(path, KindFile))
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("scan root %s: %w", root.Path, walkErr)
	}

	return entries, nil
}
