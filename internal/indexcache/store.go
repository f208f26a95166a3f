package indexcache

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"courseaudit/internal/index"
	"courseaudit/internal/logging"
	"courseaudit/internal/scan"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current snapshot record version. Bump on any change
// to the stored shape; old databases are then rebuilt transparently.
const schemaVersion = 1

// ErrNoSnapshot indicates the cache holds no usable snapshot.
var ErrNoSnapshot = errors.New("no snapshot cached")

// Info describes the cached snapshot without loading its entries.
type Info struct {
	Fingerprint   string
	BuiltAt       time.Time
	EntryCount    int
	SchemaVersion int
}

// Store persists one snapshot in a SQLite database at a fixed path.
type Store struct {
	path   string
	logger *slog.Logger
}

// New creates a Store for the database at path. The file is created lazily
// on the first Save.
func New(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logging.NewComponentLogger(logger, "indexcache")}
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }

// Load returns the cached snapshot when its fingerprint matches and its age
// is strictly below maxAge. Every failure mode is a miss.
func (s *Store) Load(ctx context.Context, fingerprint string, maxAge time.Duration) (*index.Snapshot, bool) {
	info, db, err := s.openAndVerify(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoSnapshot) {
			s.logger.Warn("cache unreadable, rescanning",
				logging.Error(err))
		}
		return nil, false
	}
	defer db.Close()

	if info.Fingerprint != fingerprint {
		s.logger.Info("cache fingerprint mismatch, rescanning",
			logging.String(logging.FieldFingerprint, fingerprint))
		return nil, false
	}
	if age := time.Since(info.BuiltAt); age >= maxAge {
		s.logger.Info("cache stale, rescanning",
			logging.Duration("age", age),
			logging.Duration("max_age", maxAge))
		return nil, false
	}

	rows, err := db.QueryContext(ctx, `SELECT path, kind FROM snapshot_entries ORDER BY seq`)
	if err != nil {
		s.logger.Warn("cache entries unreadable, rescanning", logging.Error(err))
		return nil, false
	}
	defer rows.Close()

	entries := make([]scan.Entry, 0, info.EntryCount)
	for rows.Next() {
		var path string
		var kind int
		if err := rows.Scan(&path, &kind); err != nil {
			s.logger.Warn("cache row unreadable, rescanning", logging.Error(err))
			return nil, false
		}
		entries = append(entries, scan.NewEntry(path, scan.Kind(kind)))
	}
	if err := rows.Err(); err != nil {
		s.logger.Warn("cache scan aborted, rescanning", logging.Error(err))
		return nil, false
	}

	return index.NewSnapshot(info.Fingerprint, info.BuiltAt, entries), true
}

// Save replaces the stored snapshot. Last writer wins; a sidecar flock
// keeps two processes from interleaving writes.
func (s *Store) Save(ctx context.Context, snapshot *index.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("ensure cache directory: %w", err)
	}

	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquire cache lock: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := s.ensureSchema(ctx, db); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_entries`); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_meta`); err != nil {
		return fmt.Errorf("clear meta: %w", err)
	}

	entries := snapshot.Entries()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshot_meta (id, schema_version, fingerprint, built_at, entry_count)
         VALUES (1, ?, ?, ?, ?)`,
		schemaVersion,
		snapshot.Fingerprint(),
		snapshot.BuiltAt().UTC().Format(time.RFC3339Nano),
		len(entries),
	); err != nil {
		return fmt.Errorf("insert meta: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO snapshot_entries (seq, path, kind) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare entry insert: %w", err)
	}
	defer stmt.Close()

	for seq, entry := range entries {
		if _, err := stmt.ExecContext(ctx, seq, entry.Path, int(entry.Kind)); err != nil {
			return fmt.Errorf("insert entry %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	s.logger.Debug("snapshot persisted",
		logging.String(logging.FieldFingerprint, snapshot.Fingerprint()),
		logging.Int("entries", len(entries)))
	return nil
}

// Status describes the cached snapshot, or ErrNoSnapshot when the cache is
// absent or unusable.
func (s *Store) Status(ctx context.Context) (Info, error) {
	info, db, err := s.openAndVerify(ctx)
	if err != nil {
		return Info{}, err
	}
	_ = db.Close()
	return info, nil
}

// Clear removes the cache database and its sidecar files.
func (s *Store) Clear() error {
	for _, path := range []string{s.path, s.path + "-wal", s.path + "-shm", s.path + ".lock"} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}
	return nil
}

func (s *Store) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	return db, nil
}

// openAndVerify opens the database and validates the versioned meta record.
// The caller owns the returned db on success.
func (s *Store) openAndVerify(ctx context.Context) (Info, *sql.DB, error) {
	if _, err := os.Stat(s.path); err != nil {
		return Info{}, nil, ErrNoSnapshot
	}

	db, err := s.open(ctx)
	if err != nil {
		return Info{}, nil, err
	}

	var info Info
	var builtAt string
	err = db.QueryRowContext(ctx,
		`SELECT schema_version, fingerprint, built_at, entry_count FROM snapshot_meta WHERE id = 1`,
	).Scan(&info.SchemaVersion, &info.Fingerprint, &builtAt, &info.EntryCount)
	if err != nil {
		_ = db.Close()
		if errors.Is(err, sql.ErrNoRows) {
			return Info{}, nil, ErrNoSnapshot
		}
		return Info{}, nil, fmt.Errorf("read snapshot meta: %w", err)
	}

	if info.SchemaVersion != schemaVersion {
		_ = db.Close()
		return Info{}, nil, fmt.Errorf("%w: schema version %d, expected %d",
			ErrNoSnapshot, info.SchemaVersion, schemaVersion)
	}

	info.BuiltAt, err = time.Parse(time.RFC3339Nano, builtAt)
	if err != nil {
		_ = db.Close()
		return Info{}, nil, fmt.Errorf("parse built_at: %w", err)
	}

	return info, db, nil
}

// ensureSchema recreates the tables whenever the stored version cannot be
// confirmed current. Dropping is safe: the snapshot is a rebuildable cache.
func (s *Store) ensureSchema(ctx context.Context, db *sql.DB) error {
	var version int
	err := db.QueryRowContext(ctx,
		`SELECT schema_version FROM snapshot_meta WHERE id = 1`).Scan(&version)
	if err == nil && version == schemaVersion {
		return nil
	}

	if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS snapshot_entries`); err != nil {
		return fmt.Errorf("drop entries: %w", err)
	}
	if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS snapshot_meta`); err != nil {
		return fmt.Errorf("drop meta: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
