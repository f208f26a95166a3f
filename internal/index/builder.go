package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"courseaudit/internal/logging"
	"courseaudit/internal/scan"
)

// ErrAllRootsFailed reports that every configured storage root failed to
// scan, leaving nothing to index.
var ErrAllRootsFailed = errors.New("all storage roots failed to scan")

// Store persists index snapshots. A Load miss for any reason (absent,
// stale, fingerprint mismatch, corrupt) returns ok=false, never an error.
type Store interface {
	Load(ctx context.Context, fingerprint string, maxAge time.Duration) (*Snapshot, bool)
	Save(ctx context.Context, snapshot *Snapshot) error
}

// ScanFunc scans one storage root. Swappable so that tests can observe
// whether a build invoked scanners at all.
type ScanFunc func(root scan.Root) ([]scan.Entry, error)

// Options controls one Build call.
type Options struct {
	Roots   []scan.Root
	MaxAge  time.Duration // freshness window for cached snapshots; 0 disables reuse
	Workers int

	// OnRootDone, when set, is called once per root as its scan completes.
	OnRootDone func(root string, entries int, err error)
}

// Builder produces snapshots, consulting a Store before scanning and
// persisting the result after.
type Builder struct {
	store  Store
	logger *slog.Logger
	scanFn ScanFunc
}

// NewBuilder creates a Builder. store may be nil, in which case every
// build scans from scratch and nothing is persisted.
func NewBuilder(store Store, logger *slog.Logger) *Builder {
	componentLogger := logging.NewComponentLogger(logger, "index")
	return &Builder{
		store:  store,
		logger: componentLogger,
		scanFn: scan.New(logger).ScanRoot,
	}
}

// Build returns a snapshot for the configured roots, reusing a fresh cached
// snapshot when one exists. On a cache miss it scans all roots on a worker
// pool sized min(Workers, len(Roots)), merges results in root order, and
// persists the new snapshot (persistence failure is logged, not returned).
func (b *Builder) Build(ctx context.Context, opts Options) (*Snapshot, error) {
	rootPaths := make([]string, 0, len(opts.Roots))
	for _, root := range opts.Roots {
		rootPaths = append(rootPaths, root.Path)
	}
	fingerprint := Fingerprint(rootPaths)

	if b.store != nil && opts.MaxAge > 0 {
		if snapshot, ok := b.store.Load(ctx, fingerprint, opts.MaxAge); ok {
			b.logger.Info("using cached index snapshot",
				logging.String(logging.FieldFingerprint, fingerprint),
				logging.Int("paths", snapshot.Len()),
				logging.Duration("age", snapshot.Age()))
			return snapshot, nil
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(opts.Roots) {
		workers = len(opts.Roots)
	}
	if workers < 1 {
		workers = 1
	}

	results := make([][]scan.Entry, len(opts.Roots))
	failures := make([]error, len(opts.Roots))

	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, root := range opts.Roots {
		i, root := i, root
		g.Go(func() error {
			entries, err := b.scanFn(root)
			results[i] = entries
			failures[i] = err
			if err != nil {
				b.logger.Error("root scan failed",
					logging.String(logging.FieldRoot, root.Path),
					logging.Error(err))
			} else {
				b.logger.Info("root scanned",
					logging.String(logging.FieldRoot, root.Path),
					logging.Int("paths", len(entries)))
			}
			if opts.OnRootDone != nil {
				mu.Lock()
				opts.OnRootDone(root.Path, len(entries), err)
				mu.Unlock()
			}
			return nil
		})
	}
	// Workers never return errors; per-root failures are isolated above.
	_ = g.Wait()

	failed := 0
	for _, err := range failures {
		if err != nil {
			failed++
		}
	}
	if len(opts.Roots) > 0 && failed == len(opts.Roots) {
		return nil, fmt.Errorf("%w: %w", ErrAllRootsFailed, errors.Join(failures...))
	}

	total := 0
	for _, entries := range results {
		total += len(entries)
	}
	merged := make([]scan.Entry, 0, total)
	for _, entries := range results {
		merged = append(merged, entries...)
	}

	snapshot := NewSnapshot(fingerprint, time.Now(), merged)
	b.logger.Info("index built",
		logging.String(logging.FieldFingerprint, fingerprint),
		logging.Int("roots", len(opts.Roots)),
		logging.Int("failed_roots", failed),
		logging.Int("paths", snapshot.Len()),
		logging.Int("keys", snapshot.KeyCount()))

	if b.store != nil {
		if err := b.store.Save(ctx, snapshot); err != nil {
			b.logger.Warn("could not persist index snapshot",
				logging.String(logging.FieldFingerprint, fingerprint),
				logging.Error(err))
		}
	}

	return snapshot, nil
}
