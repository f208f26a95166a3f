package index

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"courseaudit/internal/scan"
)

// Fingerprint derives the cache key for a root set. It is insensitive to
// root order and trailing separators: the same set of roots always yields
// the same fingerprint.
func Fingerprint(roots []string) string {
	cleaned := make([]string, 0, len(roots))
	for _, root := range roots {
		cleaned = append(cleaned, filepath.Clean(root))
	}
	sort.Strings(cleaned)

	digest := sha256.Sum256([]byte(strings.Join(cleaned, "\x00")))
	return hex.EncodeToString(digest[:])
}

// Snapshot is one fully built, immutable index: the flat entry list in
// discovery order plus a lookup keyed by normalized name and stem.
type Snapshot struct {
	fingerprint string
	builtAt     time.Time
	entries     []scan.Entry

	keys   []string // insertion order, for deterministic fuzzy iteration
	lookup map[string][]scan.Entry
}

// NewSnapshot builds the lookup structure over entries. Each entry is
// inserted under its name key and, when different, its stem key; lists
// under a key preserve discovery order.
func NewSnapshot(fingerprint string, builtAt time.Time, entries []scan.Entry) *Snapshot {
	s := &Snapshot{
		fingerprint: fingerprint,
		builtAt:     builtAt,
		entries:     entries,
		lookup:      make(map[string][]scan.Entry, len(entries)),
	}
	for _, entry := range entries {
		s.insert(entry.Name, entry)
		if entry.Stem != entry.Name {
			s.insert(entry.Stem, entry)
		}
	}
	return s
}

func (s *Snapshot) insert(key string, entry scan.Entry) {
	if _, ok := s.lookup[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.lookup[key] = append(s.lookup[key], entry)
}

// Fingerprint returns the root-set fingerprint this snapshot was built for.
func (s *Snapshot) Fingerprint() string { return s.fingerprint }

// BuiltAt returns the completion time of the scan that produced the snapshot.
func (s *Snapshot) BuiltAt() time.Time { return s.builtAt }

// Age reports how old the snapshot is.
func (s *Snapshot) Age() time.Duration { return time.Since(s.builtAt) }

// Entries returns the flat path list in discovery order. Callers must not
// mutate the returned slice.
func (s *Snapshot) Entries() []scan.Entry { return s.entries }

// Len returns the number of catalogued entries.
func (s *Snapshot) Len() int { return len(s.entries) }

// KeyCount returns the number of distinct lookup keys.
func (s *Snapshot) KeyCount() int { return len(s.keys) }

// Get returns the entries catalogued under key, in discovery order.
func (s *Snapshot) Get(key string) []scan.Entry { return s.lookup[key] }

// Keys returns every lookup key in insertion order. Callers must not
// mutate the returned slice.
func (s *Snapshot) Keys() []string { return s.keys }
