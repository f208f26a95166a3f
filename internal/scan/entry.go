package scan

import (
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind distinguishes catalogued files from directories.
type Kind uint8

const (
	KindFile Kind = iota
	KindDirectory
)

func (k Kind) String() string {
	if k == KindDirectory {
		return "directory"
	}
	return "file"
}

// Root is one traversal starting point: an absolute path plus an optional
// extension allow-list (lowercase, without dots). Immutable during a scan.
type Root struct {
	Path       string
	Extensions []string
}

// Entry is one catalogued item. Name is the normalized final path component
// and Stem is Name without its extension; both are derived once at creation
// and never mutated.
type Entry struct {
	Path string
	Kind Kind
	Name string
	Stem string
}

// NewEntry derives the normalized name and stem for path.
func NewEntry(path string, kind Kind) Entry {
	name := Normalize(filepath.Base(path))
	stem := name
	if ext := filepath.Ext(name); ext != "" && ext != name {
		stem = name[:len(name)-len(ext)]
	}
	return Entry{Path: path, Kind: kind, Name: name, Stem: stem}
}

// Casers carry internal state, so they cannot be shared across goroutines.
var caserPool = sync.Pool{
	New: func() any {
		c := cases.Lower(language.Und)
		return &c
	},
}

// Normalize lowercases s without locale-specific casing rules and trims
// surrounding whitespace. All name, stem, and query comparisons go through
// this one function.
func Normalize(s string) string {
	c := caserPool.Get().(*cases.Caser)
	defer caserPool.Put(c)
	return strings.TrimSpace(c.String(s))
}
