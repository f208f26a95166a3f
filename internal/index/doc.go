// Package index builds and represents the path catalogue for a set of
// storage roots.
//
// A Build fans scanners out across roots on a bounded worker pool, merges
// their results in configured root order, and keys every entry by its
// normalized name and stem. The resulting Snapshot is immutable: a rescan
// produces a new Snapshot that replaces the old one wholesale.
//
// Builds are cache-first. When the store holds a snapshot whose fingerprint
// matches the requested root set and whose age is inside the freshness
// window, no scanner runs at all.
package index
