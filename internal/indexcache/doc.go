// Package indexcache persists index snapshots between invocations.
//
// Snapshots are stored in a single SQLite database keyed by the root-set
// fingerprint. The record is versioned: a schema-version mismatch, a
// fingerprint mismatch, staleness beyond the freshness window, or any
// read/validation error is treated as a cache miss, never as a fatal
// error, and the builder simply rescans.
//
// Writes are last-writer-wins. A flock sidecar guards against two
// processes saving at once; within one process the builder is the single
// writer per build cycle.
package indexcache
