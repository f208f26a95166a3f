// Package scan walks one storage root into a flat catalogue of path entries.
//
// A scan reports files and directories alike: course content usually lives
// in a named folder, so folder names must be matchable, not just filenames.
// Hidden directories and OS housekeeping trees (recycle bins, Windows
// installs, virtual filesystems) are pruned before descent, and symbolic
// links are never followed. The walk order is the deterministic lexical
// order of fs.WalkDir, which downstream tie-breaking relies on.
package scan
