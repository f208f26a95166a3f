// Package audit runs the course asset audit: for every course row it
// matches the catalogue against the course name once, refines the
// candidate set per asset column with hint keywords, probes the Drive
// link behind each asset cell, and classifies per-course coverage as
// full, partial, or none.
//
// Unmatched courses get name suggestions drawn from the index key set so
// a typo in the sheet or on disk is easy to spot in the log output.
package audit
