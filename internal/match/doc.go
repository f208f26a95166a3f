// Package match ranks catalogue entries against course and program names.
//
// Two policies cover the two query shapes. The path-component scan walks
// the full flat path list and scores a query against every directory and
// filename component, which finds hierarchical course folders. The indexed
// lookup resolves flat names against the snapshot mapping in deterministic
// tiers: exact key hit, then a restricted fuzzy pass over keys that share
// the query's first character and a similar length, then a full pass over
// every key when the restricted pool is too small to be trusted.
//
// Scores are rapidfuzz-style ratios in [0, 100]: the maximum of a
// token-sort similarity (robust to word reordering) and a partial
// similarity (robust to truncated prefixes). Either signal alone is
// sufficient evidence of a match, so the stricter metric never suppresses
// the other.
package match
