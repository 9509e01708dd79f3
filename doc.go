// Package corelike evaluates SQL-style LIKE predicates over immutable byte
// corpora: `%` matches any byte sequence including empty, `_` matches
// exactly one byte, and all other bytes are literal. Matching is byte-exact
// over 8-bit data — there is no Unicode-aware collation and no
// case-insensitive mode.
//
// Compile lowers a LIKE source string into a Pattern once; the resulting
// plan is reused across every row or against a corpus-wide FM-index or
// trigram index via Driver.Scan. MatchRow is pure and allocation-free;
// Scan evaluates rows the same way and allocates only its result slice and,
// on the index paths, its candidate bookkeeping. Compile and index
// construction also allocate.
package corelike
