package corelike

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchRowFastPaths(t *testing.T) {
	assert.True(t, MatchRow(Compile([]byte("%")), []byte("anything")))
	assert.True(t, MatchRow(Compile([]byte("hello")), []byte("hello")))
	assert.False(t, MatchRow(Compile([]byte("hello")), []byte("hello world")))
	assert.True(t, MatchRow(Compile([]byte("a_c")), []byte("abc")))
	assert.False(t, MatchRow(Compile([]byte("a_c")), []byte("abcd")))
}

func TestMatchRowGeneralCase(t *testing.T) {
	cases := []struct {
		pattern, row string
		want         bool
	}{
		{"h%o", "hello", true},
		{"h%o", "ho", true},
		{"h%o", "h", false},
		{"h_t", "hat", true},
		{"h_t", "heat", false},
		{"%a", "banana", true},
		{"%a", "pizza", true},
		{"a%b", "abb", true},
		{"a_%_b", "ax_b", true},
		{"a_%_b", "a_long___b", true},
		{"a_%_b", "ab", false},
		// Rigid block ("a", then fixed '_', then "c") right after a '%'
		// and closing the row: the leftmost "a" (offset 0) fails the '_c'
		// check against "XaYc", but the block is placed at len(row)-3
		// (offset 2): '_' covers 'Y', "c" lands on offset 4.
		{"%a_c", "aXaYc", true},
		{"%a_c", "aXaYd", false},
		// Rigid block with two literals joined only by OneGap collapse,
		// same retry requirement in the middle of a floating pattern.
		{"%a_c%", "zzaXbYcZZ", false},
		{"%a_c%", "zzaXaYcZZ", true},
	}
	for _, tc := range cases {
		got := MatchRow(Compile([]byte(tc.pattern)), []byte(tc.row))
		assert.Equal(t, tc.want, got, "pattern=%q row=%q", tc.pattern, tc.row)
	}
}

func TestMatchRowAnchoredEndPicksRightmostLiteral(t *testing.T) {
	// "%ab" on "abab" must require the row to END with "ab" — it does
	// (rightmost occurrence at offset 2), so this should match; a
	// leftmost-only implementation would also happen to match here, but
	// the rightmost requirement is load-bearing once the row has trailing
	// bytes after the leftmost hit.
	assert.True(t, MatchRow(Compile([]byte("%ab")), []byte("abab")))
	assert.False(t, MatchRow(Compile([]byte("%ab")), []byte("abx")))
}

func TestMatchRowLengthBoundIsO1Reject(t *testing.T) {
	p := Compile([]byte("hello_world"))
	assert.False(t, MatchRow(p, []byte("hi")))
}

func TestMatchRowReverseEquivalence(t *testing.T) {
	cases := []struct{ pattern, row string }{
		{"app%", "apple"},
		{"%apple", "pineapple"},
		{"%app%", "application"},
		{"a_c", "abc"},
		{"%ATCG%", "ATCGATCG"},
		{"%a_c", "aXaYc"},
	}
	for _, tc := range cases {
		fwd := MatchRow(Compile([]byte(tc.pattern)), []byte(tc.row))
		rev := MatchRow(Compile(reverseLike([]byte(tc.pattern))), reverseBytes([]byte(tc.row)))
		assert.Equal(t, fwd, rev, "pattern=%q row=%q", tc.pattern, tc.row)
	}
}

// reverseLike reverses a LIKE pattern's bytes, which is sufficient since %
// and _ are single ASCII bytes unaffected by byte-order reversal.
func reverseLike(p []byte) []byte { return reverseBytes(p) }

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

func TestMatchRowMultiLiteralNestedPrefixLiterals(t *testing.T) {
	// "ab" is a prefix of "abc": a multi-literal pre-check that walks a
	// shared automaton and advances past every reported match's start can
	// report "ab"@0 and then "ab"@2, skipping the "abc"@2 that shares that
	// start, and so never observe "abc" at all. The evaluator's verdict
	// must not depend on that tie-break.
	p := Compile([]byte("ab%abc"))
	assert.True(t, MatchRow(p, []byte("ababc")))
}

func TestMatchRowMultiLiteralAgreesWithSequentialPath(t *testing.T) {
	pattern := []byte("%GAT%TACA%")
	rows := []string{
		"GATTACA",
		"XXGATXXTACAXX",
		"GAT",
		"TACA",
		"GATGATTACATACA",
		"no match here",
	}
	p := Compile(pattern)
	withoutAC := *p
	withoutAC.multiLiteral = nil

	for _, row := range rows {
		got := MatchRow(p, []byte(row))
		want := MatchRow(&withoutAC, []byte(row))
		assert.Equal(t, want, got, "row=%q", row)
	}
}
