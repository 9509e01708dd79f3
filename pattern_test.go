package corelike

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileBasicTokenization(t *testing.T) {
	p := Compile([]byte("app%"))
	require.Len(t, p.Tokens, 2)
	assert.Equal(t, TokenLiteral, p.Tokens[0].Kind)
	assert.Equal(t, []byte("app"), p.Tokens[0].Literal)
	assert.Equal(t, TokenFreeGap, p.Tokens[1].Kind)
	assert.Equal(t, AnchoredStart, p.Anchor)
}

func TestCompileOneGap(t *testing.T) {
	p := Compile([]byte("a__c"))
	require.Len(t, p.Tokens, 3)
	assert.Equal(t, TokenOneGap, p.Tokens[1].Kind)
	assert.Equal(t, 2, p.Tokens[1].K)
	assert.Equal(t, AnchoredBoth, p.Anchor)
}

func TestCompileFreeGapAbsorbsAdjacentOneGap(t *testing.T) {
	cases := [][]byte{
		[]byte("%_%"),
		[]byte("_%"),
		[]byte("%_"),
		[]byte("%%_"),
		[]byte("_%%"),
	}
	for _, pat := range cases {
		p := Compile(pat)
		require.Len(t, p.Tokens, 1, "pattern=%q", pat)
		assert.Equal(t, TokenFreeGap, p.Tokens[0].Kind, "pattern=%q", pat)
		assert.Equal(t, 1, p.Tokens[0].MinSkip, "pattern=%q", pat)
	}
}

func TestCompileWildcardCollapseEquivalence(t *testing.T) {
	equivalents := [][]byte{
		[]byte("a%b"),
		[]byte("a%%b"),
		[]byte("a%%%b"),
	}
	var reference *Pattern
	for _, pat := range equivalents {
		p := Compile(pat)
		if reference == nil {
			reference = p
		} else {
			assert.Equal(t, reference.Tokens, p.Tokens, "pattern=%q", pat)
			assert.Equal(t, reference.Anchor, p.Anchor, "pattern=%q", pat)
		}
	}
}

func TestCompileIdempotent(t *testing.T) {
	p1 := Compile([]byte("a%b_c"))
	p2 := Compile([]byte("a%b_c"))
	assert.Equal(t, p1.Tokens, p2.Tokens)
	assert.Equal(t, p1.Anchor, p2.Anchor)
	assert.Equal(t, p1.TotalLiteralLen, p2.TotalLiteralLen)
}

func TestCompileEmptyPattern(t *testing.T) {
	p := Compile([]byte{})
	assert.Empty(t, p.Tokens)
	assert.Equal(t, AnchoredBoth, p.Anchor)
	assert.True(t, MatchRow(p, []byte{}))
	assert.False(t, MatchRow(p, []byte("x")))
}

func TestCompileTautologyPattern(t *testing.T) {
	for _, pat := range [][]byte{[]byte("%"), []byte("%%"), []byte("%%%")} {
		p := Compile(pat)
		assert.Equal(t, Floating, p.Anchor)
		assert.True(t, MatchRow(p, []byte{}), "pattern=%q", pat)
		assert.True(t, MatchRow(p, []byte("anything")), "pattern=%q", pat)
	}
}

func TestCompileAnchorModes(t *testing.T) {
	assert.Equal(t, AnchoredBoth, Compile([]byte("abc")).Anchor)
	assert.Equal(t, AnchoredStart, Compile([]byte("abc%")).Anchor)
	assert.Equal(t, AnchoredEnd, Compile([]byte("%abc")).Anchor)
	assert.Equal(t, Floating, Compile([]byte("%abc%")).Anchor)
}

func TestCompileMultiLiteralBuildsAhoCorasick(t *testing.T) {
	p := Compile([]byte("%GAT%TACA%"))
	require.NotNil(t, p.multiLiteral)
}
