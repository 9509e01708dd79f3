package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allKinds lists every single-needle constructible kind; AhoCorasick is
// excluded since it operates over a set of literals, not one needle.
func allKinds() []Kind {
	kinds := []Kind{Naive, KMP, BoyerMoore, StdFind}
	if Available(NaiveSIMD) {
		kinds = append(kinds, NaiveSIMD)
	}
	if Available(ShortLUT) {
		kinds = append(kinds, ShortLUT)
	}
	return kinds
}

func TestKernelEquivalenceFindAll(t *testing.T) {
	cases := []struct {
		haystack, needle string
	}{
		{"", "a"},
		{"abc", ""},
		{"abcabcabc", "abc"},
		{"aaaaaaaa", "aa"},
		{"mississippi", "issi"},
		{"the quick brown fox", "fox"},
		{"the quick brown fox", "cat"},
		{"xxxxxxxxxxxxxxxxxx", "x"},
		{"needle shorter than haystack", "needle shorter than haystack plus more"},
		{"abababab", "aba"},
	}

	for _, tc := range cases {
		var reference []int
		for _, kind := range allKinds() {
			if kind == ShortLUT && len(tc.needle) > 8 {
				continue
			}
			k := New(kind, []byte(tc.needle))
			got := k.FindAll([]byte(tc.haystack))
			if reference == nil {
				reference = got
			} else {
				assert.Equal(t, reference, got, "kind=%s haystack=%q needle=%q", kind, tc.haystack, tc.needle)
			}
		}
	}
}

func TestKernelEquivalenceFindFirst(t *testing.T) {
	haystack := []byte("mississippi river basin mississippi delta")
	needle := []byte("ssi")

	for _, start := range []int{0, 1, 5, 20, len(haystack)} {
		var refPos int
		var refOK bool
		for i, kind := range allKinds() {
			k := New(kind, needle)
			pos, ok := k.FindFirst(haystack, start)
			if i == 0 {
				refPos, refOK = pos, ok
			} else {
				assert.Equal(t, refOK, ok, "kind=%s start=%d", kind, start)
				if refOK {
					assert.Equal(t, refPos, pos, "kind=%s start=%d", kind, start)
				}
			}
		}
	}
}

func TestEmptyNeedleMatchesEverywhere(t *testing.T) {
	haystack := []byte("abc")
	for _, kind := range allKinds() {
		k := New(kind, []byte{})
		all := k.FindAll(haystack)
		assert.Equal(t, []int{0, 1, 2, 3}, all, "kind=%s", kind)

		pos, ok := k.FindFirst(haystack, 2)
		require.True(t, ok)
		assert.Equal(t, 2, pos)
	}
}

func TestNeedleLongerThanHaystackNeverMatches(t *testing.T) {
	for _, kind := range allKinds() {
		k := New(kind, []byte("a very long needle indeed"))
		assert.Nil(t, k.FindAll([]byte("short")), "kind=%s", kind)
		_, ok := k.FindFirst([]byte("short"), 0)
		assert.False(t, ok, "kind=%s", kind)
	}
}

func TestFindFirstOutOfRangeStart(t *testing.T) {
	for _, kind := range allKinds() {
		k := New(kind, []byte("a"))
		_, ok := k.FindFirst([]byte("abc"), 10)
		assert.False(t, ok, "kind=%s", kind)
	}
}

func TestFindLast(t *testing.T) {
	haystack := []byte("abcabcabc")
	for _, kind := range allKinds() {
		k := New(kind, []byte("abc"))
		pos, ok := FindLast(k, haystack)
		require.True(t, ok, "kind=%s", kind)
		assert.Equal(t, 6, pos, "kind=%s", kind)
	}

	k := New(Naive, []byte("zzz"))
	_, ok := FindLast(k, haystack)
	assert.False(t, ok)
}

func TestKindStringAndAvailable(t *testing.T) {
	assert.Equal(t, "naive", Naive.String())
	assert.Equal(t, "kmp", KMP.String())
	assert.Equal(t, "boyer-moore", BoyerMoore.String())
	assert.Equal(t, "std-find", StdFind.String())
	assert.True(t, Available(Naive))
	assert.True(t, Available(KMP))
	assert.True(t, Available(BoyerMoore))
	assert.True(t, Available(StdFind))
}

func TestAhoCorasickMultiLiteral(t *testing.T) {
	k, err := NewAhoCorasick([][]byte{[]byte("apple"), []byte("banana")})
	require.NoError(t, err)

	assert.True(t, k.ContainsAll([]byte("I have an apple and a banana")))
	assert.False(t, k.ContainsAll([]byte("I have an apple but no other fruit")))

	pos, length, ok := k.FindFirstAny([]byte("a ripe banana and an apple"), 0)
	require.True(t, ok)
	assert.Equal(t, 7, pos)
	assert.Equal(t, 6, length)
}

func TestAhoCorasickContainsAllNestedPrefixLiterals(t *testing.T) {
	// "ab" is a prefix of "abc" and both share a start position in
	// "ababc" (at offset 2): ContainsAll must not miss "abc" just because
	// a shared automaton walk resumed past that position after reporting
	// "ab" there first.
	k, err := NewAhoCorasick([][]byte{[]byte("ab"), []byte("abc")})
	require.NoError(t, err)

	assert.True(t, k.ContainsAll([]byte("ababc")))
	assert.False(t, k.ContainsAll([]byte("abdab")))
}
