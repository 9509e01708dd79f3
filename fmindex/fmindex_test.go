package fmindex

import (
	"bytes"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSample(t *testing.T) *Index {
	t.Helper()
	corpus := []byte("banana\x1fbandana\x1fapple")
	rowOffsets := []int{0, 7, 15}
	idx, err := Build(corpus, rowOffsets, 0xdeadbeef, Config{Sentinel: 0x00, Separator: 0x1f, HasSeparator: true})
	require.NoError(t, err)
	return idx
}

func TestBackwardSearchExact(t *testing.T) {
	idx := buildSample(t)
	got := idx.Search([]byte("ana"))
	sort.Ints(got)
	assert.Equal(t, []int{1, 3, 11}, got)
}

func TestBackwardSearchAbsent(t *testing.T) {
	idx := buildSample(t)
	assert.Nil(t, idx.Search([]byte("zzz")))
}

func TestSearchWithWildcard(t *testing.T) {
	idx := buildSample(t)

	got := idx.SearchWithWildcard([]byte("b_n"))
	sort.Ints(got)
	assert.Equal(t, []int{0, 7}, got)

	got = idx.SearchWithWildcard([]byte("a__le"))
	sort.Ints(got)
	assert.Equal(t, []int{15}, got)
}

func TestRowForOffset(t *testing.T) {
	idx := buildSample(t)
	assert.Equal(t, 0, idx.RowForOffset(0))
	assert.Equal(t, 0, idx.RowForOffset(5))
	assert.Equal(t, 1, idx.RowForOffset(7))
	assert.Equal(t, 1, idx.RowForOffset(14))
	assert.Equal(t, 2, idx.RowForOffset(15))
	assert.Equal(t, 2, idx.RowForOffset(20))
}

func TestSentinelInCorpusRejected(t *testing.T) {
	_, err := Build([]byte("ab\x00cd"), []int{0}, 0, Config{Sentinel: 0x00})
	require.Error(t, err)

	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, CorruptIndex, buildErr.Kind)
}

func TestRoundTripSerialization(t *testing.T) {
	idx := buildSample(t)

	var buf bytes.Buffer
	n, err := idx.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	restored := &Index{}
	_, err = restored.ReadFrom(&buf)
	require.NoError(t, err)

	assert.Equal(t, idx.Fingerprint(), restored.Fingerprint())

	want := idx.Search([]byte("ana"))
	got := restored.Search([]byte("ana"))
	assert.Equal(t, want, got)

	wantWild := idx.SearchWithWildcard([]byte("b_n"))
	gotWild := restored.SearchWithWildcard([]byte("b_n"))
	assert.Equal(t, wantWild, gotWild)
}

func TestReadFromRejectsBadMagic(t *testing.T) {
	var idx Index
	_, err := idx.ReadFrom(bytes.NewReader([]byte{1, 2, 3, 4}))
	require.Error(t, err)
}
