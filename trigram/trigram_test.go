package trigram

import (
	"bytes"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() [][]byte {
	return [][]byte{
		[]byte("apple"),
		[]byte("applet"),
		[]byte("pineapple"),
		[]byte("application"),
		[]byte("banana"),
		[]byte("bandana"),
	}
}

func TestSearchLiteralCandidates(t *testing.T) {
	idx := Build(sampleRows(), 0)

	rows, ok := idx.SearchLiteral([]byte("appl"))
	require.True(t, ok)
	assert.Equal(t, []int32{0, 1, 2, 3}, rows)

	rows, ok = idx.SearchLiteral([]byte("ana"))
	require.True(t, ok)
	assert.Equal(t, []int32{4, 5}, rows)

	rows, ok = idx.SearchLiteral([]byte("pine"))
	require.True(t, ok)
	assert.Equal(t, []int32{2}, rows)
}

func TestSearchLiteralTooShortFallsBack(t *testing.T) {
	idx := Build([][]byte{[]byte("abc")}, 0)
	_, ok := idx.SearchLiteral([]byte("an"))
	assert.False(t, ok)
}

func TestSearchLiteralAbsentGramYieldsNoRows(t *testing.T) {
	idx := Build([][]byte{[]byte("abc")}, 0)
	rows, ok := idx.SearchLiteral([]byte("xyz"))
	require.True(t, ok)
	assert.Empty(t, rows)
}

func TestRoundTripSerialization(t *testing.T) {
	idx := Build(sampleRows(), 0xcafef00d)

	var buf bytes.Buffer
	_, err := idx.WriteTo(&buf)
	require.NoError(t, err)

	restored := &Index{}
	_, err = restored.ReadFrom(&buf)
	require.NoError(t, err)

	assert.Equal(t, idx.Fingerprint(), restored.Fingerprint())

	want, _ := idx.SearchLiteral([]byte("appl"))
	got, _ := restored.SearchLiteral([]byte("appl"))
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	assert.Equal(t, want, got)
}

func TestReadFromRejectsBadMagic(t *testing.T) {
	var idx Index
	_, err := idx.ReadFrom(bytes.NewReader([]byte{1, 2, 3, 4}))
	require.Error(t, err)
}
