package corelike

import (
	"sort"
	"testing"

	"github.com/corelike/corelike/fmindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestCorpus(rows []string) *Corpus {
	var buf []byte
	offsets := make([]int, len(rows))
	for i, r := range rows {
		offsets[i] = len(buf)
		buf = append(buf, r...)
	}
	return NewCorpus(buf, offsets)
}

func TestDriverScanRowWiseNoIndexes(t *testing.T) {
	corpus := buildTestCorpus([]string{"apple", "application", "pineapple", "banana", ""})
	d := NewDriver(corpus, DefaultOptions())

	got := d.Scan(Compile([]byte("app%")))
	assert.Equal(t, []int{0, 1}, got)
}

func TestDriverScanFMIndexAgreesWithRowWise(t *testing.T) {
	rows := []string{"apple", "application", "pineapple", "banana", "bandana", ""}
	corpus := buildTestCorpus(rows)

	patterns := [][]byte{
		[]byte("app%"),
		[]byte("%apple"),
		[]byte("%an%"),
		[]byte("ban_na"),
		[]byte("%a%"),
	}

	for _, pat := range patterns {
		plan := Compile(pat)

		rowWise := NewDriver(corpus, DefaultOptions())
		want := rowWise.Scan(plan)

		withFM := NewDriver(corpus, Options{FMThreshold: 1})
		require.NoError(t, withFM.BuildFMIndex(fmindex.Config{}))
		got := withFM.Scan(plan)

		assert.Equal(t, want, got, "pattern=%q", pat)
	}
}

func TestDriverScanTrigramAgreesWithRowWise(t *testing.T) {
	rows := []string{"apple", "application", "pineapple", "banana", "bandana", ""}
	corpus := buildTestCorpus(rows)

	patterns := [][]byte{
		[]byte("app%"),
		[]byte("%apple"),
		[]byte("%ana%"),
		[]byte("%nan%"),
	}

	for _, pat := range patterns {
		plan := Compile(pat)

		rowWise := NewDriver(corpus, DefaultOptions())
		want := rowWise.Scan(plan)

		withTri := NewDriver(corpus, Options{TrigramMinLiteral: 1, SkipFM: true})
		require.NoError(t, withTri.BuildTrigramIndex())
		got := withTri.Scan(plan)

		assert.Equal(t, want, got, "pattern=%q", pat)
	}
}

func TestDriverScanSkipFlagsForceRowWise(t *testing.T) {
	corpus := buildTestCorpus([]string{"apple", "banana"})
	d := NewDriver(corpus, Options{SkipFM: true, SkipTrigram: true, FMThreshold: 1, TrigramMinLiteral: 1})
	require.NoError(t, d.BuildFMIndex(fmindex.Config{}))
	require.NoError(t, d.BuildTrigramIndex())

	got := d.Scan(Compile([]byte("%an%")))
	assert.Equal(t, []int{1}, got)
}

func TestDriverScanStaleIndexFingerprintFallsBackToRowWise(t *testing.T) {
	corpus := buildTestCorpus([]string{"apple", "banana"})
	d := NewDriver(corpus, Options{FMThreshold: 1})
	require.NoError(t, d.BuildFMIndex(fmindex.Config{}))

	// Mutate the corpus after the index was built: fingerprints now diverge,
	// so Scan must not trust the stale FM-index.
	d.corpus = buildTestCorpus([]string{"apple", "grape"})

	got := d.Scan(Compile([]byte("%an%")))
	assert.Empty(t, got)
}

func TestDriverScanParallelAgreesWithSerial(t *testing.T) {
	rows := []string{
		"apple", "application", "pineapple", "banana", "bandana",
		"grape", "grapefruit", "orange", "tangerine", "kiwi", "",
	}
	corpus := buildTestCorpus(rows)
	d := NewDriver(corpus, DefaultOptions())

	plan := Compile([]byte("%an%"))
	serial := d.Scan(plan)

	for _, workers := range []int{1, 2, 3, 4, 16} {
		got := d.ScanParallel(plan, workers)
		sort.Ints(got)
		assert.Equal(t, serial, got, "workers=%d", workers)
	}
}

func TestDriverBuildFMIndexFailureFallsBackRowWise(t *testing.T) {
	// A sentinel byte appearing in the corpus makes fmindex.Build reject it.
	corpus := buildTestCorpus([]string{"apple\x00banana"})
	d := NewDriver(corpus, Options{FMThreshold: 1})

	err := d.BuildFMIndex(fmindex.Config{Sentinel: 0x00})
	require.Error(t, err)

	got := d.Scan(Compile([]byte("apple%")))
	assert.Equal(t, []int{0}, got)
}
