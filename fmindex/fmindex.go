// Package fmindex implements a Burrows-Wheeler-transform self-index over an
// immutable byte corpus, supporting backward search for exact substrings and
// a wildcard-aware variant that backtracks through `_` positions.
//
// The index is built once over the full concatenated corpus (with a unique
// terminator appended) and never mutated; every exported method after
// Build is a pure read.
package fmindex

import (
	"fmt"
	"log/slog"
	"sort"
)

// DefaultCheckpoint is the occurrence-table sampling interval used when a
// Config leaves Checkpoint at zero. The exact value is a tuning knob, not
// prescribed by contract.
const DefaultCheckpoint = 128

// DefaultSAInterval is the suffix-array sampling interval used when a
// Config leaves SAInterval at zero.
const DefaultSAInterval = 32

// Config collects the FM-index's build-time tuning knobs, in the
// flat-struct-with-defaults style used throughout this module rather than
// functional options.
type Config struct {
	// Sentinel is appended once to the concatenated corpus and must not
	// appear anywhere in it.
	Sentinel byte
	// Separator marks row boundaries inside the concatenated corpus. If
	// zero-valued and unused, pass HasSeparator=false.
	Separator    byte
	HasSeparator bool
	// Checkpoint is the occurrence-table sampling interval in BWT
	// positions. Zero selects DefaultCheckpoint.
	Checkpoint int
	// SAInterval is the suffix-array sampling interval. Zero selects
	// DefaultSAInterval. Build does not sample the suffix array: the index
	// keeps every suffix-array entry and SAInterval has no effect on it.
	SAInterval int
}

func (c Config) withDefaults() Config {
	if c.Checkpoint <= 0 {
		c.Checkpoint = DefaultCheckpoint
	}
	if c.SAInterval <= 0 {
		c.SAInterval = DefaultSAInterval
	}
	return c
}

// Index is a built, immutable FM-index over one byte corpus.
type Index struct {
	text []byte // corpus with the sentinel appended
	sa   []int32
	bwt  []byte // BWT bytes remapped to alphabet rank

	byteToRank [256]int16
	rankToByte []byte
	counts     []int32 // per-rank occurrence count
	c          []int32 // per-rank cumulative count (C array)

	occ        [][]int32 // occ[i][rank] = count of rank in bwt[:i*checkpoint]
	checkpoint int

	sentinelRank   int
	separatorRank  int
	hasSeparator   bool
	rowStarts      []int32 // sorted row-start offsets into text, for row resolution
	fingerprint    uint64
	lastRowHit     int // cache for row→offset resolution, per spec.md §9
}

// Build constructs an FM-index over corpus, recording rowStarts (the
// corpus-relative start offset of every row) for row resolution by binary
// search, and fingerprint (the corpus's content hash) for round-trip
// verification after serialization.
func Build(corpus []byte, rowOffsets []int, fingerprint uint64, cfg Config) (*Index, error) {
	cfg = cfg.withDefaults()

	for _, b := range corpus {
		if b == cfg.Sentinel {
			return nil, &BuildError{Kind: CorruptIndex, Cause: fmt.Errorf("fmindex: sentinel byte 0x%02x appears in corpus", cfg.Sentinel)}
		}
	}

	text := make([]byte, len(corpus)+1)
	copy(text, corpus)
	text[len(corpus)] = cfg.Sentinel

	sa := buildSuffixArray(text)
	bwt := buildBWT(text, sa, cfg.Sentinel)

	byteToRank, rankToByte, counts := buildAlphabet(text)
	sentinelRank := int(byteToRank[cfg.Sentinel])
	if sentinelRank < 0 {
		return nil, &BuildError{Kind: CorruptIndex, Cause: fmt.Errorf("fmindex: sentinel has no alphabet rank")}
	}

	separatorRank := -1
	if cfg.HasSeparator {
		separatorRank = int(byteToRank[cfg.Separator])
	}

	cArray := buildC(counts)
	remapped := remapBWT(bwt, byteToRank)
	occ := buildOcc(remapped, len(counts), cfg.Checkpoint)

	rowStarts := make([]int32, len(rowOffsets))
	for i, off := range rowOffsets {
		rowStarts[i] = int32(off)
	}

	slog.Debug("fmindex: build complete", "corpus_bytes", len(corpus), "rows", len(rowOffsets), "alphabet_size", len(counts))

	return &Index{
		text:          text,
		sa:            sa,
		bwt:           remapped,
		byteToRank:    byteToRank,
		rankToByte:    rankToByte,
		counts:        counts,
		c:             cArray,
		occ:           occ,
		checkpoint:    cfg.Checkpoint,
		sentinelRank:  sentinelRank,
		separatorRank: separatorRank,
		hasSeparator:  cfg.HasSeparator,
		rowStarts:     rowStarts,
		fingerprint:   fingerprint,
	}, nil
}

// Len returns the length of the indexed text, including its sentinel.
func (idx *Index) Len() int { return len(idx.text) }

// Fingerprint returns the content hash of the corpus this index was built
// over, for round-trip verification against a Corpus.Fingerprint().
func (idx *Index) Fingerprint() uint64 { return idx.fingerprint }

// BackwardSearch returns the SA-interval [lo, hi) of suffixes starting with
// pattern, or ok=false if pattern does not occur. An empty pattern matches
// the whole index.
func (idx *Index) BackwardSearch(pattern []byte) (lo, hi int, ok bool) {
	if len(pattern) == 0 {
		return 0, idx.Len(), true
	}

	top, bottom := 0, idx.Len()
	for i := len(pattern) - 1; i >= 0; i-- {
		rank := idx.rankFor(pattern[i])
		if rank < 0 || idx.counts[rank] == 0 {
			return 0, 0, false
		}
		top = int(idx.c[rank]) + idx.occAt(rank, top)
		bottom = int(idx.c[rank]) + idx.occAt(rank, bottom)
		if top >= bottom {
			return 0, 0, false
		}
	}
	return top, bottom, true
}

// Search returns every corpus offset where pattern occurs, ascending.
func (idx *Index) Search(pattern []byte) []int {
	lo, hi, ok := idx.BackwardSearch(pattern)
	if !ok {
		return nil
	}
	out := make([]int, 0, hi-lo)
	for _, p := range idx.sa[lo:hi] {
		out = append(out, int(p))
	}
	sort.Ints(out)
	return out
}

// SearchWithWildcard returns every corpus offset where pattern occurs,
// treating each '_' byte as a single-byte wildcard. It backtracks through
// the SA-interval maintained for the literal suffix already matched,
// trying every alphabet byte at each wildcard position (excluding the
// sentinel and, if configured, the row separator).
func (idx *Index) SearchWithWildcard(pattern []byte) []int {
	if len(pattern) == 0 {
		out := make([]int, idx.Len())
		for i := range out {
			out[i] = i
		}
		return out
	}

	seen := make(map[int]struct{})
	idx.searchWildcardRec(pattern, len(pattern)-1, 0, idx.Len(), seen)

	out := make([]int, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

func (idx *Index) searchWildcardRec(pattern []byte, i, top, bottom int, seen map[int]struct{}) {
	if i < 0 {
		for _, p := range idx.sa[top:bottom] {
			seen[int(p)] = struct{}{}
		}
		return
	}

	ch := pattern[i]
	if ch == '_' {
		triedRank := make([]bool, len(idx.counts))
		for _, r := range idx.bwt[top:bottom] {
			rank := int(r)
			if triedRank[rank] {
				continue
			}
			triedRank[rank] = true
			if rank == idx.sentinelRank || (idx.hasSeparator && rank == idx.separatorRank) {
				continue
			}
			if idx.counts[rank] == 0 {
				continue
			}
			newTop := int(idx.c[rank]) + idx.occAt(rank, top)
			newBottom := int(idx.c[rank]) + idx.occAt(rank, bottom)
			if newTop < newBottom {
				idx.searchWildcardRec(pattern, i-1, newTop, newBottom, seen)
			}
		}
		return
	}

	rank := idx.rankFor(ch)
	if rank < 0 || idx.counts[rank] == 0 {
		return
	}
	newTop := int(idx.c[rank]) + idx.occAt(rank, top)
	newBottom := int(idx.c[rank]) + idx.occAt(rank, bottom)
	if newTop < newBottom {
		idx.searchWildcardRec(pattern, i-1, newTop, newBottom, seen)
	}
}

// RowForOffset returns the row ID owning corpus offset off, resolved by
// binary search over the row-start array. The previous hit is checked
// first as a cheap micro-optimization for clustered queries (spec.md §9);
// it does not affect correctness.
func (idx *Index) RowForOffset(off int) int {
	if idx.lastRowHit < len(idx.rowStarts) && idx.rowOwnsOffset(idx.lastRowHit, off) {
		return idx.lastRowHit
	}

	row := sort.Search(len(idx.rowStarts), func(i int) bool {
		return int(idx.rowStarts[i]) > off
	}) - 1
	if row < 0 {
		row = 0
	}
	idx.lastRowHit = row
	return row
}

func (idx *Index) rowOwnsOffset(row, off int) bool {
	start := int(idx.rowStarts[row])
	if off < start {
		return false
	}
	if row+1 < len(idx.rowStarts) {
		return off < int(idx.rowStarts[row+1])
	}
	return true
}

func (idx *Index) rankFor(b byte) int {
	return int(idx.byteToRank[b])
}

func (idx *Index) occAt(rank, index int) int {
	if index > idx.Len() {
		index = idx.Len()
	}
	baseIdx := index / idx.checkpoint
	basePos := baseIdx * idx.checkpoint
	count := int(idx.occ[baseIdx][rank])
	for _, r := range idx.bwt[basePos:index] {
		if int(r) == rank {
			count++
		}
	}
	return count
}

func buildSuffixArray(text []byte) []int32 {
	n := len(text)
	sa := make([]int32, n)
	for i := range sa {
		sa[i] = int32(i)
	}
	sort.Slice(sa, func(i, j int) bool {
		a, b := sa[i], sa[j]
		return string(text[a:]) < string(text[b:])
	})
	return sa
}

func buildBWT(text []byte, sa []int32, sentinel byte) []byte {
	bwt := make([]byte, len(sa))
	for i, pos := range sa {
		if pos == 0 {
			bwt[i] = sentinel
		} else {
			bwt[i] = text[pos-1]
		}
	}
	return bwt
}

func buildAlphabet(text []byte) ([256]int16, []byte, []int32) {
	var countsByByte [256]int32
	for _, b := range text {
		countsByByte[b]++
	}

	var byteToRank [256]int16
	for i := range byteToRank {
		byteToRank[i] = -1
	}
	var rankToByte []byte
	var counts []int32

	for b := 0; b < 256; b++ {
		if countsByByte[b] == 0 {
			continue
		}
		rank := len(rankToByte)
		byteToRank[b] = int16(rank)
		rankToByte = append(rankToByte, byte(b))
		counts = append(counts, countsByByte[b])
	}
	return byteToRank, rankToByte, counts
}

func buildC(counts []int32) []int32 {
	c := make([]int32, len(counts))
	var total int32
	for i, count := range counts {
		c[i] = total
		total += count
	}
	return c
}

func remapBWT(bwt []byte, byteToRank [256]int16) []byte {
	out := make([]byte, len(bwt))
	for i, b := range bwt {
		out[i] = byte(byteToRank[b])
	}
	return out
}

func buildOcc(bwt []byte, sigma, checkpoint int) [][]int32 {
	var occ [][]int32
	counts := make([]int32, sigma)
	occ = append(occ, append([]int32(nil), counts...))

	for i, rank := range bwt {
		counts[rank]++
		if (i+1)%checkpoint == 0 {
			occ = append(occ, append([]int32(nil), counts...))
		}
	}
	if len(bwt)%checkpoint != 0 {
		occ = append(occ, append([]int32(nil), counts...))
	}
	return occ
}
