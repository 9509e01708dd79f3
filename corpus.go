package corelike

import "github.com/zeebo/xxh3"

// Corpus is the minimal immutable view the query API receives from the
// (out-of-scope) ingestion/arena layer: a contiguous byte region plus
// monotonically increasing row offsets. Row i occupies
// [RowOffsets[i], RowOffsets[i+1]), except the last row, which runs to the
// end of Bytes. Corpus owns no memory beyond its thin offset index; it
// never copies the backing slice.
type Corpus struct {
	bytes      []byte
	rowOffsets []int
}

// NewCorpus wraps bytes and rowOffsets into a Corpus without copying
// bytes. rowOffsets must be non-decreasing and its first element, if any,
// must be 0.
func NewCorpus(bytes []byte, rowOffsets []int) *Corpus {
	return &Corpus{bytes: bytes, rowOffsets: rowOffsets}
}

// Bytes returns the corpus's backing byte region.
func (c *Corpus) Bytes() []byte { return c.bytes }

// NumRows returns the number of rows in the corpus.
func (c *Corpus) NumRows() int { return len(c.rowOffsets) }

// Row returns the bytes of row i.
func (c *Corpus) Row(i int) []byte {
	start := c.rowOffsets[i]
	if i+1 < len(c.rowOffsets) {
		return c.bytes[start:c.rowOffsets[i+1]]
	}
	return c.bytes[start:]
}

// RowOffsets returns the corpus's row-start offsets, for callers building
// an index over the same corpus.
func (c *Corpus) RowOffsets() []int { return c.rowOffsets }

// Fingerprint hashes the corpus's backing bytes with xxh3, letting a
// caller verify a deserialized FM-index or trigram index was built over
// these exact bytes before trusting its results.
func (c *Corpus) Fingerprint() uint64 {
	return xxh3.Hash(c.bytes)
}
