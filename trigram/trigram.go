// Package trigram implements an inverted index from 3-byte grams to the
// sorted list of row IDs containing them, used to prune rows before the
// row evaluator verifies a LIKE pattern's literal runs.
package trigram

import (
	"log/slog"
	"sort"
)

// Index maps every 3-byte gram present in a corpus to the sorted row IDs
// containing it. Built once by Build and never mutated afterward.
type Index struct {
	postings    map[uint32][]int32
	fingerprint uint64
}

// Build streams corpus row by row, packing every 3-byte gram into a
// uint32 key ((b0<<16)|(b1<<8)|b2, as trigram_index.rs does) and appending
// the owning row ID to that gram's posting list. Each row contributes a
// gram to a posting list at most once.
func Build(rows [][]byte, fingerprint uint64) *Index {
	postings := make(map[uint32][]int32)

	for rowID, row := range rows {
		seen := make(map[uint32]struct{})
		for _, g := range grams(row) {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			postings[g] = append(postings[g], int32(rowID))
		}
	}

	slog.Debug("trigram: build complete", "rows", len(rows), "distinct_grams", len(postings))

	return &Index{postings: postings, fingerprint: fingerprint}
}

// Fingerprint returns the content hash of the corpus this index was built
// over.
func (idx *Index) Fingerprint() uint64 { return idx.fingerprint }

// SearchLiteral returns the sorted row IDs that contain every trigram of
// literal, via a k-way intersection of their posting lists ordered
// shortest-first. ok is false if literal is shorter than 3 bytes (trigram
// search is inapplicable and the caller should fall back). If any of its
// trigrams is absent from the index, no row can match: rows is empty and ok
// is true.
func (idx *Index) SearchLiteral(literal []byte) (rows []int32, ok bool) {
	keys := grams(literal)
	if len(keys) == 0 {
		return nil, false
	}

	lists := make([][]int32, 0, len(keys))
	for _, g := range keys {
		list, present := idx.postings[g]
		if !present {
			return nil, true
		}
		lists = append(lists, list)
	}

	sort.Slice(lists, func(i, j int) bool { return len(lists[i]) < len(lists[j]) })

	result := lists[0]
	for _, list := range lists[1:] {
		result = intersectSorted(result, list)
		if len(result) == 0 {
			break
		}
	}
	return result, true
}

func grams(b []byte) []uint32 {
	if len(b) < 3 {
		return nil
	}
	out := make([]uint32, len(b)-2)
	for i := range out {
		out[i] = uint32(b[i])<<16 | uint32(b[i+1])<<8 | uint32(b[i+2])
	}
	return out
}

func intersectSorted(a, b []int32) []int32 {
	out := make([]int32, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
