package kernel

import "github.com/corelike/corelike/internal/simd"

// NaiveSIMDKernel filters candidate positions with a word-at-a-time scan for
// a two-byte signature drawn from the needle's two rarest bytes (package
// simd's MemchrPair/SelectRareBytes), then verifies each candidate scalar.
// The pair filter rejects far more false candidates per word scanned than a
// single rare byte, at the cost of needing both bytes' relative offset
// fixed in advance — cheap, since it is computed once at kernel build time.
type NaiveSIMDKernel struct {
	needle []byte

	// loByte/hiByte are two (possibly equal-valued) needle bytes at
	// loIdx < hiIdx; offset is hiIdx-loIdx. Unused when the needle is a
	// single byte, which takes its own single-byte scan below.
	loByte, hiByte byte
	loIdx, hiIdx   int
	offset         int
}

func newNaiveSIMD(needle []byte) *NaiveSIMDKernel {
	k := &NaiveSIMDKernel{needle: needle}
	if len(needle) < 2 {
		return k
	}

	rare := simd.SelectRareBytes(needle)
	loIdx, loByte, hiIdx, hiByte := rare.Index1, rare.Byte1, rare.Index2, rare.Byte2
	if hiIdx < loIdx {
		loIdx, hiIdx = hiIdx, loIdx
		loByte, hiByte = hiByte, loByte
	}
	k.loIdx, k.loByte, k.hiIdx, k.hiByte = loIdx, loByte, hiIdx, hiByte
	k.offset = hiIdx - loIdx
	return k
}

func (k *NaiveSIMDKernel) FindFirst(haystack []byte, start int) (int, bool) {
	n, m := len(haystack), len(k.needle)
	if start < 0 || start > n {
		return 0, false
	}
	if m == 0 {
		return start, true
	}
	if m > n-start {
		return 0, false
	}
	if m == 1 {
		if p := simd.Memchr(haystack[start:], k.needle[0]); p != -1 {
			return start + p, true
		}
		return 0, false
	}

	searchFrom := start
	for searchFrom <= n-m {
		cand := simd.MemchrPair(haystack[searchFrom:], k.loByte, k.hiByte, k.offset)
		if cand == -1 {
			return 0, false
		}
		cand += searchFrom

		s := cand - k.loIdx
		if s >= start && matchesAt(haystack, k.needle, s) {
			return s, true
		}
		searchFrom = cand + 1
	}
	return 0, false
}

func (k *NaiveSIMDKernel) FindAll(haystack []byte) []int {
	n, m := len(haystack), len(k.needle)
	if m == 0 {
		return allPositions(n)
	}
	if m > n {
		return nil
	}
	if m == 1 {
		var out []int
		for i, b := range haystack {
			if b == k.needle[0] {
				out = append(out, i)
			}
		}
		return out
	}

	var out []int
	searchFrom := 0
	for searchFrom <= n-m {
		cand := simd.MemchrPair(haystack[searchFrom:], k.loByte, k.hiByte, k.offset)
		if cand == -1 {
			break
		}
		cand += searchFrom

		s := cand - k.loIdx
		if s >= 0 && s <= n-m && matchesAt(haystack, k.needle, s) {
			out = append(out, s)
		}
		searchFrom = cand + 1
	}
	return out
}
