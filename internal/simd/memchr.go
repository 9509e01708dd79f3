// Package simd provides portable byte-search primitives used by the search
// kernels in package kernel.
//
// None of these routines dispatch on CPU feature flags: they are SWAR (SIMD
// Within A Register) implementations that pack 8 bytes into a uint64 and use
// bitwise zero-byte detection to scan a whole word per iteration. The
// feature-gated kernels (Naive-SIMD, Short-LUT) live in package kernel
// behind build tags; this package is their common, always-available
// byte-scanning substrate.
package simd

import (
	"encoding/binary"
	"math/bits"
)

const lo8 = uint64(0x0101010101010101)
const hi8 = uint64(0x8080808080808080)

// Memchr returns the index of the first occurrence of needle in haystack,
// or -1 if absent.
func Memchr(haystack []byte, needle byte) int {
	n := len(haystack)
	if n == 0 {
		return -1
	}
	if n < 8 {
		return memchrScalar(haystack, needle)
	}

	mask := uint64(needle) * lo8
	idx := 0
	for idx+8 <= n {
		chunk := binary.LittleEndian.Uint64(haystack[idx:])
		xor := chunk ^ mask
		if hasZero := (xor - lo8) &^ xor & hi8; hasZero != 0 {
			return idx + bits.TrailingZeros64(hasZero)/8
		}
		idx += 8
	}
	if pos := memchrScalar(haystack[idx:], needle); pos != -1 {
		return idx + pos
	}
	return -1
}

func memchrScalar(haystack []byte, needle byte) int {
	for i, b := range haystack {
		if b == needle {
			return i
		}
	}
	return -1
}

// MemchrPair returns the first index i such that haystack[i] == b1 and
// haystack[i+offset] == b2, or -1 if no such index exists.
//
// This is used to cheaply verify a two-byte signature at a fixed distance
// before paying for a full needle comparison — a much more selective filter
// than a single rare byte.
func MemchrPair(haystack []byte, b1, b2 byte, offset int) int {
	n := len(haystack)
	if n == 0 || offset < 0 || n <= offset {
		return -1
	}
	if n < 8+offset {
		for i := 0; i+offset < n; i++ {
			if haystack[i] == b1 && haystack[i+offset] == b2 {
				return i
			}
		}
		return -1
	}

	mask1 := uint64(b1) * lo8
	mask2 := uint64(b2) * lo8

	idx := 0
	for idx+8+offset <= n {
		chunk1 := binary.LittleEndian.Uint64(haystack[idx:])
		chunk2 := binary.LittleEndian.Uint64(haystack[idx+offset:])

		xor1 := chunk1 ^ mask1
		xor2 := chunk2 ^ mask2
		has1 := (xor1 - lo8) &^ xor1 & hi8
		has2 := (xor2 - lo8) &^ xor2 & hi8

		// A borrow out of a true zero lane can flag the lane above it, so
		// each flagged lane is confirmed before it is reported.
		for both := has1 & has2; both != 0; both &= both - 1 {
			i := idx + bits.TrailingZeros64(both)/8
			if haystack[i] == b1 && haystack[i+offset] == b2 {
				return i
			}
		}
		idx += 8
	}
	for idx+offset < n {
		if haystack[idx] == b1 && haystack[idx+offset] == b2 {
			return idx
		}
		idx++
	}
	return -1
}
