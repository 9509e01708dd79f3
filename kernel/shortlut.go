package kernel

// ShortLUTKernel accelerates needles of at most 8 bytes with a nibble
// lookup table keyed on the needle's rarest byte: a low-nibble mask and a
// high-nibble mask, each 16 entries, such that a haystack byte survives
// only if both its nibbles collide with the signature byte's nibbles. Every
// survivor is then verified with a full scalar compare, since nibble
// collisions can produce false positives.
//
// This is the Go-level algorithm the teacher's Teddy prefilter and the
// source's SSSE3/NEON LUT kernel both implement with real vector
// instructions (PSHUFB / TBL); ShortLUT performs the identical masking
// arithmetic a byte at a time rather than 16 at a time, so its availability
// gate (shortLUTAvailable, set per architecture) exists to preserve the
// kernel-selection contract rather than because this file needs the
// hardware feature to run correctly.
type ShortLUTKernel struct {
	needle   []byte
	sigByte  byte
	sigIndex int
	lutLo    [16]bool
	lutHi    [16]bool
}

func newShortLUT(needle []byte) *ShortLUTKernel {
	if len(needle) > 8 {
		panic("kernel: ShortLUT requires a needle of at most 8 bytes")
	}
	sig, idx := rarestByte(needle)
	k := &ShortLUTKernel{needle: needle, sigByte: sig, sigIndex: idx}
	k.lutLo[sig&0x0f] = true
	k.lutHi[sig>>4] = true
	return k
}

// rarestByte returns the least-frequent byte in needle (ties broken by
// earliest position) and its index, used as the kernel's filter signature.
func rarestByte(needle []byte) (byte, int) {
	if len(needle) == 0 {
		return 0, 0
	}
	var counts [256]int
	for _, b := range needle {
		counts[b]++
	}
	best, bestIdx, bestCount := needle[0], 0, counts[needle[0]]
	for i, b := range needle {
		if counts[b] < bestCount {
			best, bestIdx, bestCount = b, i, counts[b]
		}
	}
	return best, bestIdx
}

func (k *ShortLUTKernel) candidateAt(haystack []byte, pos int) bool {
	b := haystack[pos]
	return k.lutLo[b&0x0f] && k.lutHi[b>>4]
}

func (k *ShortLUTKernel) matchesAt(haystack []byte, start int) bool {
	m := len(k.needle)
	if start < 0 || start+m > len(haystack) {
		return false
	}
	for i := 0; i < m; i++ {
		if haystack[start+i] != k.needle[i] {
			return false
		}
	}
	return true
}

func (k *ShortLUTKernel) FindFirst(haystack []byte, start int) (int, bool) {
	n, m := len(haystack), len(k.needle)
	if start < 0 || start > n {
		return 0, false
	}
	if m == 0 {
		return start, true
	}
	if m > n {
		return 0, false
	}
	if m == 1 {
		if p := indexByte(haystack, start, k.needle[0]); p != -1 {
			return p, true
		}
		return 0, false
	}

	for cand := start + k.sigIndex; cand < n; cand++ {
		if !k.candidateAt(haystack, cand) {
			continue
		}
		s := cand - k.sigIndex
		if s >= start && k.matchesAt(haystack, s) {
			return s, true
		}
	}
	return 0, false
}

func (k *ShortLUTKernel) FindAll(haystack []byte) []int {
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
	for cand := k.sigIndex; cand < n; cand++ {
		if !k.candidateAt(haystack, cand) {
			continue
		}
		s := cand - k.sigIndex
		if s >= 0 && k.matchesAt(haystack, s) {
			out = append(out, s)
		}
	}
	return out
}

func indexByte(haystack []byte, from int, b byte) int {
	for i := from; i < len(haystack); i++ {
		if haystack[i] == b {
			return i
		}
	}
	return -1
}
