package kernel

// NaiveKernel compares byte-by-byte at every candidate position, aborting on
// the first mismatch. O(n*m) worst case, but cache-friendly and fast in
// practice for the short literals typical of LIKE patterns.
type NaiveKernel struct {
	needle []byte
}

// NewNaive builds a Naive kernel for needle.
func NewNaive(needle []byte) *NaiveKernel {
	return &NaiveKernel{needle: needle}
}

func (k *NaiveKernel) FindFirst(haystack []byte, start int) (int, bool) {
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

	for i := start; i <= n-m; i++ {
		if matchesAt(haystack, k.needle, i) {
			return i, true
		}
	}
	return 0, false
}

func (k *NaiveKernel) FindAll(haystack []byte) []int {
	n, m := len(haystack), len(k.needle)
	if m == 0 {
		return allPositions(n)
	}
	if m > n {
		return nil
	}

	var out []int
	for i := 0; i <= n-m; i++ {
		if matchesAt(haystack, k.needle, i) {
			out = append(out, i)
		}
	}
	return out
}

func matchesAt(haystack, needle []byte, pos int) bool {
	for j := 0; j < len(needle); j++ {
		if haystack[pos+j] != needle[j] {
			return false
		}
	}
	return true
}

// allPositions returns every index 0..n inclusive — the convention every
// kernel follows for an empty needle.
func allPositions(n int) []int {
	out := make([]int, n+1)
	for i := range out {
		out[i] = i
	}
	return out
}
