package kernel

// KMPKernel is the Knuth-Morris-Pratt kernel: a precomputed prefix-function
// table lets the scan skip ahead on a mismatch without ever re-examining a
// haystack byte, guaranteeing O(n+m).
type KMPKernel struct {
	needle []byte
	lps    []int // lps[i] = length of the longest proper prefix of needle[:i+1] that is also a suffix
}

// NewKMP builds a KMP kernel for needle, computing its prefix-function table
// once.
func NewKMP(needle []byte) *KMPKernel {
	return &KMPKernel{needle: needle, lps: buildLPS(needle)}
}

func buildLPS(needle []byte) []int {
	m := len(needle)
	lps := make([]int, m)
	length := 0
	i := 1
	for i < m {
		if needle[i] == needle[length] {
			length++
			lps[i] = length
			i++
		} else if length != 0 {
			length = lps[length-1]
		} else {
			lps[i] = 0
			i++
		}
	}
	return lps
}

func (k *KMPKernel) FindFirst(haystack []byte, start int) (int, bool) {
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

	i, j := start, 0
	for i < n {
		if haystack[i] == k.needle[j] {
			i++
			j++
			if j == m {
				return i - j, true
			}
		} else if j != 0 {
			j = k.lps[j-1]
		} else {
			i++
		}
	}
	return 0, false
}

func (k *KMPKernel) FindAll(haystack []byte) []int {
	n, m := len(haystack), len(k.needle)
	if m == 0 {
		return allPositions(n)
	}
	if m > n {
		return nil
	}

	var out []int
	i, j := 0, 0
	for i < n {
		if haystack[i] == k.needle[j] {
			i++
			j++
			if j == m {
				out = append(out, i-j)
				j = k.lps[j-1]
			}
		} else if j != 0 {
			j = k.lps[j-1]
		} else {
			i++
		}
	}
	return out
}
