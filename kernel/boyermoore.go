package kernel

// BoyerMooreKernel scans each candidate window right-to-left and advances by
// the larger of the bad-character and good-suffix shifts, giving sub-linear
// behavior on natural text with moderately sized needles.
type BoyerMooreKernel struct {
	needle     []byte
	badChar    [256]int // last occurrence of byte b in needle, or -1
	goodSuffix []int    // length m+1
}

// NewBoyerMoore builds a Boyer-Moore kernel for needle, computing its
// bad-character and good-suffix tables once.
func NewBoyerMoore(needle []byte) *BoyerMooreKernel {
	k := &BoyerMooreKernel{needle: needle}
	for i := range k.badChar {
		k.badChar[i] = -1
	}
	for i, b := range needle {
		k.badChar[b] = i
	}
	k.goodSuffix = buildGoodSuffix(needle)
	return k
}

// buildGoodSuffix computes the good-suffix shift table from the
// reversed-needle prefix function (the classic border-array construction).
func buildGoodSuffix(needle []byte) []int {
	m := len(needle)
	shift := make([]int, m+1)
	borderPos := make([]int, m+1)

	i, j := m, m+1
	borderPos[i] = j

	for i > 0 {
		for j <= m && (i == 0 || needle[i-1] != needle[j-1]) {
			if shift[j] == 0 {
				shift[j] = j - i
			}
			j = borderPos[j]
		}
		i--
		j--
		borderPos[i] = j
	}

	j = borderPos[0]
	for i := 0; i <= m; i++ {
		if shift[i] == 0 {
			shift[i] = j
		}
		if i == j {
			j = borderPos[j]
		}
	}
	return shift
}

func (k *BoyerMooreKernel) shiftFor(mismatchIdx int, badByte byte) int {
	bcShift := mismatchIdx - k.badChar[badByte]
	if bcShift <= 0 {
		bcShift = 1
	}
	gsShift := k.goodSuffix[mismatchIdx+1]
	if bcShift > gsShift {
		return bcShift
	}
	return gsShift
}

func (k *BoyerMooreKernel) FindFirst(haystack []byte, start int) (int, bool) {
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

	i := start
	for i <= n-m {
		j := m - 1
		for j >= 0 && k.needle[j] == haystack[i+j] {
			j--
		}
		if j < 0 {
			return i, true
		}
		i += k.shiftFor(j, haystack[i+j])
	}
	return 0, false
}

func (k *BoyerMooreKernel) FindAll(haystack []byte) []int {
	n, m := len(haystack), len(k.needle)
	if m == 0 {
		return allPositions(n)
	}
	if m > n {
		return nil
	}

	var out []int
	i := 0
	for i <= n-m {
		j := m - 1
		for j >= 0 && k.needle[j] == haystack[i+j] {
			j--
		}
		if j < 0 {
			out = append(out, i)
			i += k.goodSuffix[0]
			continue
		}
		i += k.shiftFor(j, haystack[i+j])
	}
	return out
}
