package kernel

import "bytes"

// StdFindKernel delegates to the standard library's bytes.Index, serving as
// a trusted baseline the other kernels are tested against.
type StdFindKernel struct {
	needle []byte
}

// NewStdFind builds a Std-Find kernel for needle.
func NewStdFind(needle []byte) *StdFindKernel {
	return &StdFindKernel{needle: needle}
}

func (k *StdFindKernel) FindFirst(haystack []byte, start int) (int, bool) {
	n, m := len(haystack), len(k.needle)
	if start < 0 || start > n {
		return 0, false
	}
	if m == 0 {
		return start, true
	}

	p := bytes.Index(haystack[start:], k.needle)
	if p == -1 {
		return 0, false
	}
	return start + p, true
}

func (k *StdFindKernel) FindAll(haystack []byte) []int {
	n, m := len(haystack), len(k.needle)
	if m == 0 {
		return allPositions(n)
	}

	var out []int
	pos := 0
	for pos <= n-m {
		p := bytes.Index(haystack[pos:], k.needle)
		if p == -1 {
			break
		}
		out = append(out, pos+p)
		pos += p + 1
	}
	return out
}
