// Package kernel provides the family of interchangeable substring-search
// kernels used by a compiled LIKE plan.
//
// Every kernel implements the same find-first / find-all contract over a
// needle and a haystack: find-first returns the smallest offset at or after
// start such that the needle occurs there; find-all returns every such
// offset, ascending, including overlapping occurrences. An empty needle
// matches at every position (find-first returns start, find-all returns
// every index 0..len(haystack) inclusive); a needle longer than the
// haystack, or a start past the end of the haystack, never matches.
//
// Kernels hold no mutable state: any per-needle precomputation (KMP's prefix
// table, Boyer-Moore's shift tables, Short-LUT's nibble masks) is built once
// when the kernel is constructed for a given needle and reused across every
// row or corpus-wide search that needle participates in.
package kernel

// Kernel is the uniform substring-search contract every algorithm variant
// implements. A Kernel is built for one needle and is safe for concurrent
// use — it holds no mutable state after construction.
type Kernel interface {
	// FindFirst returns the smallest offset p >= start such that haystack[p:p+len(needle)]
	// equals needle. ok is false if no such offset exists.
	FindFirst(haystack []byte, start int) (p int, ok bool)

	// FindAll returns every offset where needle occurs in haystack, ascending,
	// including overlapping occurrences.
	FindAll(haystack []byte) []int
}

// Kind names one of the search-kernel variants a compiled plan may select.
type Kind int

const (
	// Naive compares byte-by-byte at every candidate position.
	Naive Kind = iota
	// NaiveSIMD filters candidate positions by a pair of the needle's two
	// rarest bytes, scanning a machine word at a time, then verifies scalar.
	NaiveSIMD
	// ShortLUT is a nibble-lookup match for needles of at most 8 bytes,
	// evaluated one haystack byte at a time. Feature-gated; absent (not
	// degraded) when unsupported.
	ShortLUT
	// KMP is the classic prefix-function linear-time kernel.
	KMP
	// BoyerMoore scans each window right-to-left and skips by the larger
	// of the bad-character and good-suffix shifts.
	BoyerMoore
	// StdFind delegates to the standard library's bytes.Index as a
	// correctness baseline.
	StdFind
	// AhoCorasick covers every literal of a multi-literal pattern: its
	// FindFirstAny walks one automaton over all of them, while its
	// ContainsAll checks each literal separately. It is not selected as a
	// plan's single primary kernel; the row evaluator calls ContainsAll
	// directly as a pre-check when a plan has two or more Literal tokens.
	AhoCorasick
)

func (k Kind) String() string {
	switch k {
	case Naive:
		return "naive"
	case NaiveSIMD:
		return "naive-simd"
	case ShortLUT:
		return "short-lut"
	case KMP:
		return "kmp"
	case BoyerMoore:
		return "boyer-moore"
	case StdFind:
		return "std-find"
	case AhoCorasick:
		return "aho-corasick"
	default:
		return "unknown"
	}
}

// Available reports whether a kernel kind can be selected by the planner in
// this build. ShortLUT requires a CPU feature (SSSE3 on amd64, NEON/ASIMD on
// arm64) detected once at process start. NaiveSIMD checks no CPU feature: it
// is available on every amd64 and arm64 build and absent on other
// architectures. Every other kind is always available.
func Available(k Kind) bool {
	switch k {
	case NaiveSIMD:
		return naiveSIMDAvailable
	case ShortLUT:
		return shortLUTAvailable
	default:
		return true
	}
}

// New builds the kernel named by kind for the given needle. It panics if
// kind is NaiveSIMD or ShortLUT and Available(kind) is false — the pattern
// compiler must check Available before selecting those kinds, per the
// "absent, not degraded" contract on unsupported builds.
func New(kind Kind, needle []byte) Kernel {
	switch kind {
	case Naive:
		return NewNaive(needle)
	case NaiveSIMD:
		if !naiveSIMDAvailable {
			panic("kernel: NaiveSIMD unavailable on this build")
		}
		return newNaiveSIMD(needle)
	case ShortLUT:
		if !shortLUTAvailable {
			panic("kernel: ShortLUT unavailable on this build")
		}
		return newShortLUT(needle)
	case KMP:
		return NewKMP(needle)
	case BoyerMoore:
		return NewBoyerMoore(needle)
	case StdFind:
		return NewStdFind(needle)
	default:
		panic("kernel: no single-needle constructor for " + kind.String())
	}
}
