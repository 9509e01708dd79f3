package kernel

import (
	"bytes"

	"github.com/coregx/ahocorasick"
)

// AhoCorasickKernel searches a set of literals over a haystack. The row
// evaluator reaches for this directly for a multi-literal LIKE pattern (two
// or more Literal tokens).
type AhoCorasickKernel struct {
	literals [][]byte
	auto     *ahocorasick.Automaton
}

// NewAhoCorasick builds a multi-literal kernel over literals. It returns an
// error only if the underlying automaton build fails (e.g. a literal list
// with no entries).
func NewAhoCorasick(literals [][]byte) (*AhoCorasickKernel, error) {
	b := ahocorasick.NewBuilder()
	for _, lit := range literals {
		b.AddPattern(lit)
	}
	auto, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &AhoCorasickKernel{literals: literals, auto: auto}, nil
}

// FindFirstAny returns the offset and byte length of the leftmost literal
// occurrence at or after start, or ok=false if none of the literals occur.
func (k *AhoCorasickKernel) FindFirstAny(haystack []byte, start int) (pos, length int, ok bool) {
	m := k.auto.Find(haystack, start)
	if m == nil {
		return 0, 0, false
	}
	return m.Start, m.End - m.Start, true
}

// ContainsAll reports whether every literal in the set occurs somewhere in
// haystack — the cheap necessary condition the row evaluator checks before
// attempting the full ordered LIKE match. Checked one literal at a time
// rather than with a single automaton walk: when one literal is a prefix of
// another (e.g. "ab" and "abc"), the automaton reports only one match per
// start position it visits and advances past it, so a shared pass can skip
// a longer literal sharing a start with a shorter one already reported.
// Per-literal bytes.Contains has no such tie-break to get wrong.
func (k *AhoCorasickKernel) ContainsAll(haystack []byte) bool {
	for _, lit := range k.literals {
		if !bytes.Contains(haystack, lit) {
			return false
		}
	}
	return true
}
