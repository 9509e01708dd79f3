//go:build arm64

package kernel

// naiveSIMDAvailable is true on arm64: the word-at-a-time filter in
// NaiveSIMDKernel needs no optional instruction set beyond the baseline
// ISA, so it is always selectable here.
const naiveSIMDAvailable = true
