//go:build !amd64 && !arm64

package kernel

// naiveSIMDAvailable is false on architectures without a verified
// word-at-a-time filter path, so Available(NaiveSIMD) reports false here.
const naiveSIMDAvailable = false
