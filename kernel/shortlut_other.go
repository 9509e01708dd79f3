//go:build !amd64 && !arm64

package kernel

// shortLUTAvailable is false on architectures with no verified vector
// nibble-match instruction set; the planner falls back to KMP or BoyerMoore.
const shortLUTAvailable = false
