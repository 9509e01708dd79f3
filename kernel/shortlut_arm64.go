//go:build arm64

package kernel

import "golang.org/x/sys/cpu"

// shortLUTAvailable gates ShortLUT on ASIMD (NEON), the instruction set its
// nibble lookup table is modeled on (TBL). Detected once at process start.
var shortLUTAvailable = cpu.ARM64.HasASIMD
