//go:build amd64

package kernel

import "golang.org/x/sys/cpu"

// shortLUTAvailable gates ShortLUT on SSSE3, the instruction set its nibble
// lookup table is modeled on (PSHUFB). Detected once at process start.
var shortLUTAvailable = cpu.X86.HasSSSE3
