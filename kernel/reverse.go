package kernel

// FindLast returns the offset of the rightmost occurrence of needle in
// haystack using k, implemented as a naive reverse scan on FindAll's
// ascending results — spec §9 allows this rather than requiring a distinct
// backward-scanning kernel. The row evaluator no longer needs this for its
// own end-anchored back-off rule (a rigid block's end-anchored position is
// computed arithmetically, not searched for), but it stays as a standalone
// kernel-package capability for callers that do want the rightmost
// occurrence of a single needle.
func FindLast(k Kernel, haystack []byte) (int, bool) {
	all := k.FindAll(haystack)
	if len(all) == 0 {
		return 0, false
	}
	return all[len(all)-1], true
}
