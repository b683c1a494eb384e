package pass

import "sync/atomic"

// idSeq is the process-wide identity sequence. Every registered object draws
// its handle from here, so ordering by handle is stable across registries.
// The sequence resets only at process start.
var idSeq atomic.Uint64

// NextID returns the next handle from the identity sequence. Handles are
// monotonically increasing and never reused within a process.
func NextID() uint64 {
	return idSeq.Add(1)
}
