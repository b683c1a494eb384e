// Package pass defines the contracts between the registry layer and the
// graph-rewriting engine: the Pass capability, the minimal Graph view that
// schedulers drive, and the process-wide identity sequence used for
// deterministic ordering.
package pass
