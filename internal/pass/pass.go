package pass

import "context"

// Pass is a unit of graph rewriting. The registry layer treats a Pass as an
// opaque handle: it assigns the name exactly once at registration and relies
// on the handle's identity for set membership, never on its behavior.
type Pass interface {
	// Name returns the registered name, or "" before registration.
	Name() string

	// SetName assigns the registered name. Called by the registry that first
	// registers the pass; callers should not rename a pass afterwards.
	SetName(name string)

	// Apply rewrites the graph and returns the number of rewrites performed.
	Apply(ctx context.Context, g Graph) (int, error)
}

// Graph is the narrow view of a program graph that schedulers need. The
// actual node and edge representation lives in the rewriting engine and is
// deliberately not modeled here.
type Graph interface {
	// NodeCount returns the current number of nodes. The fixpoint scheduler
	// samples it once at the start of a run to bound total applications.
	NodeCount() int
}
