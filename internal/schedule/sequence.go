package schedule

import (
	"context"
	"fmt"

	"github.com/vk/passdb/internal/pass"
)

// Sequence applies its passes exactly once, in the fixed order produced by
// the registry query (ascending position, ties broken by ascending name).
type Sequence struct {
	name string

	// Passes is the ordered pass list. The order is part of the contract:
	// every invocation applies the same passes in the same order.
	Passes []pass.Pass

	// OnFailure, when non-nil, is called for a failing pass and the run
	// continues with the next pass. When nil the first failure aborts.
	OnFailure FailureFunc
}

// Name returns the scheduler's assigned name.
func (s *Sequence) Name() string { return s.name }

// SetName assigns the scheduler's name.
func (s *Sequence) SetName(name string) { s.name = name }

// Apply runs every pass once in order and returns the total number of
// rewrites performed.
func (s *Sequence) Apply(ctx context.Context, g pass.Graph) (int, error) {
	total := 0
	for _, p := range s.Passes {
		n, err := p.Apply(ctx, g)
		if err != nil {
			if s.OnFailure == nil {
				return total, fmt.Errorf("sequence pass %q: %w", p.Name(), err)
			}
			s.OnFailure(ctx, p, err)
			continue
		}
		total += n
	}
	return total, nil
}

// LocalGroup is a Sequence whose passes rewrite a single graph node rather
// than the whole graph: the caller hands Apply a graph view scoped to one
// node. Its failure callback is always nil so that errors propagate to the
// enclosing scheduler instead of being swallowed per node.
type LocalGroup struct {
	Sequence
}

// NewLocalGroup returns a LocalGroup over the given ordered passes.
func NewLocalGroup(passes []pass.Pass) *LocalGroup {
	return &LocalGroup{Sequence: Sequence{Passes: passes}}
}
