package schedule

import (
	"context"
	"fmt"

	"github.com/vk/passdb/internal/ctxlog"
	"github.com/vk/passdb/internal/pass"
)

// Fixpoint applies its ordinary passes repeatedly, in registration order but
// without ordering guarantees between iterations, until one full sweep makes
// zero rewrites or the use-ratio bound trips. Final passes then run exactly
// once.
type Fixpoint struct {
	name string

	// Ordinary is the iterate-until-no-change group, in resolution order.
	Ordinary []pass.Pass

	// Final runs exactly once after the ordinary group reaches a fixpoint or
	// the ratio limit triggers. Nil when the query selected no final passes.
	Final []pass.Pass

	// MaxUseRatio bounds total applications to MaxUseRatio * NodeCount at
	// the start of the run.
	MaxUseRatio float64

	// IgnoreNewNodes tells node-local passes not to revisit nodes introduced
	// during the same iteration. The flag is carried to the rewriting engine
	// untouched.
	IgnoreNewNodes bool

	// OnFailure, when non-nil, is called for a failing pass and the run
	// continues. When nil the first failure aborts the run.
	OnFailure FailureFunc
}

// Name returns the scheduler's assigned name.
func (f *Fixpoint) Name() string { return f.name }

// SetName assigns the scheduler's name.
func (f *Fixpoint) SetName(name string) { f.name = name }

// Apply runs the fixpoint loop against g and returns the total number of
// rewrites performed.
func (f *Fixpoint) Apply(ctx context.Context, g pass.Graph) (int, error) {
	logger := ctxlog.FromContext(ctx)
	limit := f.MaxUseRatio * float64(g.NodeCount())
	total := 0

	for {
		changed := 0
		for _, p := range f.Ordinary {
			n, err := p.Apply(ctx, g)
			if err != nil {
				if f.OnFailure == nil {
					return total, fmt.Errorf("fixpoint pass %q: %w", p.Name(), err)
				}
				f.OnFailure(ctx, p, err)
				continue
			}
			changed += n
		}
		total += changed
		if changed == 0 {
			break
		}
		if float64(total) > limit {
			logger.Warn("Equilibrium not reached, stopping at use-ratio limit.",
				"scheduler", f.name, "applied", total, "limit", limit)
			break
		}
	}

	for _, p := range f.Final {
		n, err := p.Apply(ctx, g)
		if err != nil {
			if f.OnFailure == nil {
				return total, fmt.Errorf("final pass %q: %w", p.Name(), err)
			}
			f.OnFailure(ctx, p, err)
			continue
		}
		total += n
	}

	return total, nil
}
