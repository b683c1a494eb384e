package registry

import (
	"context"

	"github.com/vk/passdb/internal/config"
	"github.com/vk/passdb/internal/pass"
	"github.com/vk/passdb/internal/schedule"
)

// EquilibriumRegistry holds passes meant to run in arbitrary order until the
// graph stops changing. Each registration records whether the pass is final:
// final passes run exactly once after the ordinary group reaches a fixpoint.
type EquilibriumRegistry struct {
	*Registry

	settings       *config.Settings
	ignoreNewNodes bool
	final          map[string]bool
}

// NewEquilibrium creates an equilibrium registry reading its use-ratio bound
// from settings (Default when nil). New graph nodes introduced mid-iteration
// are not revisited unless SetIgnoreNewNodes(false) is called.
func NewEquilibrium(name string, settings *config.Settings) *EquilibriumRegistry {
	if settings == nil {
		settings = config.Default()
	}
	return &EquilibriumRegistry{
		Registry:       New(name),
		settings:       settings,
		ignoreNewNodes: true,
		final:          make(map[string]bool),
	}
}

// SetIgnoreNewNodes controls whether node-local passes revisit graph nodes
// introduced during the same iteration. Fewer revisits can mean more outer
// iterations, so this is a policy knob, not a correctness one.
func (e *EquilibriumRegistry) SetIgnoreNewNodes(v bool) { e.ignoreNewNodes = v }

// Register stores obj like the base registry and records the AsFinal option
// under the registration name.
func (e *EquilibriumRegistry) Register(name string, obj any, tags []string, opts ...RegisterOption) error {
	cfg := defaultRegisterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := e.Registry.Register(name, obj, tags, opts...); err != nil {
		return err
	}
	e.final[name] = cfg.final
	return nil
}

// Query resolves selectors and wraps the result into a fixpoint scheduler,
// partitioning it into the ordinary and final groups while preserving
// resolution order within each.
func (e *EquilibriumRegistry) Query(ctx context.Context, selectors ...any) (pass.Pass, error) {
	q, err := parseSelectors(selectors)
	if err != nil {
		return nil, err
	}
	resolved, err := e.Resolve(ctx, q)
	if err != nil {
		return nil, err
	}

	var ordinary, final []pass.Pass
	for _, p := range resolved {
		if e.final[p.Name()] {
			final = append(final, p)
		} else {
			ordinary = append(ordinary, p)
		}
	}

	return &schedule.Fixpoint{
		Ordinary:       ordinary,
		Final:          final,
		MaxUseRatio:    e.settings.MaxUseRatio,
		IgnoreNewNodes: e.ignoreNewNodes,
		OnFailure:      schedule.WarnOnFailure,
	}, nil
}
