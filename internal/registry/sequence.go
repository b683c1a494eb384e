package registry

import (
	"context"
	"sort"

	"github.com/vk/passdb/internal/config"
	"github.com/vk/passdb/internal/pass"
	"github.com/vk/passdb/internal/schedule"
)

// SequenceRegistry holds passes that must run in a fixed order. Every
// registration records a floating-point position; whatever subset a query
// selects runs in ascending position order, position ties broken by
// ascending name so the schedule is reproducible regardless of registration
// order.
type SequenceRegistry struct {
	*Registry

	settings  *config.Settings
	positions map[string]float64
	onFailure schedule.FailureFunc
}

// NewSequence creates a sequence registry reading its default position
// cutoff from settings (Default when nil).
func NewSequence(name string, settings *config.Settings) *SequenceRegistry {
	if settings == nil {
		settings = config.Default()
	}
	return &SequenceRegistry{
		Registry:  New(name),
		settings:  settings,
		positions: make(map[string]float64),
		onFailure: schedule.WarnOnFailure,
	}
}

// Register stores obj like the base registry and records its position.
// Positions need not be unique; ties are broken by name at query time.
func (s *SequenceRegistry) Register(name string, obj any, position float64, tags []string, opts ...RegisterOption) error {
	if err := s.Registry.Register(name, obj, tags, opts...); err != nil {
		return err
	}
	s.positions[name] = position
	return nil
}

// Position returns the recorded position for a registration name.
func (s *SequenceRegistry) Position(name string) (float64, bool) {
	p, ok := s.positions[name]
	return p, ok
}

// resolveOrdered resolves selectors, applies the effective position cutoff
// and produces the final deterministic order. The name sort runs first so
// that the subsequent stable position sort keeps name order among equal
// positions.
func (s *SequenceRegistry) resolveOrdered(ctx context.Context, selectors []any) ([]pass.Pass, *Query, error) {
	q, err := parseSelectors(selectors)
	if err != nil {
		return nil, nil, err
	}
	resolved, err := s.Resolve(ctx, q)
	if err != nil {
		return nil, nil, err
	}

	cutoff := s.settings.PositionCutoff
	if c, ok := q.PositionCutoff(); ok {
		cutoff = c
	}
	kept := make([]pass.Pass, 0, len(resolved))
	for _, p := range resolved {
		if s.positions[p.Name()] < cutoff {
			kept = append(kept, p)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Name() < kept[j].Name() })
	sort.SliceStable(kept, func(i, j int) bool {
		return s.positions[kept[i].Name()] < s.positions[kept[j].Name()]
	})
	return kept, q, nil
}

// Query resolves selectors and wraps the result into an ordered scheduler.
// A named *Query lends its name to the scheduler for attribution.
func (s *SequenceRegistry) Query(ctx context.Context, selectors ...any) (pass.Pass, error) {
	kept, q, err := s.resolveOrdered(ctx, selectors)
	if err != nil {
		return nil, err
	}
	seq := &schedule.Sequence{Passes: kept, OnFailure: s.onFailure}
	if q.Name() != "" {
		seq.SetName(q.Name())
	}
	return seq, nil
}

// LocalGroupRegistry is a SequenceRegistry whose query produces a scheduler
// for node-local passes: mechanically identical ordering, but the resulting
// LocalGroup runs against a single graph node and lets pass failures
// propagate instead of reporting them through a callback.
type LocalGroupRegistry struct {
	*SequenceRegistry
}

// NewLocalGroup creates a local-group registry.
func NewLocalGroup(name string, settings *config.Settings) *LocalGroupRegistry {
	s := NewSequence(name, settings)
	s.onFailure = nil
	return &LocalGroupRegistry{SequenceRegistry: s}
}

// Query resolves selectors and wraps the result into a LocalGroup scheduler.
func (l *LocalGroupRegistry) Query(ctx context.Context, selectors ...any) (pass.Pass, error) {
	kept, q, err := l.resolveOrdered(ctx, selectors)
	if err != nil {
		return nil, err
	}
	lg := schedule.NewLocalGroup(kept)
	if q.Name() != "" {
		lg.SetName(q.Name())
	}
	return lg, nil
}
