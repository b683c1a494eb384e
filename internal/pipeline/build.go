package pipeline

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/passdb/internal/config"
	"github.com/vk/passdb/internal/ctxlog"
	"github.com/vk/passdb/internal/registry"
	"github.com/vk/passdb/internal/schema"
)

// Built is the result of building a pipeline: the decoded tunables and the
// top-level registries in declaration order.
type Built struct {
	Settings  *config.Settings
	Roots     map[string]registry.Scheduling
	RootOrder []string
}

// Root returns the named top-level registry, or the sole one when name is
// empty.
func (b *Built) Root(name string) (registry.Scheduling, error) {
	if name == "" {
		if len(b.RootOrder) != 1 {
			return nil, fmt.Errorf("pipeline defines %d top-level registries, specify one of %v",
				len(b.RootOrder), b.RootOrder)
		}
		name = b.RootOrder[0]
	}
	root, ok := b.Roots[name]
	if !ok {
		return nil, fmt.Errorf("no top-level registry named %q", name)
	}
	return root, nil
}

// builder carries shared state across the two build phases: registries are
// built first so that proxy targets can reference a registry declared
// anywhere in the pipeline, then proxies are wired.
type builder struct {
	settings *config.Settings
	byName   map[string]registry.Scheduling
	proxies  []pendingProxy
}

type pendingProxy struct {
	parent registry.Scheduling
	block  *schema.ProxyBlock
}

// Build turns a decoded pipeline into live registries.
func Build(ctx context.Context, cfg *schema.PipelineConfig) (*Built, error) {
	logger := ctxlog.FromContext(ctx)

	settings := config.Default()
	if cfg.Settings != nil {
		if cfg.Settings.PositionCutoff != nil {
			settings.PositionCutoff = *cfg.Settings.PositionCutoff
		}
		if cfg.Settings.MaxUseRatio != nil {
			settings.MaxUseRatio = *cfg.Settings.MaxUseRatio
		}
	}

	b := &builder{settings: settings, byName: make(map[string]registry.Scheduling)}
	built := &Built{Settings: settings, Roots: make(map[string]registry.Scheduling)}
	for _, block := range cfg.Registries {
		reg, err := b.buildRegistry(ctx, block)
		if err != nil {
			return nil, err
		}
		built.Roots[block.Name] = reg
		built.RootOrder = append(built.RootOrder, block.Name)
	}

	for _, pending := range b.proxies {
		target, ok := b.byName[pending.block.Target]
		if !ok {
			return nil, fmt.Errorf("proxy %q: no registry named %q", pending.block.Name, pending.block.Target)
		}
		tags, err := evalStrings(pending.block.Tags)
		if err != nil {
			return nil, fmt.Errorf("proxy %q: %w", pending.block.Name, err)
		}
		proxy := registry.NewProxy(target)
		if err := b.register(pending.parent, pending.block.Name, proxy, pending.block.Position, tags); err != nil {
			return nil, fmt.Errorf("proxy %q: %w", pending.block.Name, err)
		}
	}

	logger.Debug("Pipeline built.", "registries", len(b.byName), "roots", built.RootOrder)
	return built, nil
}

// buildRegistry constructs one registry block, registering its passes and
// nested registries, and queues its proxies for the second phase.
func (b *builder) buildRegistry(ctx context.Context, block *schema.RegistryBlock) (registry.Scheduling, error) {
	if _, exists := b.byName[block.Name]; exists {
		return nil, fmt.Errorf("registry %q is defined twice", block.Name)
	}

	var reg registry.Scheduling
	switch block.Kind {
	case "sequence":
		reg = registry.NewSequence(block.Name, b.settings)
	case "equilibrium":
		eq := registry.NewEquilibrium(block.Name, b.settings)
		if block.IgnoreNewNodes != nil {
			eq.SetIgnoreNewNodes(*block.IgnoreNewNodes)
		}
		reg = eq
	case "local_group":
		reg = registry.NewLocalGroup(block.Name, b.settings)
	default:
		return nil, fmt.Errorf("registry %q: unknown kind %q", block.Name, block.Kind)
	}
	b.byName[block.Name] = reg

	for _, p := range block.Passes {
		tags, err := evalStrings(p.Tags)
		if err != nil {
			return nil, fmt.Errorf("pass %q: %w", p.Name, err)
		}
		if p.Kind != "" {
			tags = append(tags, p.Kind)
		}
		var opts []registry.RegisterOption
		if p.NoRegistryTag {
			opts = append(opts, registry.WithoutRegistryTag())
		}
		if p.Final {
			opts = append(opts, registry.AsFinal())
		}
		if err := b.register(reg, p.Name, NewDeclaredPass(p.Kind), p.Position, tags, opts...); err != nil {
			return nil, fmt.Errorf("pass %q: %w", p.Name, err)
		}
	}

	for _, child := range block.Registries {
		childReg, err := b.buildRegistry(ctx, child)
		if err != nil {
			return nil, err
		}
		tags, err := evalStrings(child.Tags)
		if err != nil {
			return nil, fmt.Errorf("registry %q: %w", child.Name, err)
		}
		var opts []registry.RegisterOption
		if child.Final {
			opts = append(opts, registry.AsFinal())
		}
		if err := b.register(reg, child.Name, childReg, child.Position, tags, opts...); err != nil {
			return nil, fmt.Errorf("registry %q: %w", child.Name, err)
		}
	}

	for _, proxy := range block.Proxies {
		b.proxies = append(b.proxies, pendingProxy{parent: reg, block: proxy})
	}

	ctxlog.FromContext(ctx).Debug("Registry built.",
		"name", block.Name, "kind", block.Kind, "passes", len(block.Passes))
	return reg, nil
}

// register dispatches a registration to the parent's kind-specific Register,
// enforcing that positions appear exactly where the scheduling strategy
// needs them.
func (b *builder) register(parent registry.Scheduling, name string, obj any, posExpr hcl.Expression, tags []string, opts ...registry.RegisterOption) error {
	pos, hasPos, err := evalFloat(posExpr)
	if err != nil {
		return err
	}
	switch reg := parent.(type) {
	case *registry.LocalGroupRegistry:
		if !hasPos {
			return fmt.Errorf("position is required inside local_group registry %q", parent.Name())
		}
		return reg.Register(name, obj, pos, tags, opts...)
	case *registry.SequenceRegistry:
		if !hasPos {
			return fmt.Errorf("position is required inside sequence registry %q", parent.Name())
		}
		return reg.Register(name, obj, pos, tags, opts...)
	case *registry.EquilibriumRegistry:
		if hasPos {
			return fmt.Errorf("position is not allowed inside equilibrium registry %q", parent.Name())
		}
		return reg.Register(name, obj, tags, opts...)
	default:
		return fmt.Errorf("registry %q does not accept registrations", parent.Name())
	}
}
