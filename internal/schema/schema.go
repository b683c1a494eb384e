package schema

import "github.com/hashicorp/hcl/v2"

// SettingsBlock carries the scheduler tunables from a pipeline file.
type SettingsBlock struct {
	PositionCutoff *float64 `hcl:"position_cutoff,optional"`
	MaxUseRatio    *float64 `hcl:"max_use_ratio,optional"`
}

// PassBlock declares a single rewrite pass inside a registry block. The
// actual rewrite implementation is supplied by the engine at runtime; the
// pipeline file only carries its registration metadata.
type PassBlock struct {
	Name string `hcl:"name,label"`

	// Kind groups passes by rewrite family and becomes an extra tag.
	Kind string `hcl:"kind,optional"`

	// Position is required inside sequence and local_group registries and
	// rejected inside equilibrium registries.
	Position hcl.Expression `hcl:"position,optional"`

	Tags hcl.Expression `hcl:"tags,optional"`

	// Final marks the pass to run once after the fixpoint is reached.
	// Only meaningful inside equilibrium registries.
	Final bool `hcl:"final,optional"`

	// NoRegistryTag suppresses the implicit containing-registry tag.
	NoRegistryTag bool `hcl:"no_registry_tag,optional"`
}

// ProxyBlock declares an alias over another registry defined elsewhere in
// the pipeline, referenced by its name.
type ProxyBlock struct {
	Name     string         `hcl:"name,label"`
	Target   string         `hcl:"target"`
	Position hcl.Expression `hcl:"position,optional"`
	Tags     hcl.Expression `hcl:"tags,optional"`
}

// RegistryBlock declares a registry. The kind label selects the scheduling
// strategy: "sequence", "equilibrium" or "local_group". Registry blocks nest.
type RegistryBlock struct {
	Kind string `hcl:"kind,label"`
	Name string `hcl:"name,label"`

	// Position and Tags apply when this registry is nested inside a
	// sequence registry, mirroring the fields of PassBlock.
	Position hcl.Expression `hcl:"position,optional"`
	Tags     hcl.Expression `hcl:"tags,optional"`
	Final    bool           `hcl:"final,optional"`

	// IgnoreNewNodes applies to equilibrium registries only.
	IgnoreNewNodes *bool `hcl:"ignore_new_nodes,optional"`

	Passes     []*PassBlock     `hcl:"pass,block"`
	Registries []*RegistryBlock `hcl:"registry,block"`
	Proxies    []*ProxyBlock    `hcl:"proxy,block"`
}

// PipelineConfig is the top-level structure of a pipeline file.
type PipelineConfig struct {
	Settings   *SettingsBlock   `hcl:"settings,block"`
	Registries []*RegistryBlock `hcl:"registry,block"`
}
