package app

import "errors"

// Config holds everything an App instance needs to run.
type Config struct {
	// PipelinePath points at a .hcl pipeline file or a directory of them.
	PipelinePath string

	// RegistryName selects the top-level registry to operate on. May stay
	// empty when the pipeline defines exactly one.
	RegistryName string

	// Selectors are prefixed query tags ('+', '&', '-'). Empty means no
	// query is run.
	Selectors []string

	// PositionCutoff, when set, overrides the configured cutoff for this
	// query.
	PositionCutoff *float64

	// ShowSummary prints the registry dump before any query output.
	ShowSummary bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PipelinePath == "" {
		return nil, errors.New("PipelinePath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
