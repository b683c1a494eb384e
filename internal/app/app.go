package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/passdb/internal/ctxlog"
	"github.com/vk/passdb/internal/pipeline"
	"github.com/vk/passdb/internal/registry"
)

// App wires the pipeline loader, the registries it builds, and the query
// front end together behind one Run call.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp returns an App with its own isolated logger.
func NewApp(outW io.Writer, cfg *Config) *App {
	return &App{
		outW:   outW,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, outW),
		config: cfg,
	}
}

// Run loads the pipeline, builds its registries and performs the requested
// inspection: a summary dump, a query, or both.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run started.", "pipeline", a.config.PipelinePath)

	cfgFile, err := pipeline.Load(ctx, a.config.PipelinePath)
	if err != nil {
		return fmt.Errorf("loading pipeline: %w", err)
	}
	built, err := pipeline.Build(ctx, cfgFile)
	if err != nil {
		return fmt.Errorf("building pipeline: %w", err)
	}
	root, err := built.Root(a.config.RegistryName)
	if err != nil {
		return err
	}

	if a.config.ShowSummary {
		if s, ok := root.(interface{ PrintSummary(io.Writer) }); ok {
			s.PrintSummary(a.outW)
		}
	}

	if len(a.config.Selectors) > 0 {
		q, err := registry.ParseTags(a.config.Selectors...)
		if err != nil {
			return err
		}
		if a.config.PositionCutoff != nil {
			q = q.WithPositionCutoff(*a.config.PositionCutoff)
		}
		sched, err := root.Query(ctx, q)
		if err != nil {
			return fmt.Errorf("querying registry %q: %w", root.Name(), err)
		}
		printSchedule(a.outW, sched, "")
	}

	a.logger.Debug("App.Run finished.")
	return nil
}
