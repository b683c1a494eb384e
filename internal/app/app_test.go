package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPipeline = `
registry "sequence" "optdb" {
  registry "equilibrium" "stabilize" {
    position = 1
    tags     = ["fast_run"]

    pass "local_fold" {
      tags = ["fast_run"]
    }

    pass "cleanup" {
      tags  = ["fast_run"]
      final = true
    }
  }

  pass "merge" {
    position = 49
    tags     = ["fast_run"]
  }
}
`

func writeTestPipeline(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.hcl")
	require.NoError(t, os.WriteFile(path, []byte(testPipeline), 0o644))
	return path
}

func newTestApp(t *testing.T, cfg Config) (*App, *bytes.Buffer) {
	t.Helper()
	cfg.LogFormat = "text"
	cfg.LogLevel = "error"
	validated, err := NewConfig(cfg)
	require.NoError(t, err)
	var out bytes.Buffer
	return NewApp(&out, validated), &out
}

func TestRunPrintsQuerySchedule(t *testing.T) {
	app, out := newTestApp(t, Config{
		PipelinePath: writeTestPipeline(t),
		Selectors:    []string{"+fast_run"},
	})

	require.NoError(t, app.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, `sequence ""`)
	assert.Contains(t, got, `fixpoint "stabilize"`)
	assert.Contains(t, got, "local_fold")
	assert.Contains(t, got, "final:")
	assert.Contains(t, got, "cleanup")
	assert.Contains(t, got, "merge")
}

func TestRunPositionCutoffTrimsSchedule(t *testing.T) {
	cutoff := 10.0
	app, out := newTestApp(t, Config{
		PipelinePath:   writeTestPipeline(t),
		Selectors:      []string{"+fast_run"},
		PositionCutoff: &cutoff,
	})

	require.NoError(t, app.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, `fixpoint "stabilize"`)
	assert.NotContains(t, got, "merge", "passes at or past the cutoff are trimmed")
}

func TestRunPrintsSummary(t *testing.T) {
	app, out := newTestApp(t, Config{
		PipelinePath: writeTestPipeline(t),
		ShowSummary:  true,
	})

	require.NoError(t, app.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, `SequenceRegistry "optdb"`)
	assert.Contains(t, got, "position 1: stabilize")
	assert.Contains(t, got, "position 49: merge")
}

func TestRunErrors(t *testing.T) {
	t.Run("missing pipeline", func(t *testing.T) {
		app, _ := newTestApp(t, Config{
			PipelinePath: filepath.Join(t.TempDir(), "nope.hcl"),
		})
		err := app.Run(context.Background())
		assert.ErrorContains(t, err, "loading pipeline")
	})

	t.Run("unknown registry name", func(t *testing.T) {
		app, _ := newTestApp(t, Config{
			PipelinePath: writeTestPipeline(t),
			RegistryName: "missing",
		})
		err := app.Run(context.Background())
		assert.ErrorContains(t, err, "no top-level registry")
	})

	t.Run("bad selector", func(t *testing.T) {
		app, _ := newTestApp(t, Config{
			PipelinePath: writeTestPipeline(t),
			Selectors:    []string{"fast_run"},
		})
		err := app.Run(context.Background())
		assert.Error(t, err)
	})
}

func TestNewConfigRequiresPipelinePath(t *testing.T) {
	_, err := NewConfig(Config{})
	assert.ErrorContains(t, err, "PipelinePath")
}
