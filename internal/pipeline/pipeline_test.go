package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/passdb/internal/pass"
	"github.com/vk/passdb/internal/schedule"
)

func passNames(passes []pass.Pass) []string {
	names := make([]string, len(passes))
	for i, p := range passes {
		names[i] = p.Name()
	}
	return names
}

const samplePipeline = `
settings {
  position_cutoff = 100
  max_use_ratio   = 8
}

registry "sequence" "optdb" {
  registry "equilibrium" "stabilize" {
    position = 1
    tags     = ["fast_run"]

    pass "local_fold" {
      kind = "local"
      tags = ["fast_run"]
    }

    pass "cleanup" {
      tags  = ["fast_run"]
      final = true
    }
  }

  proxy "stabilize_again" {
    target   = "stabilize"
    position = 2
    tags     = ["fast_run"]
  }

  pass "merge" {
    position = 49
    tags     = ["fast_run"]
  }
}
`

func writePipeline(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func loadAndBuild(t *testing.T, src string) (*Built, error) {
	t.Helper()
	ctx := context.Background()
	cfg, err := Load(ctx, writePipeline(t, src))
	require.NoError(t, err)
	return Build(ctx, cfg)
}

func TestLoadAndBuildPipeline(t *testing.T) {
	ctx := context.Background()
	built, err := loadAndBuild(t, samplePipeline)
	require.NoError(t, err)

	assert.Equal(t, 100.0, built.Settings.PositionCutoff)
	assert.Equal(t, 8.0, built.Settings.MaxUseRatio)
	assert.Equal(t, []string{"optdb"}, built.RootOrder)

	root, err := built.Root("")
	require.NoError(t, err)
	assert.Equal(t, "optdb", root.Name())

	sched, err := root.Query(ctx, "+fast_run")
	require.NoError(t, err)
	seq, ok := sched.(*schedule.Sequence)
	require.True(t, ok)
	require.Len(t, seq.Passes, 3)

	fp, ok := seq.Passes[0].(*schedule.Fixpoint)
	require.True(t, ok, "a nested equilibrium registry expands to its scheduler")
	assert.Equal(t, "stabilize", fp.Name())
	assert.Equal(t, 8.0, fp.MaxUseRatio)
	require.Len(t, fp.Ordinary, 1)
	assert.Equal(t, "local_fold", fp.Ordinary[0].Name())
	require.Len(t, fp.Final, 1)
	assert.Equal(t, "cleanup", fp.Final[0].Name())

	again, ok := seq.Passes[1].(*schedule.Fixpoint)
	require.True(t, ok, "the proxy expands to the target's scheduler")
	assert.Equal(t, "stabilize_again", again.Name())
	assert.Equal(t, []string{"local_fold"}, passNames(again.Ordinary))

	merge, ok := seq.Passes[2].(*DeclaredPass)
	require.True(t, ok)
	assert.Equal(t, "merge", merge.Name())
}

func TestLoadMergesDirectory(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_settings.hcl"),
		[]byte("settings {\n  max_use_ratio = 3\n}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_registry.hcl"),
		[]byte("registry \"equilibrium\" \"stabilize\" {\n  pass \"fold\" {\n    tags = [\"fast_run\"]\n  }\n}\n"), 0o644))

	cfg, err := Load(ctx, dir)
	require.NoError(t, err)
	require.NotNil(t, cfg.Settings)
	require.NotNil(t, cfg.Settings.MaxUseRatio)
	assert.Equal(t, 3.0, *cfg.Settings.MaxUseRatio)
	require.Len(t, cfg.Registries, 1)
	assert.Equal(t, "stabilize", cfg.Registries[0].Name)
}

func TestLoadRejectsMissingFiles(t *testing.T) {
	ctx := context.Background()
	_, err := Load(ctx, filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)

	_, err = Load(ctx, t.TempDir())
	assert.ErrorContains(t, err, "no .hcl pipeline files")
}

func TestBuildErrors(t *testing.T) {
	t.Run("unknown registry kind", func(t *testing.T) {
		_, err := loadAndBuild(t, `
registry "ring" "optdb" {
}
`)
		assert.ErrorContains(t, err, "unknown kind")
	})

	t.Run("missing position in sequence", func(t *testing.T) {
		_, err := loadAndBuild(t, `
registry "sequence" "optdb" {
  pass "merge" {
    tags = ["fast_run"]
  }
}
`)
		assert.ErrorContains(t, err, "position is required")
	})

	t.Run("position rejected in equilibrium", func(t *testing.T) {
		_, err := loadAndBuild(t, `
registry "equilibrium" "stabilize" {
  pass "fold" {
    position = 1
  }
}
`)
		assert.ErrorContains(t, err, "position is not allowed")
	})

	t.Run("duplicate registry name", func(t *testing.T) {
		_, err := loadAndBuild(t, `
registry "equilibrium" "stabilize" {
}

registry "equilibrium" "stabilize" {
}
`)
		assert.ErrorContains(t, err, "defined twice")
	})

	t.Run("unknown proxy target", func(t *testing.T) {
		_, err := loadAndBuild(t, `
registry "sequence" "optdb" {
  proxy "alias" {
    target   = "nowhere"
    position = 1
  }
}
`)
		assert.ErrorContains(t, err, `no registry named "nowhere"`)
	})
}

func TestBuiltRootSelection(t *testing.T) {
	built, err := loadAndBuild(t, `
registry "equilibrium" "stabilize" {
}

registry "sequence" "optdb" {
}
`)
	require.NoError(t, err)

	_, err = built.Root("")
	assert.ErrorContains(t, err, "specify one", "two roots need an explicit name")

	root, err := built.Root("optdb")
	require.NoError(t, err)
	assert.Equal(t, "optdb", root.Name())

	_, err = built.Root("missing")
	assert.ErrorContains(t, err, "no top-level registry")
}
