package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/passdb/internal/ctxlog"
	"github.com/vk/passdb/internal/schema"
)

// Load reads pipeline configuration from path, which may be a single .hcl
// file or a directory searched recursively. Files are merged: registry
// blocks accumulate and the first settings block wins.
func Load(ctx context.Context, path string) (*schema.PipelineConfig, error) {
	logger := ctxlog.FromContext(ctx)

	paths, err := findPipelineFiles(path)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .hcl pipeline files found at %q", path)
	}
	logger.Debug("Found pipeline files to load.", "files", paths)

	parser := hclparse.NewParser()
	merged := &schema.PipelineConfig{}
	for _, filePath := range paths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parsing %s: %w", filePath, diags)
		}
		var cfg schema.PipelineConfig
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &cfg); diags.HasErrors() {
			return nil, fmt.Errorf("decoding %s: %w", filePath, diags)
		}
		if merged.Settings == nil {
			merged.Settings = cfg.Settings
		}
		merged.Registries = append(merged.Registries, cfg.Registries...)
		logger.Debug("Loaded pipeline file.", "file", filePath, "registries", len(cfg.Registries))
	}
	return merged, nil
}

// findPipelineFiles resolves path into a sorted list of .hcl files.
func findPipelineFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var paths []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".hcl") {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
