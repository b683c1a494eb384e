// Package config holds the tunables model consumed by the registry layer.
// Values are decoded from a pipeline file's settings block (see the pipeline
// package) or taken from Default when no block is present.
package config
