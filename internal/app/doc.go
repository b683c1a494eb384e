// Package app assembles the application: configuration validation, logger
// construction and the load-build-query lifecycle driven by the CLI.
package app
