// Package schema defines the HCL block structures of pipeline files. The
// pipeline package decodes files into these structs and translates them into
// populated registries.
package schema
