// Package registry stores named, tag-annotated graph-rewriting passes and
// resolves declarative tag queries over them into deterministic schedules.
//
// The base Registry keeps passes in insertion-ordered tag buckets and
// resolves Query values with union/intersection/difference semantics,
// recursing into nested registries. EquilibriumRegistry wraps results into a
// fixpoint scheduler, SequenceRegistry and LocalGroupRegistry into ordered
// schedulers, and ProxyRegistry aliases an existing registry so one pass set
// can be referenced from several composition points without violating name
// uniqueness.
//
// Registries are populated once during compiler setup and queried afterwards;
// no locking is performed and concurrent mutation is not supported.
package registry
