// Package schedule implements the two executable scheduling strategies that
// registry queries produce: a fixpoint driver that reapplies an unordered
// pass set until the graph stops changing, and a sequence driver that applies
// a fixed, deterministically ordered pass list exactly once.
//
// Both schedulers implement pass.Pass themselves, which is what lets a nested
// registry's resolved schedule stand in for the registry handle inside an
// enclosing schedule.
package schedule
