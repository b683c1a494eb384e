package config

import "math"

// Settings holds the two scheduler tunables read at query time.
type Settings struct {
	// PositionCutoff is the default cutoff for sequence registries: only
	// passes with a recorded position strictly less than the cutoff are
	// scheduled. A Query may override it per call.
	PositionCutoff float64

	// MaxUseRatio bounds the fixpoint scheduler: a run stops once total
	// applications exceed MaxUseRatio times the graph size sampled at the
	// start of the run. It is the sole termination guarantee against passes
	// that keep re-triggering each other.
	MaxUseRatio float64
}

// Default returns the built-in tunable values: no position cutoff and a use
// ratio of 5.
func Default() *Settings {
	return &Settings{
		PositionCutoff: math.Inf(1),
		MaxUseRatio:    5,
	}
}
