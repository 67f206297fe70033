// Package rng is the injectable random source used by every randomizing
// constructor in the simulation.
package rng

import "math/rand/v2"

// Source is satisfied by *rand.Rand.
type Source interface {
	IntN(n int) int
}

// New returns a deterministic source.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandom returns an unseeded source.
func NewRandom() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Range samples [lo, hi). A degenerate range returns lo.
func Range(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo)
}

// Inclusive samples [lo, hi]. Callers check lo <= hi.
func Inclusive(src Source, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}
