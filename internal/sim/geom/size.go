// Package geom is the bounded 2D play area: world sizes, coordinates,
// quadrants and integer distances.
package geom

import (
	"spacestation.ai/internal/protocol"
	"spacestation.ai/internal/sim/rng"
)

// WorldSize is the (Min, Max) bound applied to both axes.
type WorldSize struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// NewWorldSize returns the square [-size, size] centred on the origin.
func NewWorldSize(size int) WorldSize {
	if size < 0 {
		size = -size
	}
	return WorldSize{Min: -size, Max: size}
}

func (s WorldSize) Values() (int, int) { return s.Min, s.Max }

func (s WorldSize) Contains(v int) bool { return v >= s.Min && v <= s.Max }

// RandomizeWorldSize draws two values from [lo, hi) and orders them.
// There is no rejection loop, so it always terminates.
func RandomizeWorldSize(src rng.Source, lo, hi int) (WorldSize, error) {
	if lo > hi {
		return WorldSize{}, protocol.Errorf(protocol.ErrInvalidRange, "world size range [%d,%d)", lo, hi)
	}
	if lo == hi {
		return WorldSize{Min: lo, Max: hi}, nil
	}
	a := rng.Range(src, lo, hi)
	b := rng.Range(src, lo, hi)
	if a > b {
		a, b = b, a
	}
	return WorldSize{Min: a, Max: b}, nil
}
