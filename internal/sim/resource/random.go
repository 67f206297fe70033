package resource

import (
	"spacestation.ai/internal/protocol"
	"spacestation.ai/internal/sim/rng"
)

// MinSpawnAmount is the lower bound of a randomized amount.
const MinSpawnAmount = 5

// Randomize picks a variant uniformly and an amount in [MinSpawnAmount, maxAmount].
func Randomize(src rng.Source, maxAmount int) (Resource, error) {
	if maxAmount < MinSpawnAmount {
		return Resource{}, protocol.Errorf(protocol.ErrInvalidRange, "max amount %d below %d", maxAmount, MinSpawnAmount)
	}
	kind := Kinds[src.IntN(len(Kinds))]
	return New(kind, rng.Inclusive(src, MinSpawnAmount, maxAmount)), nil
}
