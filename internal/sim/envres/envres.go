// Package envres holds the resource pickups the environment spawns.
package envres

import (
	"fmt"
	"log"
	"math"

	"spacestation.ai/internal/sim/geom"
	"spacestation.ai/internal/sim/resource"
	"spacestation.ai/internal/sim/rng"
	"spacestation.ai/internal/sim/transfer"
)

// EnvResource is a pickup at a fixed location. Only its kind changes after
// spawn, and only through a transfer.
type EnvResource struct {
	kind        resource.Resource
	coordinates geom.Coordinates
	id          int32
}

func New(kind resource.Resource, at geom.Coordinates, id int32) EnvResource {
	return EnvResource{kind: kind, coordinates: at, id: id}
}

// Randomize spawns one pickup with a random kind inside size.
func Randomize(src rng.Source, maxAmount int, id int32, size geom.WorldSize) (EnvResource, error) {
	kind, err := resource.Randomize(src, maxAmount)
	if err != nil {
		return EnvResource{}, err
	}
	return EnvResource{
		kind:        kind,
		coordinates: geom.RandomCoordinates(src, size),
		id:          id,
	}, nil
}

func (e EnvResource) Kind() resource.Resource       { return e.kind }
func (e EnvResource) Coordinates() geom.Coordinates { return e.coordinates }
func (e EnvResource) ID() int32                     { return e.id }
func (e EnvResource) Depleted() bool                { return e.kind.Amount <= 0 }
func (e EnvResource) String() string {
	return fmt.Sprintf("#%d %s @(%d,%d)", e.id, e.kind, e.coordinates.X, e.coordinates.Y)
}

func (e *EnvResource) GiveResources(kind resource.Kind, amount int) error {
	return transfer.Spend(&e.kind, kind, amount)
}

// RandomizeWorldResources spawns ids 0 through amount inclusive, so it
// returns amount+1 pickups. An amount that does not fit an int32 id is
// logged and nothing is spawned.
func RandomizeWorldResources(src rng.Source, logger *log.Logger, amount uint64, maxAmount int, size geom.WorldSize) ([]EnvResource, error) {
	if amount > math.MaxInt32 {
		if logger != nil {
			logger.Printf("error converting world resource amount %d to int32: out of range; spawning none", amount)
		}
		return []EnvResource{}, nil
	}
	out := make([]EnvResource, 0, amount+1)
	for id := int64(0); id <= int64(amount); id++ {
		r, err := Randomize(src, maxAmount, int32(id), size)
		if err != nil {
			return nil, fmt.Errorf("spawn resource %d: %w", id, err)
		}
		out = append(out, r)
	}
	return out, nil
}
