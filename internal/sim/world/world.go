// Package world owns the bounded play area and every resource spawned in it.
//
// Resources live in an arena keyed by their spawn id. Callers never hold a
// pointer into the arena; mutation goes through Mine, one caller at a time.
package world

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"

	"spacestation.ai/internal/protocol"
	"spacestation.ai/internal/sim/envres"
	"spacestation.ai/internal/sim/geom"
	"spacestation.ai/internal/sim/rng"
)

type Config struct {
	PlayArea         int
	SpawnResources   uint64
	ResourceMaxCap   int
	ConsumptionRate  int
	RechargeRate     int
	RechargeInterval int
	GameTick         uint8
	MiningReach      int
}

type World struct {
	runID  string
	cfg    Config
	size   geom.WorldSize
	logger *log.Logger

	mu        sync.Mutex
	resources map[int32]*envres.EnvResource
	steps     uint64
}

// New builds a world whose play area is the square [-PlayArea, PlayArea].
func New(cfg Config, src rng.Source, logger *log.Logger) (*World, error) {
	return NewWithSize(cfg, geom.NewWorldSize(cfg.PlayArea), src, logger)
}

func NewWithSize(cfg Config, size geom.WorldSize, src rng.Source, logger *log.Logger) (*World, error) {
	if cfg.ConsumptionRate < 0 || cfg.RechargeRate < 0 || cfg.MiningReach < 0 {
		return nil, protocol.Errorf(protocol.ErrInvalidRange, "negative rate in world config")
	}
	spawned, err := envres.RandomizeWorldResources(src, logger, cfg.SpawnResources, cfg.ResourceMaxCap, size)
	if err != nil {
		return nil, fmt.Errorf("world resources: %w", err)
	}
	w := &World{
		runID:     uuid.NewString(),
		cfg:       cfg,
		size:      size,
		logger:    logger,
		resources: make(map[int32]*envres.EnvResource, len(spawned)),
	}
	for i := range spawned {
		r := spawned[i]
		w.resources[r.ID()] = &r
	}
	return w, nil
}

// Randomize builds a world with the stock parameters: 100 resources capped at
// 100, unit consumption and recharge, a tick in [1,5), a recharge interval in
// [100,500) and a play area drawn from [100,200).
func Randomize(src rng.Source, logger *log.Logger) (*World, error) {
	size, err := geom.RandomizeWorldSize(src, 100, 200)
	if err != nil {
		return nil, err
	}
	cfg := Config{
		SpawnResources:   100,
		ResourceMaxCap:   100,
		ConsumptionRate:  1,
		RechargeRate:     1,
		RechargeInterval: rng.Range(src, 100, 500),
		GameTick:         uint8(rng.Range(src, 1, 5)),
		MiningReach:      1,
	}
	return NewWithSize(cfg, size, src, logger)
}

func (w *World) RunID() string         { return w.runID }
func (w *World) Config() Config        { return w.cfg }
func (w *World) Size() geom.WorldSize  { return w.size }
func (w *World) ConsumptionRate() int  { return w.cfg.ConsumptionRate }
func (w *World) RechargeRate() int     { return w.cfg.RechargeRate }
func (w *World) RechargeInterval() int { return w.cfg.RechargeInterval }
func (w *World) GameTick() uint8       { return w.cfg.GameTick }
func (w *World) MiningReach() int      { return w.cfg.MiningReach }

// Step advances the world clock by one step and returns the new value.
func (w *World) Step() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.steps++
	return w.steps
}

func (w *World) Steps() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.steps
}

func (w *World) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.resources)
}

// Resource returns a copy of the resource with the given id.
func (w *World) Resource(id int32) (envres.EnvResource, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	r, ok := w.resources[id]
	if !ok {
		return envres.EnvResource{}, false
	}
	return *r, true
}

// Resources returns copies of every resource ordered by id.
func (w *World) Resources() []envres.EnvResource {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]envres.EnvResource, 0, len(w.resources))
	for _, r := range w.resources {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Mine runs fn with exclusive access to the resource. fn must not call back
// into the world.
func (w *World) Mine(id int32, fn func(r *envres.EnvResource) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	r, ok := w.resources[id]
	if !ok {
		return protocol.Errorf(protocol.ErrNotFound, "resource %d", id)
	}
	return fn(r)
}

// Remove drops a resource from the arena. Depletion does not remove
// anything on its own.
func (w *World) Remove(id int32) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.resources[id]; !ok {
		return false
	}
	delete(w.resources, id)
	return true
}

// Sighting is a resource seen from a position.
type Sighting struct {
	Resource envres.EnvResource
	Distance int
}

// Nearby lists resources within radius of from, closest first.
func (w *World) Nearby(from geom.Coordinates, radius int) []Sighting {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []Sighting
	for _, r := range w.resources {
		d := geom.Distance(from, r.Coordinates())
		if d <= radius {
			out = append(out, Sighting{Resource: *r, Distance: d})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Resource.ID() < out[j].Resource.ID()
	})
	return out
}
