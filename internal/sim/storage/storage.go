// Package storage is the hold a ship stockpiles mined resources in.
package storage

import (
	"spacestation.ai/internal/protocol"
	"spacestation.ai/internal/sim/resource"
)

// Storage keeps one counter per resource kind, each clamped independently.
type Storage struct {
	consumables int
	gas         int
	propellant  int
}

// New applies the same starting amount to all three counters.
func New(amount int) *Storage {
	s := &Storage{consumables: amount, gas: amount, propellant: amount}
	resource.Cap(s)
	return s
}

func (s *Storage) counter(kind resource.Kind) *int {
	switch kind {
	case resource.Consumables:
		return &s.consumables
	case resource.Gas:
		return &s.gas
	case resource.Propellant:
		return &s.propellant
	}
	return nil
}

// Amount returns the stored level for kind.
func (s *Storage) Amount(kind resource.Kind) int {
	if c := s.counter(kind); c != nil {
		return *c
	}
	return 0
}

func (s *Storage) Full(kind resource.Kind) bool {
	return s.Amount(kind) >= resource.MaxLevel
}

// Deposit adds r to the matching counter and clamps. A counter that is
// already saturated rejects the deposit. Overflow past the cap is dropped.
func (s *Storage) Deposit(r resource.Resource) error {
	c := s.counter(r.Kind)
	if c == nil {
		return protocol.Errorf(protocol.ErrBadRequest, "unknown resource kind %d", int(r.Kind))
	}
	if *c >= resource.MaxLevel {
		return protocol.Errorf(protocol.ErrStorageFull, "%s storage at %d", r.Kind, *c)
	}
	*c += r.Amount
	resource.Cap(s)
	return nil
}

// Drain empties every counter and returns what was held.
func (s *Storage) Drain() []resource.Resource {
	out := s.Levels()
	s.consumables, s.gas, s.propellant = 0, 0, 0
	return out
}

// Levels returns the counters in resource.Kinds order.
func (s *Storage) Levels() []resource.Resource {
	out := make([]resource.Resource, 0, len(resource.Kinds))
	for _, k := range resource.Kinds {
		out = append(out, resource.New(k, s.Amount(k)))
	}
	return out
}

func (s *Storage) AdjustMinLevel() {
	s.consumables = max(s.consumables, resource.MinLevel)
	s.gas = max(s.gas, resource.MinLevel)
	s.propellant = max(s.propellant, resource.MinLevel)
}

func (s *Storage) AdjustMaxLevel() {
	s.consumables = min(s.consumables, resource.MaxLevel)
	s.gas = min(s.gas, resource.MaxLevel)
	s.propellant = min(s.propellant, resource.MaxLevel)
}
