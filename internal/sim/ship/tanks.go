// Package ship holds the mobile units: the space ship that moves and mines,
// and the mother ship it docks with.
package ship

import (
	"spacestation.ai/internal/protocol"
	"spacestation.ai/internal/sim/resource"
	"spacestation.ai/internal/sim/transfer"
)

// Tanks are the live resource levels a ship runs on.
type Tanks struct {
	Consumables resource.Resource `json:"consumables"`
	Gas         resource.Resource `json:"gas"`
	Propellant  resource.Resource `json:"propellant"`
}

func NewTanks(consumables, gas, propellant int) Tanks {
	t := Tanks{
		Consumables: resource.NewConsumables(consumables),
		Gas:         resource.NewGas(gas),
		Propellant:  resource.NewPropellant(propellant),
	}
	resource.Cap(&t)
	return t
}

func (t *Tanks) tank(kind resource.Kind) *resource.Resource {
	switch kind {
	case resource.Consumables:
		return &t.Consumables
	case resource.Gas:
		return &t.Gas
	case resource.Propellant:
		return &t.Propellant
	}
	return nil
}

func (t *Tanks) Level(kind resource.Kind) int {
	if r := t.tank(kind); r != nil {
		return r.Amount
	}
	return 0
}

func (t *Tanks) GiveResources(kind resource.Kind, amount int) error {
	r := t.tank(kind)
	if r == nil {
		return protocol.Errorf(protocol.ErrBadRequest, "unknown resource kind %d", int(kind))
	}
	if err := transfer.Spend(r, kind, amount); err != nil {
		return err
	}
	resource.Cap(r)
	return nil
}

// Add raises kind by amount; anything above the max level is lost.
func (t *Tanks) Add(kind resource.Kind, amount int) bool {
	r := t.tank(kind)
	if r == nil {
		return false
	}
	r.Amount += amount
	resource.Cap(r)
	return true
}

func (t *Tanks) TakeResources(kind resource.Kind, amount int) error {
	if !t.Add(kind, amount) {
		return protocol.Errorf(protocol.ErrBadRequest, "unknown resource kind %d", int(kind))
	}
	return nil
}

// drain lowers kind by amount without the give policy and floors at zero.
func (t *Tanks) drain(kind resource.Kind, amount int) {
	if r := t.tank(kind); r != nil {
		r.Amount -= amount
		resource.Cap(r)
	}
}

func (t *Tanks) Full() bool {
	for _, k := range resource.Kinds {
		if t.Level(k) < resource.MaxLevel {
			return false
		}
	}
	return true
}

func (t *Tanks) lowest() int {
	low := resource.MaxLevel
	for _, k := range resource.Kinds {
		low = min(low, t.Level(k))
	}
	return low
}

func (t *Tanks) AdjustMinLevel() {
	t.Consumables.AdjustMinLevel()
	t.Gas.AdjustMinLevel()
	t.Propellant.AdjustMinLevel()
}

func (t *Tanks) AdjustMaxLevel() {
	t.Consumables.AdjustMaxLevel()
	t.Gas.AdjustMaxLevel()
	t.Propellant.AdjustMaxLevel()
}
