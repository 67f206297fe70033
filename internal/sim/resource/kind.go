// Package resource holds the tagged resource quantity shared by every holder
// in the simulation, and the level cap that keeps it in range.
package resource

import (
	"fmt"
	"strings"
)

type Kind int

const (
	Consumables Kind = iota
	Gas
	Propellant
)

// Kinds lists every variant in display order.
var Kinds = [...]Kind{Consumables, Gas, Propellant}

func (k Kind) String() string {
	switch k {
	case Consumables:
		return "CONSUMABLES"
	case Gas:
		return "GAS"
	case Propellant:
		return "PROPELLANT"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) Valid() bool {
	return k >= Consumables && k <= Propellant
}

func ParseKind(raw string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "consumables", "food", "water", "foodwater", "food_water":
		return Consumables, true
	case "gas", "oxygen", "air":
		return Gas, true
	case "propellant", "fuel":
		return Propellant, true
	}
	return 0, false
}

// Resource is a quantity tagged with its kind.
type Resource struct {
	Kind   Kind `json:"kind"`
	Amount int  `json:"amount"`
}

func New(kind Kind, amount int) Resource { return Resource{Kind: kind, Amount: amount} }

func NewConsumables(amount int) Resource { return New(Consumables, amount) }
func NewGas(amount int) Resource         { return New(Gas, amount) }
func NewPropellant(amount int) Resource  { return New(Propellant, amount) }

func (r Resource) String() string {
	return fmt.Sprintf("%s(%d)", r.Kind, r.Amount)
}
