package ship

import (
	"spacestation.ai/internal/sim/geom"
	"spacestation.ai/internal/sim/resource"
	"spacestation.ai/internal/sim/storage"
)

type MotherDockStatus string

const (
	DockPopulated MotherDockStatus = "POPULATED"
	DockEmpty     MotherDockStatus = "EMPTY"
)

type RechargeStatus string

const (
	RechargeCharging RechargeStatus = "CHARGING"
	RechargeIdle     RechargeStatus = "IDLE"
)

// MotherShip is the stationary base space ships dock with, recharge at and
// offload into.
type MotherShip struct {
	name     string
	tanks    Tanks
	storage  *storage.Storage
	pos      geom.Coordinates
	dock     MotherDockStatus
	recharge RechargeStatus
}

// NewMotherShip starts with full tanks and an empty hold.
func NewMotherShip(name string, at geom.Coordinates) *MotherShip {
	return &MotherShip{
		name:     name,
		tanks:    NewTanks(resource.MaxLevel, resource.MaxLevel, resource.MaxLevel),
		storage:  storage.New(0),
		pos:      at,
		dock:     DockEmpty,
		recharge: RechargeIdle,
	}
}

func (m *MotherShip) Name() string                   { return m.name }
func (m *MotherShip) Position() geom.Coordinates     { return m.pos }
func (m *MotherShip) Level(kind resource.Kind) int   { return m.tanks.Level(kind) }
func (m *MotherShip) Storage() *storage.Storage      { return m.storage }
func (m *MotherShip) DockStatus() MotherDockStatus   { return m.dock }
func (m *MotherShip) RechargeStatus() RechargeStatus { return m.recharge }

func (m *MotherShip) GiveResources(kind resource.Kind, amount int) error {
	return m.tanks.GiveResources(kind, amount)
}

func (m *MotherShip) TakeResources(kind resource.Kind, amount int) error {
	return m.tanks.TakeResources(kind, amount)
}

func (m *MotherShip) Status() Status {
	return Status{
		Name:        m.name,
		Consumables: m.tanks.Consumables.Amount,
		Gas:         m.tanks.Gas.Amount,
		Propellant:  m.tanks.Propellant.Amount,
		Storage:     m.storage.Levels(),
		X:           m.pos.X,
		Y:           m.pos.Y,
		Quadrant:    m.pos.Quadrant().String(),
		Dock:        string(m.dock),
		Recharge:    string(m.recharge),
	}
}
