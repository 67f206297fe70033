package ship

import (
	"spacestation.ai/internal/protocol"
	"spacestation.ai/internal/sim/envres"
	"spacestation.ai/internal/sim/geom"
	"spacestation.ai/internal/sim/resource"
	"spacestation.ai/internal/sim/rng"
	"spacestation.ai/internal/sim/storage"
	"spacestation.ai/internal/sim/transfer"
	"spacestation.ai/internal/sim/world"
)

type DockStatus string

const (
	Docked   DockStatus = "DOCKED"
	Undocked DockStatus = "UNDOCKED"
)

// Status is a read-only view for display.
type Status struct {
	Name        string              `json:"name"`
	Consumables int                 `json:"consumables"`
	Gas         int                 `json:"gas"`
	Propellant  int                 `json:"propellant"`
	Storage     []resource.Resource `json:"storage"`
	X           int                 `json:"x"`
	Y           int                 `json:"y"`
	Quadrant    string              `json:"quadrant"`
	Dock        string              `json:"dock"`
	Recharge    string              `json:"recharge,omitempty"`
}

type SpaceShip struct {
	name    string
	tanks   Tanks
	storage *storage.Storage
	pos     geom.Coordinates
	dock    DockStatus
}

// NewSpaceShip starts each tank at a random level in [50,100).
func NewSpaceShip(src rng.Source, name string, at geom.Coordinates, storageStart int) *SpaceShip {
	return &SpaceShip{
		name: name,
		tanks: NewTanks(
			rng.Range(src, 50, 100),
			rng.Range(src, 50, 100),
			rng.Range(src, 50, 100),
		),
		storage: storage.New(storageStart),
		pos:     at,
		dock:    Undocked,
	}
}

func (s *SpaceShip) Name() string                 { return s.name }
func (s *SpaceShip) Position() geom.Coordinates   { return s.pos }
func (s *SpaceShip) Level(kind resource.Kind) int { return s.tanks.Level(kind) }
func (s *SpaceShip) Storage() *storage.Storage    { return s.storage }
func (s *SpaceShip) DockStatus() DockStatus       { return s.dock }

func (s *SpaceShip) GiveResources(kind resource.Kind, amount int) error {
	return s.tanks.GiveResources(kind, amount)
}

func (s *SpaceShip) TakeResources(kind resource.Kind, amount int) error {
	return s.tanks.TakeResources(kind, amount)
}

// ReceiveFrom moves amount of kind out of src into this ship's tanks.
func (s *SpaceShip) ReceiveFrom(src transfer.Giver, kind resource.Kind, amount int) error {
	return transfer.Receive(&s.tanks, kind, amount, src)
}

// MoveTo flies to the target, burning distance*consumptionRate propellant.
func (s *SpaceShip) MoveTo(to geom.Coordinates, consumptionRate int) error {
	if err := to.CheckBounds(); err != nil {
		return err
	}
	cost := geom.Distance(s.pos, to) * consumptionRate
	if have := s.tanks.Level(resource.Propellant); cost > have {
		return protocol.Errorf(protocol.ErrUnreachable, "needs %d propellant, has %d", cost, have)
	}
	if err := s.tanks.GiveResources(resource.Propellant, cost); err != nil {
		return err
	}
	s.pos = to
	return nil
}

// Teleport puts the ship on the mother ship without burning propellant.
func (s *SpaceShip) Teleport(m *MotherShip) {
	s.pos = m.pos
}

// Mine empties the resource into storage. It must be within reach and the
// matching storage counter must have room.
func (s *SpaceShip) Mine(w *world.World, id int32, reach int) (resource.Resource, error) {
	var mined resource.Resource
	err := w.Mine(id, func(r *envres.EnvResource) error {
		if d := geom.Distance(s.pos, r.Coordinates()); d > reach {
			return protocol.Errorf(protocol.ErrUnreachable, "resource %d is %d away, reach %d", id, d, reach)
		}
		if r.Depleted() {
			return protocol.Errorf(protocol.ErrResourceExhausted, "resource %d is empty", id)
		}
		kind := r.Kind()
		if s.storage.Full(kind.Kind) {
			return protocol.Errorf(protocol.ErrStorageFull, "%s storage full", kind.Kind)
		}
		if err := transfer.Receive(hold{s.storage}, kind.Kind, kind.Amount, r); err != nil {
			return err
		}
		mined = kind
		return nil
	})
	return mined, err
}

// Offload drains storage into the mother ship's tanks.
func (s *SpaceShip) Offload(m *MotherShip) ([]resource.Resource, error) {
	moved := s.storage.Drain()
	for _, r := range moved {
		if err := m.tanks.TakeResources(r.Kind, r.Amount); err != nil {
			return moved, err
		}
	}
	return moved, nil
}

// RechargeStep adds rate to every tank and reports whether all are full.
func (s *SpaceShip) RechargeStep(rate int) bool {
	for _, k := range resource.Kinds {
		s.tanks.Add(k, rate)
	}
	return s.tanks.Full()
}

// Recharge docks with m and steps until every tank is full, calling onStep
// after each step. It returns the number of steps taken.
func (s *SpaceShip) Recharge(m *MotherShip, rate int, onStep func(step int, st Status)) (int, error) {
	if rate <= 0 {
		return 0, protocol.Errorf(protocol.ErrInvalidRange, "recharge rate %d", rate)
	}
	s.docked(m)
	defer s.undocked(m)

	steps := 0
	for !s.tanks.Full() {
		s.RechargeStep(rate)
		steps++
		if onStep != nil {
			onStep(steps, s.Status())
		}
	}
	return steps, nil
}

// RechargeSteps is how many steps Recharge will take at rate.
func (s *SpaceShip) RechargeSteps(rate int) int {
	if rate <= 0 {
		return 0
	}
	missing := resource.MaxLevel - s.tanks.lowest()
	return (missing + rate - 1) / rate
}

// Consume drains life support by rate.
func (s *SpaceShip) Consume(rate int) {
	s.tanks.drain(resource.Consumables, rate)
	s.tanks.drain(resource.Gas, rate)
}

func (s *SpaceShip) docked(m *MotherShip) {
	m.dock = DockPopulated
	m.recharge = RechargeCharging
	s.dock = Docked
}

func (s *SpaceShip) undocked(m *MotherShip) {
	m.dock = DockEmpty
	m.recharge = RechargeIdle
	s.dock = Undocked
}

func (s *SpaceShip) Status() Status {
	return Status{
		Name:        s.name,
		Consumables: s.tanks.Consumables.Amount,
		Gas:         s.tanks.Gas.Amount,
		Propellant:  s.tanks.Propellant.Amount,
		Storage:     s.storage.Levels(),
		X:           s.pos.X,
		Y:           s.pos.Y,
		Quadrant:    s.pos.Quadrant().String(),
		Dock:        string(s.dock),
	}
}

// hold adapts a storage to the receiving side of a transfer.
type hold struct{ st *storage.Storage }

func (h hold) TakeResources(kind resource.Kind, amount int) error {
	return transfer.ReceiveToStorage(h.st, resource.New(kind, amount))
}
