package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"testing"

	"github.com/stretchr/testify/require"

	"spacestation.ai/internal/protocol"
	"spacestation.ai/internal/sim/geom"
	"spacestation.ai/internal/sim/resource"
	"spacestation.ai/internal/sim/rng"
	"spacestation.ai/internal/sim/ship"
	"spacestation.ai/internal/sim/world"
)

type memSink struct{ entries []world.AuditEntry }

func (m *memSink) WriteAudit(e world.AuditEntry) error {
	m.entries = append(m.entries, e)
	return nil
}

type brokenSink struct{}

func (brokenSink) WriteAudit(world.AuditEntry) error { return errors.New("disk gone") }

func newSession(t *testing.T, sinks ...world.AuditSink) *Session {
	t.Helper()
	src := rng.New(11)
	w, err := world.New(world.Config{
		PlayArea:         100,
		SpawnResources:   20,
		ResourceMaxCap:   40,
		ConsumptionRate:  1,
		RechargeRate:     5,
		RechargeInterval: 100,
		GameTick:         1,
		MiningReach:      2,
	}, src, nil)
	require.NoError(t, err)
	home := geom.NewCoordinates(0, 0, w.Size())
	return &Session{
		World:  w,
		Ship:   ship.NewSpaceShip(src, "ada", home, 0),
		Mother: ship.NewMotherShip("zeus", home),
		Sinks:  sinks,
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		line string
		op   Op
		args []string
	}{
		{"move 3 -4", OpMoveTo, []string{"3", "-4"}},
		{"  MINE 7 ", OpMine, []string{"7"}},
		{"recharge", OpRecharge, []string{}},
		{"info", OpInfo, []string{}},
		{"ping 10", OpPing, []string{"10"}},
		{"offload", OpOffload, []string{}},
		{"", OpEmpty, nil},
		{"dance now", OpEmpty, []string{"dance", "now"}},
	}
	for _, tc := range cases {
		got := Parse(tc.line)
		require.Equal(t, tc.op, got.Op, tc.line)
		require.Equal(t, tc.args, got.Args, tc.line)
	}
}

func TestDispatchMoveConsumesAndAudits(t *testing.T) {
	sink := &memSink{}
	s := newSession(t, sink)
	prop := s.Ship.Level(resource.Propellant)
	gas := s.Ship.Level(resource.Gas)

	res, err := s.Dispatch(context.Background(), Parse("move 3 4"))
	require.NoError(t, err)
	require.NoError(t, res.Err)
	require.Equal(t, protocol.CodeNominal, res.Code)
	require.Equal(t, uint64(1), res.Step)
	require.Equal(t, 3, res.Ship.X)
	require.Equal(t, prop-5, res.Ship.Propellant)
	require.Equal(t, gas-1, res.Ship.Gas, "life support ticks once")

	require.Len(t, sink.entries, 1)
	e := sink.entries[0]
	require.Equal(t, s.World.RunID(), e.RunID)
	require.Equal(t, uint64(1), e.Seq)
	require.Equal(t, "ada", e.Actor)
	require.Equal(t, string(OpMoveTo), e.Action)
	require.Equal(t, world.NoResource, e.ResourceID)
	require.Equal(t, protocol.CodeNominal, e.Code)
}

func TestDispatchBadArgs(t *testing.T) {
	s := newSession(t)
	for _, line := range []string{"move 1", "move a b", "mine", "mine x", "ping -3"} {
		res, err := s.Dispatch(context.Background(), Parse(line))
		require.NoError(t, err)
		require.Equal(t, protocol.ErrBadRequest, res.Code, line)
	}

	res, _ := s.Dispatch(context.Background(), Parse("move 500 0"))
	require.Equal(t, protocol.ErrOutOfBounds, res.Code)
}

func TestDispatchMine(t *testing.T) {
	sink := &memSink{}
	s := newSession(t, sink)
	target := s.World.Resources()[3]
	at := target.Coordinates()
	s.Ship = ship.NewSpaceShip(rng.New(1), "ada", at, 0)

	res, err := s.Dispatch(context.Background(), Parse(fmt.Sprintf("mine %d", target.ID())))
	require.NoError(t, err)
	require.Equal(t, protocol.CodeNominal, res.Code)
	require.Equal(t, target.Kind(), res.Mined)

	e := sink.entries[0]
	require.Equal(t, int64(target.ID()), e.ResourceID)
	require.Equal(t, target.Kind().Kind.String(), e.Kind)
	require.Equal(t, target.Kind().Amount, e.Amount)

	res, _ = s.Dispatch(context.Background(), Parse(fmt.Sprintf("mine %d", target.ID())))
	require.Equal(t, protocol.ErrResourceExhausted, res.Code)
	require.Equal(t, protocol.ErrResourceExhausted, sink.entries[1].Code)
	require.NotEmpty(t, sink.entries[1].Reason)

	res, _ = s.Dispatch(context.Background(), Parse("mine 9999"))
	require.Equal(t, protocol.ErrNotFound, res.Code)
}

func TestDispatchRechargeAndOffload(t *testing.T) {
	s := newSession(t)
	s.Ship = ship.NewSpaceShip(rng.New(4), "ada", geom.NewCoordinates(10, 10, s.World.Size()), 12)
	require.NoError(t, s.Mother.GiveResources(resource.Gas, 60))

	var steps int
	s.OnRecharge = func(step int, st ship.Status) { steps = step }
	res, err := s.Dispatch(context.Background(), Parse("recharge"))
	require.NoError(t, err)
	require.Equal(t, protocol.CodeNominal, res.Code)
	require.Equal(t, res.Steps, steps)
	require.Equal(t, s.Mother.Position(), s.Ship.Position(), "recharge teleports home")
	require.Equal(t, resource.MaxLevel, res.Ship.Propellant)
	require.Equal(t, resource.MaxLevel-1, res.Ship.Gas, "tick after recharge")
	require.Equal(t, string(ship.Undocked), res.Ship.Dock)

	res, _ = s.Dispatch(context.Background(), Parse("offload"))
	require.Equal(t, protocol.CodeNominal, res.Code)
	require.Len(t, res.Moved, 3)
	require.Equal(t, 52, res.Mother.Gas)
	require.Equal(t, 0, s.Ship.Storage().Amount(resource.Gas))
}

func TestDispatchPing(t *testing.T) {
	s := newSession(t)
	s.PingRadius = 1000
	res, err := s.Dispatch(context.Background(), Parse("ping"))
	require.NoError(t, err)
	require.Len(t, res.Found, s.World.Len())

	res, _ = s.Dispatch(context.Background(), Parse("ping 0"))
	for _, f := range res.Found {
		require.Equal(t, 0, f.Distance)
	}
}

func TestDispatchEmptyDoesNotTick(t *testing.T) {
	sink := &memSink{}
	s := newSession(t, sink)
	gas := s.Ship.Level(resource.Gas)

	res, err := s.Dispatch(context.Background(), Parse("hello"))
	require.NoError(t, err)
	require.Equal(t, uint64(0), res.Step)
	require.Equal(t, gas, res.Ship.Gas)
	require.Len(t, sink.entries, 1)
	require.Equal(t, string(OpEmpty), sink.entries[0].Action)
}

func TestSinkFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	good := &memSink{}
	s := newSession(t, brokenSink{}, good)
	s.Logger = log.New(&buf, "", 0)

	res, err := s.Dispatch(context.Background(), Parse("info"))
	require.NoError(t, err)
	require.Equal(t, protocol.CodeNominal, res.Code)
	require.Len(t, good.entries, 1)
	require.Contains(t, buf.String(), "disk gone")
}

func TestDispatchCancelled(t *testing.T) {
	s := newSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Dispatch(ctx, Parse("info"))
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, uint64(0), s.World.Steps())
}
