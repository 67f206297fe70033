package command

import (
	"context"
	"log"
	"strconv"

	"spacestation.ai/internal/protocol"
	"spacestation.ai/internal/sim/geom"
	"spacestation.ai/internal/sim/resource"
	"spacestation.ai/internal/sim/ship"
	"spacestation.ai/internal/sim/world"
)

const DefaultPingRadius = 25

// Session is one player's console: a world, the ship they fly and the
// mother ship it belongs to.
type Session struct {
	World  *world.World
	Ship   *ship.SpaceShip
	Mother *ship.MotherShip
	Logger *log.Logger
	Sinks  []world.AuditSink

	PingRadius int
	// OnRecharge is called after every recharge step, e.g. to pace output.
	OnRecharge func(step int, st ship.Status)

	seq uint64
}

type Result struct {
	Op     Op
	Code   string
	Err    error
	Step   uint64
	Ship   ship.Status
	Mother ship.Status
	Found  []world.Sighting
	Mined  resource.Resource
	Moved  []resource.Resource
	Steps  int
}

// Dispatch applies cmd. Domain failures are reported in Result.Code and
// Result.Err; the returned error is only set when ctx is done.
func (s *Session) Dispatch(ctx context.Context, cmd Command) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{Op: cmd.Op}, err
	}

	res := Result{Op: cmd.Op}
	audit := world.AuditEntry{ResourceID: world.NoResource}

	switch cmd.Op {
	case OpMoveTo:
		res.Err = s.moveTo(cmd.Args)
	case OpMine:
		res.Err = s.mine(cmd.Args, &res, &audit)
	case OpRecharge:
		s.Ship.Teleport(s.Mother)
		res.Steps, res.Err = s.Ship.Recharge(s.Mother, s.World.RechargeRate(), s.OnRecharge)
	case OpInfo:
	case OpPing:
		res.Err = s.ping(cmd.Args, &res)
	case OpOffload:
		res.Moved, res.Err = s.Ship.Offload(s.Mother)
		for _, r := range res.Moved {
			audit.Amount += r.Amount
		}
	case OpEmpty:
	default:
		res.Err = protocol.Errorf(protocol.ErrBadRequest, "unknown op %q", cmd.Op)
	}

	if cmd.Op == OpEmpty {
		res.Step = s.World.Steps()
	} else {
		res.Step = s.World.Step()
		s.Ship.Consume(s.World.ConsumptionRate())
	}

	res.Code = protocol.CodeOf(res.Err)
	res.Ship = s.Ship.Status()
	res.Mother = s.Mother.Status()

	s.seq++
	audit.RunID = s.World.RunID()
	audit.Seq = s.seq
	audit.Step = res.Step
	audit.Actor = s.Ship.Name()
	audit.Action = string(cmd.Op)
	audit.X, audit.Y = res.Ship.X, res.Ship.Y
	audit.Code = res.Code
	if res.Err != nil {
		audit.Reason = res.Err.Error()
	}
	s.writeAudit(audit)
	return res, nil
}

func (s *Session) moveTo(args []string) error {
	if len(args) != 2 {
		return protocol.Errorf(protocol.ErrBadRequest, "move takes x and y")
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return protocol.Errorf(protocol.ErrBadRequest, "bad x %q", args[0])
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return protocol.Errorf(protocol.ErrBadRequest, "bad y %q", args[1])
	}
	to := geom.NewCoordinates(x, y, s.World.Size())
	return s.Ship.MoveTo(to, s.World.ConsumptionRate())
}

func (s *Session) mine(args []string, res *Result, audit *world.AuditEntry) error {
	if len(args) != 1 {
		return protocol.Errorf(protocol.ErrBadRequest, "mine takes a resource id")
	}
	id, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		return protocol.Errorf(protocol.ErrBadRequest, "bad resource id %q", args[0])
	}
	audit.ResourceID = id
	mined, err := s.Ship.Mine(s.World, int32(id), s.World.MiningReach())
	if err != nil {
		return err
	}
	res.Mined = mined
	audit.Kind = mined.Kind.String()
	audit.Amount = mined.Amount
	return nil
}

func (s *Session) ping(args []string, res *Result) error {
	radius := s.PingRadius
	if radius <= 0 {
		radius = DefaultPingRadius
	}
	if len(args) > 0 {
		r, err := strconv.Atoi(args[0])
		if err != nil || r < 0 {
			return protocol.Errorf(protocol.ErrBadRequest, "bad radius %q", args[0])
		}
		radius = r
	}
	res.Found = s.World.Nearby(s.Ship.Position(), radius)
	return nil
}

func (s *Session) writeAudit(e world.AuditEntry) {
	for _, sink := range s.Sinks {
		if sink == nil {
			continue
		}
		if err := sink.WriteAudit(e); err != nil && s.Logger != nil {
			s.Logger.Printf("audit sink: %v", err)
		}
	}
}
