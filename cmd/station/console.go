package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"time"

	persistlog "spacestation.ai/internal/persistence/log"
	"spacestation.ai/internal/protocol"
	"spacestation.ai/internal/sim/command"
	"spacestation.ai/internal/sim/ship"
)

type stepWriter interface {
	WriteStep(persistlog.StepEntry) error
}

type runStats interface {
	CodeCounts(ctx context.Context, runID string) (map[string]int, error)
	MinedTotals(ctx context.Context, runID string) (map[string]int, error)
}

type console struct {
	out    io.Writer
	steps  stepWriter
	logger *log.Logger
	pace   time.Duration
}

// run reads commands until EOF, "quit" or ctx is done.
func (c *console) run(ctx context.Context, sess *command.Session, in io.Reader) {
	sess.OnRecharge = func(step int, st ship.Status) {
		fmt.Fprintf(c.out, "  recharge %d: %s\n", step, levels(st))
		if c.pace > 0 {
			time.Sleep(c.pace)
		}
	}

	sc := bufio.NewScanner(in)
	fmt.Fprint(c.out, "> ")
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "quit" || line == "exit" {
			return
		}
		res, err := sess.Dispatch(ctx, command.Parse(line))
		if err != nil {
			return
		}
		c.render(res)
		if res.Op != command.OpEmpty && c.steps != nil {
			if err := c.steps.WriteStep(persistlog.StepEntry{
				RunID:  sess.World.RunID(),
				Step:   res.Step,
				Ship:   res.Ship,
				Mother: res.Mother,
			}); err != nil && c.logger != nil {
				c.logger.Printf("step log: %v", err)
			}
		}
		fmt.Fprint(c.out, "> ")
	}
}

func (c *console) render(res command.Result) {
	if res.Err != nil {
		fmt.Fprintf(c.out, "%s: %v\n", res.Code, res.Err)
		return
	}
	switch res.Op {
	case command.OpMoveTo:
		fmt.Fprintf(c.out, "moved to (%d, %d) %s quadrant; %s\n", res.Ship.X, res.Ship.Y, res.Ship.Quadrant, levels(res.Ship))
	case command.OpMine:
		fmt.Fprintf(c.out, "mined %s\n", res.Mined)
	case command.OpRecharge:
		fmt.Fprintf(c.out, "recharged in %d steps\n", res.Steps)
	case command.OpInfo:
		c.status(res.Ship)
		c.status(res.Mother)
	case command.OpPing:
		if len(res.Found) == 0 {
			fmt.Fprintln(c.out, "nothing in range")
		}
		for _, f := range res.Found {
			fmt.Fprintf(c.out, "  #%d %s at (%d, %d) distance %d\n",
				f.Resource.ID(), f.Resource.Kind(), f.Resource.Coordinates().X, f.Resource.Coordinates().Y, f.Distance)
		}
	case command.OpOffload:
		for _, r := range res.Moved {
			fmt.Fprintf(c.out, "  offloaded %s\n", r)
		}
	case command.OpEmpty:
		fmt.Fprintln(c.out, "commands: move <x> <y>, mine <id>, recharge, info, ping [radius], offload, quit")
	}
}

func (c *console) status(st ship.Status) {
	fmt.Fprintf(c.out, "%s at (%d, %d) %s [%s] %s", st.Name, st.X, st.Y, st.Quadrant, st.Dock, levels(st))
	if st.Recharge != "" {
		fmt.Fprintf(c.out, " recharge=%s", st.Recharge)
	}
	fmt.Fprint(c.out, " storage:")
	for _, r := range st.Storage {
		fmt.Fprintf(c.out, " %s", r)
	}
	fmt.Fprintln(c.out)
}

func levels(st ship.Status) string {
	return fmt.Sprintf("consumables=%d gas=%d propellant=%d", st.Consumables, st.Gas, st.Propellant)
}

func (c *console) summary(ctx context.Context, stats runStats, runID string) {
	codes, err := stats.CodeCounts(ctx, runID)
	if err != nil {
		c.logger.Printf("summary: %v", err)
		return
	}
	mined, err := stats.MinedTotals(ctx, runID)
	if err != nil {
		c.logger.Printf("summary: %v", err)
		return
	}
	fmt.Fprintf(c.out, "run %s: %d nominal", runID, codes[protocol.CodeNominal])
	keys := make([]string, 0, len(codes))
	for k := range codes {
		if k != protocol.CodeNominal {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(c.out, ", %d %s", codes[k], k)
	}
	fmt.Fprintln(c.out)
	kinds := make([]string, 0, len(mined))
	for k := range mined {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(c.out, "  mined %d %s\n", mined[k], k)
	}
}
