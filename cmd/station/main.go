package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"spacestation.ai/internal/persistence/indexdb"
	persistlog "spacestation.ai/internal/persistence/log"
	"spacestation.ai/internal/sim/command"
	"spacestation.ai/internal/sim/geom"
	"spacestation.ai/internal/sim/rng"
	"spacestation.ai/internal/sim/ship"
	"spacestation.ai/internal/sim/tuning"
	"spacestation.ai/internal/sim/world"
)

func main() {
	var (
		configDir  = flag.String("configs", "./configs", "config directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		seed       = flag.Uint64("seed", 0, "world seed (0: random)")
		name       = flag.String("name", "ada", "space ship name")
		disableDB  = flag.Bool("disable_db", false, "disable the sqlite audit index")
		tick       = flag.Duration("tick", -1, "pause between recharge steps (default: tuning recharge_interval)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[station] ", log.LstdFlags|log.Lmicroseconds)

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatalf("load tuning: %v", err)
		}
		logger.Printf("tuning not found (%s); using defaults", tp)
		tune = tuning.Defaults()
	}

	var src rng.Source
	if *seed == 0 {
		src = rng.NewRandom()
	} else {
		src = rng.New(*seed)
	}

	w, err := world.New(tune.ToWorldConfig(), src, logger)
	if err != nil {
		logger.Fatalf("create world: %v", err)
	}
	home := geom.NewCoordinates(0, 0, w.Size())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runDir := filepath.Join(*dataDir, "runs", w.RunID())
	audit := persistlog.NewAuditLogger(runDir)
	defer audit.Close()
	steps := persistlog.NewStepLogger(runDir)
	defer steps.Close()
	sinks := []world.AuditSink{audit}

	var idx *indexdb.SQLiteIndex
	if !*disableDB {
		idx, err = indexdb.OpenSQLite(filepath.Join(*dataDir, "index", "station.sqlite"))
		if err != nil {
			logger.Fatalf("open index: %v", err)
		}
		defer idx.Close()
		if err := idx.RecordRun(ctx, w.RunID(), *seed, tune); err != nil {
			logger.Printf("record run: %v", err)
		}
		sinks = append(sinks, idx)
	}

	pace := *tick
	if pace < 0 {
		pace = time.Duration(tune.RechargeInterval) * time.Millisecond
	}

	sess := &command.Session{
		World:      w,
		Ship:       ship.NewSpaceShip(src, *name, home, tune.StorageStart),
		Mother:     ship.NewMotherShip(*name+"-mother", home),
		Logger:     logger,
		Sinks:      sinks,
		PingRadius: tune.PingRadius,
	}
	logger.Printf("run=%s size=%d..%d resources=%d", w.RunID(), w.Size().Min, w.Size().Max, w.Len())

	c := &console{out: os.Stdout, steps: steps, logger: logger, pace: pace}
	c.run(ctx, sess, os.Stdin)

	if idx != nil {
		c.summary(ctx, idx, w.RunID())
	}
}
