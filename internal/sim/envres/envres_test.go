package envres

import (
	"bytes"
	"errors"
	"log"
	"math"
	"strings"
	"testing"

	"spacestation.ai/internal/protocol"
	"spacestation.ai/internal/sim/geom"
	"spacestation.ai/internal/sim/resource"
	"spacestation.ai/internal/sim/rng"
)

func TestRandomizeWorldResourcesOffByOne(t *testing.T) {
	size := geom.NewWorldSize(100)
	got, err := RandomizeWorldResources(rng.New(9), nil, 10, 50, size)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if len(got) != 11 {
		t.Fatalf("expected 11 resources for amount=10, got %d", len(got))
	}
	for i, r := range got {
		if r.ID() != int32(i) {
			t.Fatalf("entry %d has id %d", i, r.ID())
		}
		if a := r.Kind().Amount; a < resource.MinSpawnAmount || a > 50 {
			t.Fatalf("entry %d amount %d outside [5,50]", i, a)
		}
		if !r.Coordinates().WithinBounds(nil) {
			t.Fatalf("entry %d outside world: %+v", i, r.Coordinates())
		}
	}
}

func TestRandomizeWorldResourcesOverflowFallsBack(t *testing.T) {
	var buf bytes.Buffer
	got, err := RandomizeWorldResources(rng.New(1), log.New(&buf, "", 0), math.MaxInt32+1, 50, geom.NewWorldSize(10))
	if err != nil {
		t.Fatalf("overflow must not fail: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected zero resources, got %d", len(got))
	}
	if !strings.Contains(buf.String(), "out of range") {
		t.Fatalf("expected diagnostic, got %q", buf.String())
	}
}

func TestRandomizeWorldResourcesInvalidRange(t *testing.T) {
	_, err := RandomizeWorldResources(rng.New(1), nil, 3, 4, geom.NewWorldSize(10))
	if !errors.Is(err, protocol.Code(protocol.ErrInvalidRange)) {
		t.Fatalf("expected E_INVALID_RANGE, got %v", err)
	}
}

func TestGiveResources(t *testing.T) {
	at := geom.NewCoordinates(1, 2, geom.NewWorldSize(10))
	e := New(resource.NewGas(20), at, 4)

	if err := e.GiveResources(resource.Gas, 20); err != nil {
		t.Fatalf("give: %v", err)
	}
	if e.Kind().Amount != 0 || !e.Depleted() {
		t.Fatalf("expected depleted, got %v", e.Kind())
	}
	if err := e.GiveResources(resource.Gas, 1); !errors.Is(err, protocol.Code(protocol.ErrResourceExhausted)) {
		t.Fatalf("expected E_RESOURCE_EXHAUSTED, got %v", err)
	}
	if err := e.GiveResources(resource.Propellant, 50); err != nil {
		t.Fatalf("mismatch should be a successful no-op, got %v", err)
	}
	if e.Kind() != resource.NewGas(0) || e.Coordinates() != at || e.ID() != 4 {
		t.Fatalf("unexpected state %v", e)
	}
}
