package geom

import (
	"log"
	"math"

	"spacestation.ai/internal/protocol"
	"spacestation.ai/internal/sim/rng"
)

type Quadrant int

const (
	First Quadrant = iota + 1
	Second
	Third
	Fourth
)

func (q Quadrant) String() string {
	switch q {
	case First:
		return "FIRST"
	case Second:
		return "SECOND"
	case Third:
		return "THIRD"
	case Fourth:
		return "FOURTH"
	default:
		return "UNKNOWN"
	}
}

// Coordinates is a position tied to the WorldSize it was generated against.
// Construction does not check bounds.
type Coordinates struct {
	X    int       `json:"x"`
	Y    int       `json:"y"`
	Size WorldSize `json:"size"`
}

func NewCoordinates(x, y int, size WorldSize) Coordinates {
	return Coordinates{X: x, Y: y, Size: size}
}

// RandomCoordinates samples both axes from [size.Min, size.Max).
func RandomCoordinates(src rng.Source, size WorldSize) Coordinates {
	return Coordinates{
		X:    rng.Range(src, size.Min, size.Max),
		Y:    rng.Range(src, size.Min, size.Max),
		Size: size,
	}
}

func (c Coordinates) Values() (int, int) { return c.X, c.Y }

// Quadrant classifies by sign. Anything that is not strictly First, Second
// or Third lands in Fourth, including points on an axis.
func (c Coordinates) Quadrant() Quadrant {
	switch {
	case c.X > 0 && c.Y > 0:
		return First
	case c.X < 0 && c.Y > 0:
		return Second
	case c.X < 0 && c.Y < 0:
		return Third
	default:
		return Fourth
	}
}

// WithinBounds reports whether both axes lie in the world size. Each failing
// axis is logged; the coordinate is never modified.
func (c Coordinates) WithinBounds(logger *log.Logger) bool {
	ok := true
	for i, v := range [2]int{c.X, c.Y} {
		if c.Size.Contains(v) {
			continue
		}
		ok = false
		if logger != nil {
			axis := "x"
			if i == 1 {
				axis = "y"
			}
			logger.Printf("%s value is out of bounds: %d (world %d..%d)", axis, v, c.Size.Min, c.Size.Max)
		}
	}
	return ok
}

// CheckBounds is WithinBounds on the error path.
func (c Coordinates) CheckBounds() error {
	if c.Size.Contains(c.X) && c.Size.Contains(c.Y) {
		return nil
	}
	return protocol.Errorf(protocol.ErrOutOfBounds, "(%d,%d) outside %d..%d", c.X, c.Y, c.Size.Min, c.Size.Max)
}

// DistanceTo is Distance(c, to).
func (c Coordinates) DistanceTo(to Coordinates) int { return Distance(c, to) }

// Distance is the Euclidean distance floored to an integer.
func Distance(a, b Coordinates) int {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return int(math.Floor(math.Sqrt(dx*dx + dy*dy)))
}
