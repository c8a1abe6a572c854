package game

import (
	"fmt"
	"math"
)

// Heading is one of the eight compass directions a robot can face. Values
// run counter-clockwise from north, so Left is +1 and Right is -1 (mod 8).
type Heading int

const (
	North Heading = iota
	NorthWest
	West
	SouthWest
	South
	SouthEast
	East
	NorthEast

	headingCount = 8
)

// headingSteps is the one-cell offset for each heading. North is +Y.
var headingSteps = [headingCount]Cell{
	North:     {X: 0, Y: 1},
	NorthWest: {X: -1, Y: 1},
	West:      {X: -1, Y: 0},
	SouthWest: {X: -1, Y: -1},
	South:     {X: 0, Y: -1},
	SouthEast: {X: 1, Y: -1},
	East:      {X: 1, Y: 0},
	NorthEast: {X: 1, Y: 1},
}

func (h Heading) normalized() Heading {
	return ((h % headingCount) + headingCount) % headingCount
}

// Left rotates one step counter-clockwise.
func (h Heading) Left() Heading {
	return (h.normalized() + 1) % headingCount
}

// Right rotates one step clockwise.
func (h Heading) Right() Heading {
	return (h.normalized() + headingCount - 1) % headingCount
}

// Forward returns the cell one step ahead of c. Bounds are not checked.
func (h Heading) Forward(c Cell) Cell {
	return c.Add(headingSteps[h.normalized()])
}

// Rotation returns the heading as an angle in radians, north = 0,
// increasing counter-clockwise.
func (h Heading) Rotation() float64 {
	return float64(h.normalized()) * math.Pi / 4
}

func (h Heading) String() string {
	switch h.normalized() {
	case North:
		return "N"
	case NorthWest:
		return "NW"
	case West:
		return "W"
	case SouthWest:
		return "SW"
	case South:
		return "S"
	case SouthEast:
		return "SE"
	case East:
		return "E"
	default:
		return "NE"
	}
}

// Cell is a grid coordinate.
type Cell struct {
	X, Y int
}

// Add returns the component-wise sum.
func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y}
}

// Distance is the Euclidean distance between two cells.
func (c Cell) Distance(o Cell) float64 {
	dx := float64(c.X - o.X)
	dy := float64(c.Y - o.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Chebyshev is the king-move distance between two cells.
func (c Cell) Chebyshev(o Cell) int {
	return max(absInt(c.X-o.X), absInt(c.Y-o.Y))
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
