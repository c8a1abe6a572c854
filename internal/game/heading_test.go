package game

import (
	"math"
	"testing"
)

func allHeadings() []Heading {
	return []Heading{North, NorthWest, West, SouthWest, South, SouthEast, East, NorthEast}
}

func TestHeading_LeftRightInverse(t *testing.T) {
	for _, h := range allHeadings() {
		if got := h.Left().Right(); got != h {
			t.Fatalf("%s.Left().Right() = %s", h, got)
		}
		if got := h.Right().Left(); got != h {
			t.Fatalf("%s.Right().Left() = %s", h, got)
		}
	}
}

func TestHeading_EightTurnsIsIdentity(t *testing.T) {
	for _, h := range allHeadings() {
		l, r := h, h
		for i := 0; i < 8; i++ {
			l = l.Left()
			r = r.Right()
			if l < North || l > NorthEast || r < North || r > NorthEast {
				t.Fatalf("rotation left the heading range: %d %d", l, r)
			}
		}
		if l != h || r != h {
			t.Fatalf("eight turns from %s gave left=%s right=%s", h, l, r)
		}
	}
}

func TestHeading_LeftIsCounterClockwise(t *testing.T) {
	if North.Left() != NorthWest || North.Right() != NorthEast {
		t.Fatalf("north left=%s right=%s", North.Left(), North.Right())
	}
	if East.Left() != NorthEast || East.Right() != SouthEast {
		t.Fatalf("east left=%s right=%s", East.Left(), East.Right())
	}
}

func TestHeading_Forward(t *testing.T) {
	origin := Cell{X: 5, Y: 5}
	want := map[Heading]Cell{
		North:     {5, 6},
		NorthWest: {4, 6},
		West:      {4, 5},
		SouthWest: {4, 4},
		South:     {5, 4},
		SouthEast: {6, 4},
		East:      {6, 5},
		NorthEast: {6, 6},
	}
	for h, c := range want {
		if got := h.Forward(origin); got != c {
			t.Fatalf("%s.Forward(%s) = %s, want %s", h, origin, got, c)
		}
	}
}

func TestHeading_ForwardIgnoresBounds(t *testing.T) {
	if got := West.Forward(Cell{0, 0}); got != (Cell{-1, 0}) {
		t.Fatalf("forward past the edge should still project, got %s", got)
	}
}

func TestHeading_Rotation(t *testing.T) {
	if North.Rotation() != 0 {
		t.Fatalf("north rotation %.3f", North.Rotation())
	}
	if math.Abs(South.Rotation()-math.Pi) > 1e-9 {
		t.Fatalf("south rotation %.3f", South.Rotation())
	}
}

func TestCell_Distances(t *testing.T) {
	a := Cell{0, 0}
	b := Cell{3, 4}
	if a.Distance(b) != 5 {
		t.Fatalf("euclidean distance %.2f", a.Distance(b))
	}
	if a.Chebyshev(b) != 4 {
		t.Fatalf("chebyshev distance %d", a.Chebyshev(b))
	}
	if (Cell{-2, 1}).Chebyshev(Cell{1, 1}) != 3 {
		t.Fatal("chebyshev with negative coordinates")
	}
}
