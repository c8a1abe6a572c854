package game

import (
	"math"
	"testing"
)

func TestGameState_Defaults(t *testing.T) {
	gs := NewGameState(Perception{})
	if gs.TicksSinceEnemySeen() != unknownEnemyTicks {
		t.Fatalf("unknown enemy should default to %d ticks, got %d", unknownEnemyTicks, gs.TicksSinceEnemySeen())
	}
	if gs.MaxLaser() != 1 {
		t.Fatalf("missing max laser should default to 1, got %d", gs.MaxLaser())
	}
	if gs.MaximumDistance() != 0 {
		t.Fatalf("zero-size arena diagonal should be 0, got %.2f", gs.MaximumDistance())
	}
}

func TestGameState_NegativeInputsClamped(t *testing.T) {
	gs := NewGameState(Perception{
		EnemyKnown:          true,
		TicksSinceEnemySeen: -4,
		LaserCharge:         -1,
		RadarCharge:         -2,
		MaxRadar:            -3,
		Width:               -5,
	})
	if gs.TicksSinceEnemySeen() != 0 || gs.LaserCharge() != 0 || gs.RadarCharge() != 0 || gs.MaxRadar() != 0 || gs.Width() != 0 {
		t.Fatalf("negative inputs not clamped: %+v", gs)
	}
}

func TestGameState_Distances(t *testing.T) {
	gs := NewGameState(Perception{
		Self:       Cell{0, 0},
		EnemyKnown: true,
		Enemy:      Cell{3, 4},
		Width:      6,
		Height:     8,
	})
	if gs.EnemyDistance() != 5 {
		t.Fatalf("enemy distance %.2f", gs.EnemyDistance())
	}
	if gs.EnemyDistanceFrom(Cell{3, 0}) != 4 {
		t.Fatalf("enemy distance from (3,0) %.2f", gs.EnemyDistanceFrom(Cell{3, 0}))
	}
	if gs.MaximumDistance() != 10 {
		t.Fatalf("diagonal %.2f", gs.MaximumDistance())
	}
}

func TestGameState_Bounds(t *testing.T) {
	gs := NewGameState(Perception{Width: 4, Height: 3})
	cases := []struct {
		c  Cell
		in bool
	}{
		{Cell{0, 0}, true},
		{Cell{3, 2}, true},
		{Cell{4, 0}, false},
		{Cell{0, 3}, false},
		{Cell{-1, 1}, false},
	}
	for _, tc := range cases {
		if got := gs.IsInBounds(tc.c); got != tc.in {
			t.Fatalf("IsInBounds(%s) = %v, want %v", tc.c, got, tc.in)
		}
	}
}

func TestGameState_FacingWall(t *testing.T) {
	edge := NewGameState(Perception{Self: Cell{3, 1}, Heading: East, Width: 4, Height: 4})
	if !edge.IsFacingWall() {
		t.Fatal("robot on east edge facing east should face a wall")
	}
	open := NewGameState(Perception{Self: Cell{3, 1}, Heading: West, Width: 4, Height: 4})
	if open.IsFacingWall() {
		t.Fatal("robot facing into the arena should not face a wall")
	}
}

func TestGameState_ForwardCells(t *testing.T) {
	gs := NewGameState(Perception{Self: Cell{1, 1}, Heading: North, Width: 4, Height: 4})
	if got := gs.ForwardCell(NorthEast); got != (Cell{2, 2}) {
		t.Fatalf("forward NE %s", got)
	}
	// Three steps north from y=1 leaves a 4-high arena; the view still reports it.
	got := gs.ForwardCells(North, 3)
	if got != (Cell{1, 4}) {
		t.Fatalf("forward 3 cells %s", got)
	}
	if gs.IsInBounds(got) {
		t.Fatal("(1,4) should be out of bounds")
	}
	if gs.ForwardCells(North, 0) != gs.Self() {
		t.Fatal("zero steps should stay put")
	}
}

func TestGameState_MaximumDistanceIsDiagonal(t *testing.T) {
	gs := NewGameState(Perception{Width: 10, Height: 10})
	if math.Abs(gs.MaximumDistance()-math.Sqrt(200)) > 1e-9 {
		t.Fatalf("diagonal %.4f", gs.MaximumDistance())
	}
}
