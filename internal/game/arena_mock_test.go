package game_test

import (
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/Garsondee/RobotWar/internal/game"
	"github.com/Garsondee/RobotWar/internal/game/mocks"
)

func TestArena_DeciderSeesPerception(t *testing.T) {
	ctrl := gomock.NewController(t)
	red := mocks.NewMockDecider(ctrl)
	green := mocks.NewMockDecider(ctrl)

	a, err := game.NewArena(game.DefaultConfig(),
		game.WithDecider(game.Red, red),
		game.WithDecider(game.Green, green))
	if err != nil {
		t.Fatalf("NewArena: %v", err)
	}
	if err := a.Place(game.Red, game.Cell{X: 1, Y: 1}, game.East); err != nil {
		t.Fatal(err)
	}
	if err := a.Place(game.Green, game.Cell{X: 8, Y: 8}, game.West); err != nil {
		t.Fatal(err)
	}
	a.Start()

	gomock.InOrder(
		red.EXPECT().Decide(gomock.Any()).DoAndReturn(func(gs game.GameState) game.Action {
			if gs.Self() != (game.Cell{X: 1, Y: 1}) || gs.Enemy() != (game.Cell{X: 8, Y: 8}) {
				t.Errorf("red perception wrong: self=%s enemy=%s", gs.Self(), gs.Enemy())
			}
			if gs.TicksSinceEnemySeen() != 0 || gs.MaxLaser() != 5 || gs.MaxRadar() != 4 {
				t.Errorf("red perception counters wrong: ticks=%d caps=%d/%d",
					gs.TicksSinceEnemySeen(), gs.MaxLaser(), gs.MaxRadar())
			}
			return game.MoveForward
		}),
		green.EXPECT().Decide(gomock.Any()).DoAndReturn(func(gs game.GameState) game.Action {
			if gs.Heading() != game.West || gs.Enemy() != (game.Cell{X: 1, Y: 1}) {
				t.Errorf("green perception wrong: heading=%s enemy=%s", gs.Heading(), gs.Enemy())
			}
			return game.TurnLeft
		}),
	)

	a.Step()
	if got := a.Robot(game.Red).Cell; got != (game.Cell{X: 2, Y: 1}) {
		t.Fatalf("red should have moved east, at %s", got)
	}
	if got := a.Robot(game.Green).Heading; got != game.West.Left() {
		t.Fatalf("green should have turned left, facing %s", got)
	}
}

func TestArena_KillSkipsSecondDecider(t *testing.T) {
	ctrl := gomock.NewController(t)
	red := mocks.NewMockDecider(ctrl)
	green := mocks.NewMockDecider(ctrl)

	a, err := game.NewArena(game.DefaultConfig(),
		game.WithDecider(game.Red, red),
		game.WithDecider(game.Green, green))
	if err != nil {
		t.Fatalf("NewArena: %v", err)
	}
	_ = a.Place(game.Red, game.Cell{X: 3, Y: 3}, game.North)
	_ = a.Place(game.Green, game.Cell{X: 3, Y: 5}, game.South)
	a.Start()
	a.SetCharges(game.Red, 2, 0)

	red.EXPECT().Decide(gomock.Any()).Return(game.FireLaser).Times(1)
	green.EXPECT().Decide(gomock.Any()).Times(0)

	a.Step()
	if !a.Outcome().WinnerIs(game.Red) {
		t.Fatalf("red should win on tick 1, got %s\n%s", a.Outcome(), a.Log().Format())
	}
	a.Step() // showing: ignored
	if a.Tick() != 1 {
		t.Fatalf("no further ticks after the kill, tick=%d", a.Tick())
	}
}
