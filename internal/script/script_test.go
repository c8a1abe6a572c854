package script

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/participle/v2"

	"github.com/Garsondee/RobotWar/internal/game"
)

// open is a robot in the middle of a 10x10 board facing north.
func open() game.GameState {
	return game.NewGameState(game.Perception{
		Self: game.Cell{X: 5, Y: 5}, Heading: game.North,
		EnemyKnown: true, Enemy: game.Cell{X: 0, Y: 0}, TicksSinceEnemySeen: 4,
		LaserCharge: 2, MaxLaser: 5, RadarCharge: 0, MaxRadar: 4,
		Width: 10, Height: 10,
	})
}

// walled is a robot on the north edge facing north.
func walled() game.GameState {
	return game.NewGameState(game.Perception{
		Self: game.Cell{X: 5, Y: 9}, Heading: game.North,
		EnemyKnown: true, Enemy: game.Cell{X: 0, Y: 0}, TicksSinceEnemySeen: 4,
		MaxLaser: 5, MaxRadar: 4, Width: 10, Height: 10,
	})
}

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	p, err := Parse("test", src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return p
}

func decide(r *Runner, gs game.GameState, n int) []game.Action {
	out := make([]game.Action, n)
	for i := range out {
		out[i] = r.Decide(gs)
	}
	return out
}

func assertActions(t *testing.T, got []game.Action, want ...game.Action) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d actions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("action %d: got %s want %s (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestRunner_SequenceWraps(t *testing.T) {
	r := mustParse(t, "forward left right").Decider()
	assertActions(t, decide(r, open(), 5),
		game.MoveForward, game.TurnLeft, game.TurnRight, game.MoveForward, game.TurnLeft)
}

func TestRunner_Repeat(t *testing.T) {
	r := mustParse(t, "repeat 2 { forward } fire").Decider()
	assertActions(t, decide(r, open(), 6),
		game.MoveForward, game.MoveForward, game.FireLaser,
		game.MoveForward, game.MoveForward, game.FireLaser)
}

func TestRunner_NestedRepeat(t *testing.T) {
	r := mustParse(t, "repeat 2 { repeat 2 { left } radar }").Decider()
	assertActions(t, decide(r, open(), 6),
		game.TurnLeft, game.TurnLeft, game.Radar,
		game.TurnLeft, game.TurnLeft, game.Radar)
}

func TestRunner_RepeatZeroSkipsBody(t *testing.T) {
	r := mustParse(t, "repeat 0 { fire } forward").Decider()
	assertActions(t, decide(r, open(), 2), game.MoveForward, game.MoveForward)
}

func TestRunner_IfElse(t *testing.T) {
	p := mustParse(t, "if wall { left } else { forward }")
	assertActions(t, decide(p.Decider(), open(), 1), game.MoveForward)
	assertActions(t, decide(p.Decider(), walled(), 1), game.TurnLeft)
}

func TestRunner_NotCondition(t *testing.T) {
	p := mustParse(t, "if not laser { radar } fire")
	// open has laser charge: the branch is skipped.
	assertActions(t, decide(p.Decider(), open(), 2), game.FireLaser, game.FireLaser)
	assertActions(t, decide(p.Decider(), walled(), 2), game.Radar, game.FireLaser)
}

func TestRunner_IdleProgramTurnsLeft(t *testing.T) {
	for _, src := range []string{"", "# nothing\n", "if wall { fire }", "repeat 3 { }"} {
		r := mustParse(t, src).Decider()
		assertActions(t, decide(r, open(), 2), game.TurnLeft, game.TurnLeft)
	}
}

func TestRunner_IndependentCursors(t *testing.T) {
	p := mustParse(t, "forward fire")
	a, b := p.Decider(), p.Decider()
	a.Decide(open())
	if got := b.Decide(open()); got != game.MoveForward {
		t.Fatalf("second runner should start at the top, got %s", got)
	}
	if a.PC() != 1 {
		t.Fatalf("first runner should be at instruction 1, got %d", a.PC())
	}
	a.Reset()
	if a.PC() != 0 {
		t.Fatal("reset should rewind")
	}
}

func TestCond_Sensors(t *testing.T) {
	inLine := game.NewGameState(game.Perception{
		Self: game.Cell{X: 2, Y: 2}, Heading: game.East,
		EnemyKnown: true, Enemy: game.Cell{X: 4, Y: 2}, TicksSinceEnemySeen: 1,
		LaserCharge: 2, MaxLaser: 5, RadarCharge: 1, MaxRadar: 4,
		Width: 10, Height: 10,
	})
	cases := []struct {
		cond Cond
		gs   game.GameState
		want bool
	}{
		{Cond{Sensor: "wall"}, walled(), true},
		{Cond{Sensor: "wall"}, open(), false},
		{Cond{Sensor: "laser"}, open(), true},
		{Cond{Sensor: "radar"}, open(), false},
		{Cond{Sensor: "radar"}, inLine, true},
		{Cond{Sensor: "seen"}, inLine, true},
		{Cond{Sensor: "seen"}, open(), false},
		{Cond{Sensor: "inrange"}, inLine, true},
		{Cond{Sensor: "inrange"}, open(), false},
		{Cond{Not: true, Sensor: "inrange"}, open(), true},
	}
	for _, tc := range cases {
		if got := tc.cond.Eval(tc.gs); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.cond, got, tc.want)
		}
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	_, err := Parse("bot.rw", "forward\nrepeat x { left }")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	var perr participle.Error
	if !errors.As(err, &perr) {
		t.Fatalf("error should wrap a participle error, got %T: %v", err, err)
	}
	if perr.Position().Line != 2 {
		t.Fatalf("error should point at line 2, got %s", perr.Position())
	}
	if !strings.Contains(err.Error(), "bot.rw") {
		t.Fatalf("error should name the script: %v", err)
	}
}

func TestParse_RejectsUnknownWords(t *testing.T) {
	for _, src := range []string{"jump", "if lava { left }", "repeat 2 forward", "if wall { left"} {
		if _, err := Parse("t", src); err == nil {
			t.Fatalf("%q should not parse", src)
		}
	}
}

func TestProgram_Disassembly(t *testing.T) {
	p := mustParse(t, "repeat 2 { if not wall { forward } else { right } }")
	want := []string{"repeat s0=2", "unless not wall", "act    moveForward", "jump", "act    turnRight", "next   s0"}
	got := strings.Split(strings.TrimSpace(p.String()), "\n")
	if len(got) != len(want) || p.Len() != len(want) {
		t.Fatalf("unexpected listing:\n%s", p)
	}
	for i := range want {
		if !strings.Contains(got[i], want[i]) {
			t.Fatalf("line %d: %q does not contain %q", i, got[i], want[i])
		}
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hunter.rw")
	if err := os.WriteFile(path, []byte("# hunter\nif inrange { fire } else { forward }\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if p.Name != path || p.Len() != 4 {
		t.Fatalf("unexpected program %q len=%d", p.Name, p.Len())
	}
	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.rw")); err == nil {
		t.Fatal("missing file should fail")
	}
}

func TestRunner_DrivesArena(t *testing.T) {
	hunter := mustParse(t, "if inrange { fire } else { forward }")
	m, err := game.NewMatch(
		game.WithGridSize(4),
		game.WithRed(0, 0, game.NorthEast),
		game.WithGreen(3, 3, game.SouthWest),
		game.WithRedDecider(hunter.Decider()),
		game.WithGreenDecider(mustParse(t, "left").Decider()),
	)
	if err != nil {
		t.Fatal(err)
	}
	m.RunTicks(10)
	if !m.Arena.Outcome().WinnerIs(game.Red) || m.Tick() != 3 {
		t.Fatalf("hunter script should win on tick 3, got %s at %d\n%s",
			m.Arena.Outcome(), m.Tick(), m.Log.Format())
	}
}
