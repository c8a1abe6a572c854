package termview

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Garsondee/RobotWar/internal/game"
)

func spinners() (*game.Arena, error) {
	cfg := game.DefaultConfig()
	cfg.GridSize = 4
	a, err := game.NewArena(cfg)
	if err != nil {
		return nil, err
	}
	spin := game.DeciderFunc(func(game.GameState) game.Action { return game.TurnRight })
	a.SetDecider(game.Red, spin)
	a.SetDecider(game.Green, spin)
	_ = a.Place(game.Red, game.Cell{X: 0, Y: 0}, game.East)
	_ = a.Place(game.Green, game.Cell{X: 3, Y: 3}, game.West)
	return a, nil
}

func TestRenderBoard_NorthAtTop(t *testing.T) {
	a, _ := spinners()
	a.Start()
	lines := strings.Split(RenderBoard(a.Snapshot()), "\n")
	// Border, then y=3 down to y=0.
	if !strings.Contains(lines[1], "G<") {
		t.Fatalf("green at y=3 should be on the top row: %q", lines[1])
	}
	if !strings.HasPrefix(lines[4], "|R>") {
		t.Fatalf("red at the origin should be bottom-left: %q", lines[4])
	}
}

func TestRenderBoard_LaserBeam(t *testing.T) {
	snap := game.ArenaSnapshot{
		GridSize: 4,
		Red:      game.RobotSnapshot{Side: game.Red, Cell: game.Cell{X: 0, Y: 1}, Heading: game.East},
		Green:    game.RobotSnapshot{Side: game.Green, Cell: game.Cell{X: 3, Y: 3}, Heading: game.South},
		Shots:    []game.LaserShot{{Side: game.Red, From: game.Cell{X: 0, Y: 1}, Heading: game.East, Range: 2}},
	}
	lines := strings.Split(RenderBoard(snap), "\n")
	if lines[3] != "|R>**** .|" {
		t.Fatalf("beam row rendered as %q", lines[3])
	}
}

func TestModel_TicksDriveArena(t *testing.T) {
	m, err := New(spinners)
	if err != nil {
		t.Fatal(err)
	}
	start := time.Unix(1000, 0)
	var model tea.Model = m
	for i := 0; i <= 40; i++ {
		model, _ = model.Update(TickMsg(start.Add(time.Duration(i) * frameInterval)))
	}
	// 40 frames of 50ms is 2s of clock; the first tick only starts it, so
	// steps land after 550ms, 1100ms, 1650ms.
	got := model.(Model).Arena().Tick()
	if got != 3 {
		t.Fatalf("expected 3 ticks, got %d", got)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	model, _ = model.Update(TickMsg(start.Add(10 * time.Second)))
	if model.(Model).Arena().Tick() != 3 {
		t.Fatal("paused model should not advance")
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if model.(Model).Arena().Tick() != 4 {
		t.Fatal("n should single-step while paused")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if model.(Model).Arena().Tick() != 0 {
		t.Fatal("r should restart the arena")
	}
	if !strings.Contains(model.View(), "T=000") {
		t.Fatalf("view should show the fresh arena:\n%s", model.View())
	}
}

func TestModel_Quit(t *testing.T) {
	m, err := New(spinners)
	if err != nil {
		t.Fatal(err)
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c should quit")
	}
}
