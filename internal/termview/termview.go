// Package termview runs an arena in the terminal with bubbletea.
package termview

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Garsondee/RobotWar/internal/game"
)

// frameInterval is how often the model feeds the clock to the arena.
const frameInterval = 50 * time.Millisecond

// recentLines is how many match log lines are shown under the board.
const recentLines = 8

// NewArenaFunc builds a fresh, unstarted arena.
type NewArenaFunc func() (*game.Arena, error)

// TickMsg carries the wall-clock time of a frame.
type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Model is the bubbletea model wrapping one arena.
type Model struct {
	newArena NewArenaFunc
	arena    *game.Arena

	clock  time.Duration // simulated time passed to Advance
	last   time.Time     // wall time of the previous frame
	paused bool
	err    error
}

// New builds and starts the first arena.
func New(newArena NewArenaFunc) (Model, error) {
	m := Model{newArena: newArena}
	if err := m.restart(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) restart() error {
	a, err := m.newArena()
	if err != nil {
		return fmt.Errorf("build arena: %w", err)
	}
	a.Start()
	m.arena = a
	m.clock = 0
	m.last = time.Time{}
	return nil
}

// Arena is the arena being shown.
func (m Model) Arena() *game.Arena { return m.arena }

// Err is the last restart error, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "p", " ":
			m.paused = !m.paused
			m.last = time.Time{}
		case "n":
			if m.paused {
				m.arena.Step()
			}
		case "r":
			if err := m.restart(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
	case TickMsg:
		now := time.Time(msg)
		if !m.paused {
			if !m.last.IsZero() {
				m.clock += now.Sub(m.last)
			}
			m.last = now
			m.arena.Advance(m.clock)
		}
		return m, tickCmd()
	}
	return m, nil
}

func (m Model) View() string {
	snap := m.arena.Snapshot()
	var sb strings.Builder
	fmt.Fprintf(&sb, "T=%03d  %s", snap.Tick, snap.State)
	if m.paused {
		sb.WriteString("  [paused]")
	}
	sb.WriteString("\n\n")
	sb.WriteString(RenderBoard(snap))
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "%s\n%s\n", robotLine(snap.Red, snap), robotLine(snap.Green, snap))
	if snap.Outcome.Decided() {
		fmt.Fprintf(&sb, "\n  *** %s ***\n", snap.Outcome.Result())
	}

	sb.WriteByte('\n')
	for _, e := range m.arena.Log().Tail(recentLines) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	sb.WriteString("\nq quit  p pause  n step  r restart\n")
	return sb.String()
}

func robotLine(r game.RobotSnapshot, snap game.ArenaSnapshot) string {
	return fmt.Sprintf("%-5s %-7s %-2s laser %d/%d  radar %d/%d  enemy@%s (%d ago)",
		r.Side, r.Cell, r.Heading, r.LaserCharge, snap.MaxLaser, r.RadarCharge, snap.MaxRadar,
		r.EnemyCell, r.TicksSinceEnemySeen)
}

// headingGlyphs is indexed by game.Heading.
var headingGlyphs = [8]rune{'^', '\\', '<', '/', 'v', '\\', '>', '/'}

// RenderBoard draws the grid with north at the top. Robots show as their
// side letter followed by a heading glyph; cells crossed by this tick's
// laser shots show '*'.
func RenderBoard(snap game.ArenaSnapshot) string {
	n := snap.GridSize
	beam := map[game.Cell]bool{}
	for _, s := range snap.Shots {
		c := s.From
		for i := 0; i < s.Range; i++ {
			c = s.Heading.Forward(c)
			beam[c] = true
		}
	}

	var sb strings.Builder
	sb.WriteString("+" + strings.Repeat("--", n) + "+\n")
	for y := n - 1; y >= 0; y-- {
		sb.WriteByte('|')
		for x := 0; x < n; x++ {
			c := game.Cell{X: x, Y: y}
			switch {
			case c == snap.Red.Cell && c == snap.Green.Cell:
				sb.WriteString("XX")
			case c == snap.Red.Cell:
				sb.WriteString("R" + string(headingGlyphs[snap.Red.Heading]))
			case c == snap.Green.Cell:
				sb.WriteString("G" + string(headingGlyphs[snap.Green.Heading]))
			case beam[c]:
				sb.WriteString("**")
			default:
				sb.WriteString(" .")
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("+" + strings.Repeat("--", n) + "+\n")
	return sb.String()
}
