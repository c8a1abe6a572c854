// Package viewer renders an arena with ebiten and drives it from the
// frame loop.
package viewer

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/RobotWar/internal/game"
)

const (
	borderWidth = 24
	headerH     = 28
	minBoardPx  = 480
	footerH     = 44
)

// speeds are the clock multipliers cycled with , and .
var speeds = []float64{0.25, 0.5, 1, 2, 4, 8}

// NewArenaFunc builds a fresh, unstarted arena. It is called at startup and
// on every restart.
type NewArenaFunc func() (*game.Arena, error)

// Game is the ebiten.Game for a single arena.
type Game struct {
	newArena NewArenaFunc
	arena    *game.Arena
	logger   *slog.Logger

	width, height int
	board         board

	text    *textDrawer
	feed    *Feed
	fx      effects
	logSeen int // match log entries already copied into the feed

	clock    time.Duration // simulated time passed to Advance
	speedIdx int
	paused   bool
	showHUD  bool
	status   string // transient message shown in the footer
	statusT  int    // frames left for status
	prevKeys map[ebiten.Key]bool
}

// New builds the first arena and lays out a window sized for its grid.
func New(newArena NewArenaFunc, logger *slog.Logger) (*Game, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	g := &Game{
		newArena: newArena,
		logger:   logger,
		text:     newTextDrawer(),
		feed:     NewFeed(),
		speedIdx: 2,
		showHUD:  true,
		prevKeys: make(map[ebiten.Key]bool),
	}
	if err := g.restart(); err != nil {
		return nil, err
	}

	n := g.arena.Config().GridSize
	cell := max(16, minBoardPx/n)
	boardPx := cell * n
	g.board = board{x: borderWidth, y: borderWidth + headerH, cell: float32(cell), n: n}
	g.width = borderWidth + boardPx + borderWidth + feedPanelWidth
	g.height = borderWidth + headerH + boardPx + footerH + borderWidth
	return g, nil
}

// Size is the window size the game lays out at.
func (g *Game) Size() (int, int) { return g.width, g.height }

// Arena is the arena currently on screen.
func (g *Game) Arena() *game.Arena { return g.arena }

func (g *Game) restart() error {
	a, err := g.newArena()
	if err != nil {
		return fmt.Errorf("build arena: %w", err)
	}
	a.Start()
	g.arena = a
	g.clock = 0
	g.logSeen = 0
	g.fx.reset()
	g.feed.Reset()
	g.pullLog()
	g.logger.Info("arena ready", "grid", a.Config().GridSize, "interval", a.Config().TickInterval)
	return nil
}

// Update advances the simulated clock by one frame and lets the arena
// decide whether a tick is due.
func (g *Game) Update() error {
	if err := g.handleInput(); err != nil {
		return err
	}
	g.fx.age()
	if g.statusT > 0 {
		g.statusT--
	}
	if g.paused {
		return nil
	}
	g.clock += frameDuration(ebiten.TPS(), speeds[g.speedIdx])
	g.advance()
	return nil
}

// advance feeds the clock to the arena and collects what the step produced.
func (g *Game) advance() {
	if g.arena.Advance(g.clock) {
		g.fx.capture(g.arena.Snapshot())
	}
	g.pullLog()
}

// pullLog copies new match log entries into the on-screen feed.
func (g *Game) pullLog() {
	entries := g.arena.Log().Entries()
	for _, e := range entries[g.logSeen:] {
		if e.Category == "decide" && e.Key == "action" {
			continue
		}
		g.feed.AddLogEntry(e)
	}
	g.logSeen = len(entries)
}

// frameDuration is the simulated time one frame represents.
func frameDuration(tps int, speed float64) time.Duration {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Duration(float64(time.Second) / float64(tps) * speed)
}

func (g *Game) pressed(cur map[ebiten.Key]bool, k ebiten.Key) bool {
	cur[k] = ebiten.IsKeyPressed(k)
	return cur[k] && !g.prevKeys[k]
}

func (g *Game) handleInput() error {
	cur := map[ebiten.Key]bool{}
	defer func() { g.prevKeys = cur }()

	pause := g.pressed(cur, ebiten.KeyP)
	if g.pressed(cur, ebiten.KeySpace) || pause {
		g.paused = !g.paused
	}
	if g.pressed(cur, ebiten.KeyComma) && g.speedIdx > 0 {
		g.speedIdx--
	}
	if g.pressed(cur, ebiten.KeyPeriod) && g.speedIdx < len(speeds)-1 {
		g.speedIdx++
	}
	if g.pressed(cur, ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if g.pressed(cur, ebiten.KeyN) && g.paused {
		// Single step while paused.
		if g.arena.State() == game.StateRunning {
			g.arena.Step()
			g.fx.capture(g.arena.Snapshot())
			g.pullLog()
		}
	}
	if g.pressed(cur, ebiten.KeyC) {
		g.copyLog()
	}
	if g.pressed(cur, ebiten.KeyR) {
		if err := g.restart(); err != nil {
			return err
		}
		g.setStatus("restarted")
	}
	return nil
}

func (g *Game) copyLog() {
	if err := clipboard.WriteAll(g.arena.Log().Format()); err != nil {
		g.logger.Warn("copy match log", "err", err)
		g.setStatus("clipboard unavailable")
		return
	}
	g.setStatus(fmt.Sprintf("copied %d log lines", len(g.arena.Log().Entries())))
}

func (g *Game) setStatus(s string) {
	g.status = s
	g.statusT = 120
}

// Draw renders the board, both robots, active effects and the panels.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)
	snap := g.arena.Snapshot()

	g.board.drawFloor(screen)
	g.board.drawMemory(screen, snap.Red)
	g.board.drawMemory(screen, snap.Green)
	g.fx.draw(screen, g.board)
	for _, r := range []game.RobotSnapshot{snap.Red, snap.Green} {
		dead := snap.Outcome.Kind == game.OutcomeKill && snap.Outcome.Winner != r.Side
		g.board.drawRobot(screen, r, dead)
	}

	g.drawHeader(screen, snap)
	if g.showHUD {
		g.drawFooter(screen)
	}
	if snap.Outcome.Decided() {
		g.drawBanner(screen, snap.Outcome)
	}
	g.feed.Draw(screen, g.text, g.width-feedPanelWidth, g.height)
}

func (g *Game) drawHeader(screen *ebiten.Image, snap game.ArenaSnapshot) {
	x := int(g.board.x)
	y := borderWidth
	g.text.Draw(screen, fmt.Sprintf("T=%03d  %s", snap.Tick, snap.State), x, y, colText)
	g.text.Draw(screen, chargeLine(snap.Red, snap.MaxLaser, snap.MaxRadar), x+110, y, colRed)
	g.text.Draw(screen, chargeLine(snap.Green, snap.MaxLaser, snap.MaxRadar), x+110, y+13, colGreen)
}

func chargeLine(r game.RobotSnapshot, maxLaser, maxRadar int) string {
	return fmt.Sprintf("%-5s %s %-2s laser %d/%d radar %d/%d seen %d ago",
		r.Side, r.Cell, r.Heading, r.LaserCharge, maxLaser, r.RadarCharge, maxRadar, r.TicksSinceEnemySeen)
}

func (g *Game) drawFooter(screen *ebiten.Image) {
	x := int(g.board.x)
	y := int(g.board.y+g.board.size()) + 10
	speed := fmt.Sprintf("%gx", speeds[g.speedIdx])
	if g.paused {
		speed = "PAUSED"
	}
	g.text.Draw(screen, fmt.Sprintf("%s  P=pause N=step ,/.=speed R=restart C=copy log H=hide", speed), x, y, colDim)
	if g.statusT > 0 {
		g.text.Draw(screen, g.status, x, y+15, colText)
	}
}

func (g *Game) drawBanner(screen *ebiten.Image, o game.Outcome) {
	msg := o.Result()
	const scale = 3.0
	w := float32(g.text.Width(msg) * scale)
	h := float32(13 * scale)
	s := g.board.size()
	bx := g.board.x + (s-w)/2
	by := g.board.y + (s-h)/2
	vector.FillRect(screen, bx-12, by-8, w+24, h+16, color.RGBA{R: 0, G: 0, B: 0, A: 200}, false)
	c := colText
	switch {
	case o.WinnerIs(game.Red):
		c = colRed
	case o.WinnerIs(game.Green):
		c = colGreen
	}
	vector.StrokeRect(screen, bx-12, by-8, w+24, h+16, 2, c, false)
	g.text.DrawScaled(screen, msg, int(bx), int(by), scale, c)
}

// Layout returns the fixed window size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
