package viewer

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/RobotWar/internal/game"
)

var (
	colBackground = color.RGBA{R: 12, G: 14, B: 16, A: 255}
	colFloor      = color.RGBA{R: 26, G: 30, B: 34, A: 255}
	colGrid       = color.RGBA{R: 52, G: 62, B: 72, A: 255}
	colText       = color.RGBA{R: 220, G: 226, B: 232, A: 255}
	colDim        = color.RGBA{R: 140, G: 146, B: 152, A: 255}
	colRed        = color.RGBA{R: 220, G: 70, B: 70, A: 255}
	colGreen      = color.RGBA{R: 80, G: 200, B: 100, A: 255}
)

func sideColor(s game.Side) color.RGBA {
	if s == game.Red {
		return colRed
	}
	return colGreen
}

// board maps grid cells to screen pixels. Grid north (+Y) is screen up.
type board struct {
	x, y float32 // top-left pixel of the board
	cell float32 // pixels per cell
	n    int     // cells per side
}

func (b board) size() float32 { return b.cell * float32(b.n) }

// cellOrigin is the top-left pixel of c.
func (b board) cellOrigin(c game.Cell) (float32, float32) {
	return b.x + float32(c.X)*b.cell, b.y + float32(b.n-1-c.Y)*b.cell
}

func (b board) cellCenter(c game.Cell) (float32, float32) {
	x, y := b.cellOrigin(c)
	return x + b.cell/2, y + b.cell/2
}

// headingVector is the unit screen direction for h.
func headingVector(h game.Heading) (float32, float32) {
	step := h.Forward(game.Cell{})
	dx, dy := float64(step.X), -float64(step.Y)
	l := math.Hypot(dx, dy)
	return float32(dx / l), float32(dy / l)
}

func (b board) drawFloor(screen *ebiten.Image) {
	s := b.size()
	vector.FillRect(screen, b.x, b.y, s, s, colFloor, false)
	for i := 0; i <= b.n; i++ {
		off := float32(i) * b.cell
		vector.StrokeLine(screen, b.x+off, b.y, b.x+off, b.y+s, 1, colGrid, false)
		vector.StrokeLine(screen, b.x, b.y+off, b.x+s, b.y+off, 1, colGrid, false)
	}
	vector.StrokeRect(screen, b.x-2, b.y-2, s+4, s+4, 2, color.RGBA{R: 80, G: 96, B: 110, A: 255}, false)
}

func (b board) drawRobot(screen *ebiten.Image, r game.RobotSnapshot, dead bool) {
	cx, cy := b.cellCenter(r.Cell)
	c := sideColor(r.Side)
	if dead {
		c = color.RGBA{R: c.R / 3, G: c.G / 3, B: c.B / 3, A: 255}
	}
	radius := b.cell * 0.36
	vector.FillCircle(screen, cx, cy, radius, c, true)
	vector.StrokeCircle(screen, cx, cy, radius, 1.5, color.RGBA{R: 240, G: 240, B: 240, A: 200}, true)

	dx, dy := headingVector(r.Heading)
	vector.StrokeLine(screen, cx, cy, cx+dx*radius*1.4, cy+dy*radius*1.4, 3, colText, true)
}

// drawMemory marks where a robot believes its opponent is. The marker
// fades as the sighting ages.
func (b board) drawMemory(screen *ebiten.Image, r game.RobotSnapshot) {
	if !r.EnemyKnown {
		return
	}
	x, y := b.cellOrigin(r.EnemyCell)
	c := sideColor(r.Side)
	c.A = uint8(max(40, 200-r.TicksSinceEnemySeen*8))
	inset := b.cell * 0.12
	if r.Side == game.Green {
		inset = b.cell * 0.2
	}
	vector.StrokeRect(screen, x+inset, y+inset, b.cell-2*inset, b.cell-2*inset, 1.5, c, false)
}
