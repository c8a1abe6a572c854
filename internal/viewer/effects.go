package viewer

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/RobotWar/internal/game"
)

// effectLifetime is how many frames a laser or radar effect stays visible.
const effectLifetime = 30

// laserEffect is a fading beam for one laser shot.
type laserEffect struct {
	shot game.LaserShot
	age  int
}

func (e *laserEffect) done() bool { return e.age >= effectLifetime }

func (e *laserEffect) draw(screen *ebiten.Image, b board) {
	fade := 1 - float32(e.age)/effectLifetime
	fx, fy := b.cellCenter(e.shot.From)
	tx, ty := b.cellCenter(e.shot.To)
	c := sideColor(e.shot.Side)
	c.A = uint8(230 * fade)
	vector.StrokeLine(screen, fx, fy, tx, ty, 3, c, false)
	vector.StrokeLine(screen, fx, fy, tx, ty, 1, color.RGBA{R: 255, G: 255, B: 230, A: uint8(255 * fade)}, false)
	if e.shot.Hit && e.age < effectLifetime/2 {
		vector.FillCircle(screen, tx, ty, b.cell/2, color.RGBA{R: 255, G: 230, B: 160, A: uint8(200 * fade)}, false)
	}
}

// radarEffect is an expanding square sweep; radar range is Chebyshev so the
// covered area is a square of cells.
type radarEffect struct {
	ping game.RadarPing
	age  int
}

func (e *radarEffect) done() bool { return e.age >= effectLifetime }

func (e *radarEffect) draw(screen *ebiten.Image, b board) {
	progress := float32(e.age) / effectLifetime
	cx, cy := b.cellCenter(e.ping.Center)
	half := (float32(e.ping.Radius) + 0.5) * b.cell * progress
	c := sideColor(e.ping.Side)
	c.A = uint8(160 * (1 - progress))
	vector.StrokeRect(screen, cx-half, cy-half, half*2, half*2, 2, c, false)
	if e.ping.Revealed {
		vector.FillRect(screen, cx-half, cy-half, half*2, half*2, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A / 4}, false)
	}
}

// effects holds the visual effects currently on screen.
type effects struct {
	lasers []*laserEffect
	radars []*radarEffect
}

// capture adds effects for everything the last step produced.
func (fx *effects) capture(snap game.ArenaSnapshot) {
	for _, s := range snap.Shots {
		fx.lasers = append(fx.lasers, &laserEffect{shot: s})
	}
	for _, p := range snap.Pings {
		fx.radars = append(fx.radars, &radarEffect{ping: p})
	}
}

// age advances every effect by one frame and drops finished ones.
func (fx *effects) age() {
	lasers := fx.lasers[:0]
	for _, e := range fx.lasers {
		e.age++
		if !e.done() {
			lasers = append(lasers, e)
		}
	}
	fx.lasers = lasers

	radars := fx.radars[:0]
	for _, e := range fx.radars {
		e.age++
		if !e.done() {
			radars = append(radars, e)
		}
	}
	fx.radars = radars
}

func (fx *effects) reset() {
	fx.lasers = fx.lasers[:0]
	fx.radars = fx.radars[:0]
}

func (fx *effects) draw(screen *ebiten.Image, b board) {
	for _, e := range fx.radars {
		e.draw(screen, b)
	}
	for _, e := range fx.lasers {
		e.draw(screen, b)
	}
}
