package viewer

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// textDrawer renders HUD text with the 7x13 bitmap face.
type textDrawer struct {
	face *text.GoXFace
}

func newTextDrawer() *textDrawer {
	return &textDrawer{face: text.NewGoXFace(basicfont.Face7x13)}
}

// Draw writes s with its top-left corner at (x, y).
func (t *textDrawer) Draw(dst *ebiten.Image, s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, t.face, op)
}

// DrawScaled writes s enlarged by scale.
func (t *textDrawer) DrawScaled(dst *ebiten.Image, s string, x, y int, scale float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, t.face, op)
}

// Width is the advance of s in pixels at scale 1.
func (t *textDrawer) Width(s string) float64 {
	w, _ := text.Measure(s, t.face, 0)
	return w
}
