package tuiocanvas

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay displays the current FPS, TPS and live entity count in the
// top-left corner. The text is refreshed every ~0.5 seconds.
type fpsOverlay struct {
	img       *ebiten.Image
	sinceDraw float64
}

func newFPSOverlay() *fpsOverlay {
	// 120x48 is enough for "FPS: 60.0\nTPS: 60.0\nLive: 999".
	return &fpsOverlay{img: ebiten.NewImage(120, 48), sinceDraw: 1}
}

func (o *fpsOverlay) update(dt float64, live int) {
	o.sinceDraw += dt
	if o.sinceDraw < 0.5 {
		return
	}
	o.sinceDraw = 0

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nLive: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), live))
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, nil)
}
