package tuiocanvas

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrNotTickQueue is returned by NewGame when the canvas is driven by a
// scheduler other than a *TickQueue; the host has no other way to run it.
var ErrNotTickQueue = errors.New("tuiocanvas: host requires a *TickQueue scheduler")

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	// ShowFPS draws an FPS/TPS counter in the top-left corner.
	ShowFPS bool
	// ScreenshotDir receives PNGs queued on Screenshots. Defaults to
	// "screenshots".
	ScreenshotDir string
	// Screenshots, when set, is used instead of a queue built from
	// ScreenshotDir, so session scripts can share it.
	Screenshots *Screenshots
	// Font renders labels. Defaults to DefaultLabelFont.
	Font *LabelFont
	// Update runs once per tick before the canvas draws, typically to drain
	// a tuio.Client and step a simulator. A non-nil error ends the game.
	Update func() error
}

// Game adapts a Canvas to ebiten.Game. Use Run for the common case, or
// NewGame when embedding the canvas in an existing ebiten program.
//
// The canvas is mounted and started when the game is created, so entities
// registered by the first Update survive into the first Draw. Each Draw
// runs the ticks the render loop requested since the previous Draw.
type Game struct {
	canvas  *Canvas
	ticks   *TickQueue
	surface *EbitenSurface
	shots   *Screenshots
	fps     *fpsOverlay
	update  func() error

	width, height int
}

// NewGame wires a canvas to an ebiten game, mounting and starting it unless
// a surface is already mounted. The canvas must use a *TickQueue scheduler
// (the NewCanvas default).
func NewGame(c *Canvas, cfg RunConfig) (*Game, error) {
	ticks, ok := c.Scheduler().(*TickQueue)
	if !ok {
		return nil, ErrNotTickQueue
	}
	font := cfg.Font
	if font == nil {
		var err error
		if font, err = DefaultLabelFont(); err != nil {
			return nil, err
		}
	}
	shots := cfg.Screenshots
	if shots == nil {
		shots = NewScreenshots(cfg.ScreenshotDir)
	}
	g := &Game{
		canvas:  c,
		ticks:   ticks,
		surface: NewEbitenSurface(font),
		shots:   shots,
		update:  cfg.Update,
	}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	if !c.Mounted() {
		c.Mount(g.surface)
		c.Start()
	}
	return g, nil
}

// Screenshots returns the capture queue flushed at the end of every Draw.
func (g *Game) Screenshots() *Screenshots { return g.shots }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.update != nil {
		if err := g.update(); err != nil {
			return err
		}
	}
	if g.fps != nil {
		g.fps.update(1/float64(ebiten.TPS()), g.canvas.Registry().Total())
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.SetTarget(screen)
	g.canvas.Resize(g.width, g.height)
	g.ticks.RunPending()

	if g.fps != nil {
		g.fps.draw(screen)
	}
	g.shots.FlushEbiten(screen)
}

// Layout implements ebiten.Game. The canvas always matches the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens a window and renders c until the window is closed or
// cfg.Update returns an error. The canvas is destroyed on return.
func Run(c *Canvas, cfg RunConfig) error {
	g, err := NewGame(c, cfg)
	if err != nil {
		return err
	}
	defer c.Destroy()

	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(g)
}
