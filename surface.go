package tuiocanvas

import "image"

// Stroke describes how StrokePath outlines a path.
type Stroke struct {
	Color Color
	Width float64 // in local units, scaled by the current transform
}

// TextStyle describes a FillText call.
type TextStyle struct {
	Color Color
	Size  float64 // font size in local units
	Align TextAlign
}

// Surface is the drawable the canvas renders into. It mirrors the small part
// of an HTML canvas 2D context the renderer needs: a current transform and a
// handful of fill/stroke/text/image operations that honor it.
//
// Implementations: EbitenSurface (windowed) and GGSurface (headless).
type Surface interface {
	// Size returns the surface size in pixels.
	Size() Size
	// Transform returns the current transform.
	Transform() Affine
	// SetTransform replaces the current transform.
	SetTransform(m Affine)
	// Clear makes the pixel-space rectangle fully transparent. It ignores
	// the current transform.
	Clear(r Rect)
	// FillRect fills a rectangle given in local units.
	FillRect(r Rect, c Color)
	// StrokePath outlines a path given in local units.
	StrokePath(p *Path, s Stroke)
	// FillText draws a single line of text whose baseline starts (or ends,
	// or is centered, per style.Align) at (x, y) in local units.
	FillText(s string, x, y float64, style TextStyle)
	// DrawImage draws img scaled into the local rectangle (x, y, w, h).
	DrawImage(img image.Image, x, y, w, h float64)
}

// Translate applies a local translation to the surface transform.
func Translate(s Surface, x, y float64) { s.SetTransform(s.Transform().Translate(x, y)) }

// Rotate applies a local rotation (radians) to the surface transform.
func Rotate(s Surface, angle float64) { s.SetTransform(s.Transform().Rotate(angle)) }

// Scale applies a local scale to the surface transform.
func Scale(s Surface, sx, sy float64) { s.SetTransform(s.Transform().Scale(sx, sy)) }

// withTransform runs fn with the surface transform temporarily changed by
// fn's own Translate/Rotate/Scale calls and restores the prior transform on
// every exit path, including panics.
func withTransform(s Surface, fn func()) {
	saved := s.Transform()
	defer s.SetTransform(saved)
	fn()
}

// transformStack is the transform state shared by the concrete surfaces.
type transformStack struct {
	m Affine
}

func newTransformStack() transformStack { return transformStack{m: Identity} }

func (t *transformStack) Transform() Affine     { return t.m }
func (t *transformStack) SetTransform(m Affine) { t.m = m }
