package tuiocanvas

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// frameStep is the animation time advanced by one Visual.Step, in seconds.
const frameStep float32 = 1.0 / 60

// Circle is one sampled ring of a Visual. Rotation is in degrees.
type Circle struct {
	Radius    float64
	Thickness float64
	Rotation  float64
	Alpha     float64
	RGB       Color
}

// Color returns the ring color with its sampled alpha applied.
func (c Circle) Color() Color {
	return c.RGB.WithAlpha(c.Alpha)
}

// VisualStyle sets the resting shape of a Visual's rings.
type VisualStyle struct {
	Radius    float64 // resting radius of ring 0 in logical units
	Thickness float64 // resting stroke width of ring 0
	Spin      float64 // degrees per step, negative spins counter-clockwise
	Appear    float32 // appear animation length in seconds
}

var (
	// PointerStyle is used for pointer visuals.
	PointerStyle = VisualStyle{Radius: 40, Thickness: 6, Spin: 3, Appear: 0.6}
	// TokenStyle is used for token and blob visuals. Blob corner radius is
	// derived as Radius-80, so the resting value gives 20 unit corners.
	TokenStyle = VisualStyle{Radius: 100, Thickness: 8, Spin: 1.5, Appear: 0.9}
)

// ring animates one Circle. Radius, alpha and thickness settle through
// tweens; rotation spins forever.
type ring struct {
	radius    *gween.Tween
	alpha     *gween.Tween
	thickness *gween.Tween
	spin      float64
	settled   bool
	cur       Circle
}

func newRing(c Color, radius, thickness, alpha, spin float64, appear float32) *ring {
	return &ring{
		radius:    gween.New(0, float32(radius), appear, ease.OutElastic),
		alpha:     gween.New(0, float32(alpha), appear*0.5, ease.OutQuad),
		thickness: gween.New(float32(thickness)*3, float32(thickness), appear, ease.InOutSine),
		spin:      spin,
		cur:       Circle{Thickness: thickness * 3, RGB: c.WithAlpha(1)},
	}
}

func (r *ring) step(dt float32) {
	r.cur.Rotation = math.Mod(r.cur.Rotation+r.spin, 360)
	if r.settled {
		return
	}
	rad, d1 := r.radius.Update(dt)
	a, d2 := r.alpha.Update(dt)
	th, d3 := r.thickness.Update(dt)
	r.cur.Radius = float64(rad)
	r.cur.Alpha = float64(a)
	r.cur.Thickness = float64(th)
	r.settled = d1 && d2 && d3
}

// Visual holds the animation state of one entity. It is advanced once per
// drawn frame with Step and sampled with Circle.
//
// Ring 0 is the entity glyph; ring 1 is a fainter halo.
type Visual struct {
	color   Color
	pointer bool
	rings   [2]*ring
	steps   int
}

// NewVisual creates a Visual in its pre-appear state (zero radius, zero
// alpha). pointerStyle selects PointerStyle over TokenStyle.
func NewVisual(c Color, pointerStyle bool) *Visual {
	st := TokenStyle
	if pointerStyle {
		st = PointerStyle
	}
	v := &Visual{color: c, pointer: pointerStyle}
	v.rings[0] = newRing(c, st.Radius, st.Thickness, 1, st.Spin, st.Appear)
	v.rings[1] = newRing(c, st.Radius*1.25, st.Thickness/3, 0.35, -st.Spin/2, st.Appear*1.5)
	return v
}

// Step advances every ring by one frame.
func (v *Visual) Step() {
	for _, r := range v.rings {
		r.step(frameStep)
	}
	v.steps++
}

// Circle samples ring i. Out-of-range indices return a zero Circle.
func (v *Visual) Circle(i int) Circle {
	if i < 0 || i >= len(v.rings) {
		return Circle{}
	}
	return v.rings[i].cur
}

// TextColor returns the label color: the assigned color at the current
// glyph alpha.
func (v *Visual) TextColor() Color {
	return v.color.WithAlpha(v.rings[0].cur.Alpha)
}

// BaseColor returns the palette color the Visual was created with.
func (v *Visual) BaseColor() Color { return v.color }

// PointerStyle reports whether the Visual was created with PointerStyle.
func (v *Visual) PointerStyle() bool { return v.pointer }

// Steps returns how many times Step was called.
func (v *Visual) Steps() int { return v.steps }

// Settled reports whether the appear animation of every ring has finished.
func (v *Visual) Settled() bool {
	for _, r := range v.rings {
		if !r.settled {
			return false
		}
	}
	return true
}
