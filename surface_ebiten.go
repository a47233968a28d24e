package tuiocanvas

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenSurface draws into an ebiten.Image. The target is swapped every
// frame by the host (the screen image handed to ebiten.Game.Draw); all
// operations are no-ops while no target is set.
type EbitenSurface struct {
	transformStack

	target *ebiten.Image
	font   *LabelFont
	images map[image.Image]*ebiten.Image

	vpath vector.Path
}

// NewEbitenSurface creates a surface that renders labels with font. A nil
// font disables text.
func NewEbitenSurface(font *LabelFont) *EbitenSurface {
	return &EbitenSurface{
		transformStack: newTransformStack(),
		font:           font,
		images:         make(map[image.Image]*ebiten.Image),
	}
}

// SetTarget sets the image subsequent operations draw into.
func (s *EbitenSurface) SetTarget(img *ebiten.Image) {
	s.target = img
}

// Target returns the current target image.
func (s *EbitenSurface) Target() *ebiten.Image { return s.target }

// Size returns the target size in pixels, or a zero Size with no target.
func (s *EbitenSurface) Size() Size {
	if s.target == nil {
		return Size{}
	}
	b := s.target.Bounds()
	return Size{W: float64(b.Dx()), H: float64(b.Dy())}
}

// Clear makes a pixel-space rectangle transparent.
func (s *EbitenSurface) Clear(r Rect) {
	if s.target == nil {
		return
	}
	rect := image.Rect(int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height)).Intersect(s.target.Bounds())
	if rect.Empty() {
		return
	}
	s.target.SubImage(rect).(*ebiten.Image).Clear()
}

// FillRect fills a local-space rectangle.
func (s *EbitenSurface) FillRect(r Rect, c Color) {
	if s.target == nil {
		return
	}
	var p Path
	p.MoveTo(r.X, r.Y)
	p.LineTo(r.X+r.Width, r.Y)
	p.LineTo(r.X+r.Width, r.Y+r.Height)
	p.LineTo(r.X, r.Y+r.Height)
	p.Close()
	s.buildVectorPath(&p)

	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(c)
	vector.FillPath(s.target, &s.vpath, nil, op)
}

// StrokePath outlines a local-space path.
func (s *EbitenSurface) StrokePath(p *Path, st Stroke) {
	if s.target == nil || p.Empty() || st.Width <= 0 || st.Color.A <= 0 {
		return
	}
	s.buildVectorPath(p)

	strokeOp := &vector.StrokeOptions{Width: float32(st.Width * s.m.UniformScale())}
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(st.Color)
	vector.StrokePath(s.target, &s.vpath, strokeOp, op)
}

// buildVectorPath rebuilds s.vpath from p mapped through the current
// transform.
func (s *EbitenSurface) buildVectorPath(p *Path) {
	s.vpath = vector.Path{}
	m := s.m
	pt := func(v Vec2) (float32, float32) {
		x, y := m.Apply(v.X, v.Y)
		return float32(x), float32(y)
	}
	for _, c := range p.Commands() {
		switch c.Op {
		case PathMoveTo:
			s.vpath.MoveTo(pt(c.P[0]))
		case PathLineTo:
			s.vpath.LineTo(pt(c.P[0]))
		case PathCubicTo:
			x1, y1 := pt(c.P[0])
			x2, y2 := pt(c.P[1])
			x3, y3 := pt(c.P[2])
			s.vpath.CubicTo(x1, y1, x2, y2, x3, y3)
		case PathClose:
			s.vpath.Close()
		}
	}
}

// FillText draws a line of text with its baseline at (x, y).
func (s *EbitenSurface) FillText(str string, x, y float64, style TextStyle) {
	if s.target == nil || s.font == nil || str == "" {
		return
	}
	face := s.font.ebitenFace(style.Size)

	op := &text.DrawOptions{}
	switch style.Align {
	case TextAlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case TextAlignRight:
		op.PrimaryAlign = text.AlignEnd
	default:
		op.PrimaryAlign = text.AlignStart
	}
	op.GeoM.Translate(x, y-face.Metrics().HAscent)
	op.GeoM.Concat(geoM(s.m))
	op.ColorScale.ScaleWithColor(style.Color)
	text.Draw(s.target, str, face, op)
}

// DrawImage draws img scaled into a local-space rectangle. Uploaded
// textures are cached per source image.
func (s *EbitenSurface) DrawImage(img image.Image, x, y, w, h float64) {
	if s.target == nil || img == nil {
		return
	}
	b := img.Bounds()
	if b.Empty() {
		return
	}
	tex, ok := s.images[img]
	if !ok {
		tex = ebiten.NewImageFromImage(img)
		s.images[img] = tex
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(geoM(s.m))
	s.target.DrawImage(tex, op)
}

// geoM converts an Affine into an ebiten.GeoM.
func geoM(m Affine) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}
