package tuiocanvas

import (
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"
	ggtext "github.com/gogpu/gg/text"
)

// GGSurface renders into an off-screen gogpu/gg context. It backs headless
// rendering (snapshots, CI captures) where no window or GPU is available.
type GGSurface struct {
	transformStack

	dc     *gg.Context
	source *ggtext.FontSource
	faces  map[float64]ggtext.Face
	images map[image.Image]*gg.ImageBuf
}

// NewGGSurface creates a width x height surface. font may be nil, which
// disables text.
func NewGGSurface(width, height int, font *LabelFont) (*GGSurface, error) {
	s := &GGSurface{
		transformStack: newTransformStack(),
		dc:             gg.NewContext(width, height),
		faces:          make(map[float64]ggtext.Face),
		images:         make(map[image.Image]*gg.ImageBuf),
	}
	if font != nil {
		src, err := ggtext.NewFontSource(font.Data())
		if err != nil {
			_ = s.dc.Close()
			return nil, fmt.Errorf("tuiocanvas: failed to load label font into gg: %w", err)
		}
		s.source = src
	}
	return s, nil
}

// Close releases the context and font resources.
func (s *GGSurface) Close() error {
	if s.source != nil {
		_ = s.source.Close()
	}
	return s.dc.Close()
}

// Resize changes the surface size, discarding its content.
func (s *GGSurface) Resize(width, height int) error {
	return s.dc.Resize(width, height)
}

// Size returns the surface size in pixels.
func (s *GGSurface) Size() Size {
	return Size{W: float64(s.dc.Width()), H: float64(s.dc.Height())}
}

// Image returns the rendered pixels.
func (s *GGSurface) Image() image.Image { return s.dc.Image() }

// EncodePNG writes the rendered pixels as PNG.
func (s *GGSurface) EncodePNG(w io.Writer) error {
	if err := s.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("tuiocanvas: encode png: %w", err)
	}
	return nil
}

func (s *GGSurface) apply() {
	m := s.m
	s.dc.SetTransform(gg.Matrix{
		A: m[0], B: m[2], C: m[4],
		D: m[1], E: m[3], F: m[5],
	})
}

// Clear makes a pixel-space rectangle transparent.
func (s *GGSurface) Clear(r Rect) {
	w, h := s.dc.Width(), s.dc.Height()
	rect := image.Rect(int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height)).Intersect(image.Rect(0, 0, w, h))
	if rect.Empty() {
		return
	}
	if rect.Dx() == w && rect.Dy() == h {
		s.dc.ClearWithColor(gg.Transparent)
		return
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			s.dc.SetPixel(x, y, gg.Transparent)
		}
	}
}

// FillRect fills a local-space rectangle.
func (s *GGSurface) FillRect(r Rect, c Color) {
	s.apply()
	s.dc.ClearPath()
	s.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	s.dc.SetRGBA(c.R, c.G, c.B, c.A)
	if err := s.dc.Fill(); err != nil {
		Logger().Debug("gg fill failed", "err", err)
	}
}

// StrokePath outlines a local-space path. gg scales the line width by the
// context transform itself.
func (s *GGSurface) StrokePath(p *Path, st Stroke) {
	if p.Empty() || st.Width <= 0 || st.Color.A <= 0 {
		return
	}
	s.apply()
	s.dc.ClearPath()
	for _, c := range p.Commands() {
		switch c.Op {
		case PathMoveTo:
			s.dc.MoveTo(c.P[0].X, c.P[0].Y)
		case PathLineTo:
			s.dc.LineTo(c.P[0].X, c.P[0].Y)
		case PathCubicTo:
			s.dc.CubicTo(c.P[0].X, c.P[0].Y, c.P[1].X, c.P[1].Y, c.P[2].X, c.P[2].Y)
		case PathClose:
			s.dc.ClosePath()
		}
	}
	s.dc.SetLineWidth(st.Width)
	s.dc.SetRGBA(st.Color.R, st.Color.G, st.Color.B, st.Color.A)
	if err := s.dc.Stroke(); err != nil {
		Logger().Debug("gg stroke failed", "err", err)
	}
}

// FillText draws a line of text with its baseline at (x, y).
func (s *GGSurface) FillText(str string, x, y float64, style TextStyle) {
	if s.source == nil || str == "" {
		return
	}
	size := style.Size
	if size <= 0 {
		size = DefaultLabelSize
	}
	face, ok := s.faces[size]
	if !ok {
		face = s.source.Face(size)
		s.faces[size] = face
	}

	var ax float64
	switch style.Align {
	case TextAlignCenter:
		ax = 0.5
	case TextAlignRight:
		ax = 1
	}

	s.apply()
	s.dc.SetFont(face)
	s.dc.SetRGBA(style.Color.R, style.Color.G, style.Color.B, style.Color.A)
	// DrawStringAnchored treats y as the top of the text; DrawString takes
	// the baseline, so only the horizontal anchor is applied here.
	w, _ := s.dc.MeasureString(str)
	s.dc.DrawString(str, x-w*ax, y)
}

// DrawImage draws img scaled into a local-space rectangle.
func (s *GGSurface) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil || img.Bounds().Empty() {
		return
	}
	buf, ok := s.images[img]
	if !ok {
		buf = gg.ImageBufFromImage(img)
		s.images[img] = buf
	}
	s.apply()
	s.dc.DrawImageEx(buf, gg.DrawImageOptions{
		X:             x,
		Y:             y,
		DstWidth:      w,
		DstHeight:     h,
		Interpolation: gg.InterpNearest,
		Opacity:       1,
	})
}
