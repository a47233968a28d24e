package tuiocanvas

import (
	"image"
	"math"

	"github.com/phanxgames/tuiocanvas/tuio"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// surfaceCall is one recorded Surface operation with the transform that was
// current when it was issued.
type surfaceCall struct {
	op    string
	m     Affine
	rect  Rect
	color Color
	text  string
	x, y  float64
	style TextStyle
	path  *Path
	width float64
}

// recordingSurface is a Surface that records every drawing call.
type recordingSurface struct {
	transformStack
	size  Size
	calls []surfaceCall
}

func newRecordingSurface(w, h float64) *recordingSurface {
	return &recordingSurface{transformStack: newTransformStack(), size: Size{W: w, H: h}}
}

func (s *recordingSurface) Size() Size { return s.size }

func (s *recordingSurface) Clear(r Rect) {
	s.calls = append(s.calls, surfaceCall{op: "clear", m: s.m, rect: r})
}

func (s *recordingSurface) FillRect(r Rect, c Color) {
	s.calls = append(s.calls, surfaceCall{op: "fillRect", m: s.m, rect: r, color: c})
}

func (s *recordingSurface) StrokePath(p *Path, st Stroke) {
	cp := &Path{cmds: append([]PathCmd(nil), p.Commands()...)}
	s.calls = append(s.calls, surfaceCall{op: "stroke", m: s.m, path: cp, color: st.Color, width: st.Width})
}

func (s *recordingSurface) FillText(str string, x, y float64, style TextStyle) {
	s.calls = append(s.calls, surfaceCall{op: "text", m: s.m, text: str, x: x, y: y, style: style})
}

func (s *recordingSurface) DrawImage(img image.Image, x, y, w, h float64) {
	s.calls = append(s.calls, surfaceCall{op: "image", m: s.m, rect: Rect{X: x, Y: y, Width: w, Height: h}})
}

func (s *recordingSurface) reset() { s.calls = s.calls[:0] }

func (s *recordingSurface) ops(op string) []surfaceCall {
	var out []surfaceCall
	for _, c := range s.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

// pointerFrame builds a frame with pointers at the given session ids, all at
// the sensor center.
func pointerFrame(ids ...uint32) tuio.Frame {
	f := tuio.Frame{Alive: []uint32{}}
	for _, id := range ids {
		f.Pointers = append(f.Pointers, tuio.Pointer{SessionID: id, Position: tuio.Point{X: 0.5, Y: 0.5}})
		f.Alive = append(f.Alive, id)
	}
	return f
}
