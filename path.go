package tuiocanvas

import "math"

// PathOp identifies a path command.
type PathOp uint8

const (
	PathMoveTo  PathOp = iota // start a subpath at P[0]
	PathLineTo                // straight segment to P[0]
	PathCubicTo               // cubic Bezier with controls P[0], P[1] ending at P[2]
	PathClose                 // close the current subpath
)

// PathCmd is one path command. Only the first N points of P are meaningful,
// where N depends on Op.
type PathCmd struct {
	Op PathOp
	P  [3]Vec2
}

// Path is a vector path in local (untransformed) coordinates. Arcs are
// stored as cubic segments so any surface can map them through an arbitrary
// affine transform by transforming control points.
type Path struct {
	cmds []PathCmd
	cur  Vec2
	open bool
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(x, y float64) {
	p.cmds = append(p.cmds, PathCmd{Op: PathMoveTo, P: [3]Vec2{{x, y}}})
	p.cur = Vec2{x, y}
	p.open = true
}

// LineTo adds a straight segment. Without a current point it starts a
// subpath instead.
func (p *Path) LineTo(x, y float64) {
	if !p.open {
		p.MoveTo(x, y)
		return
	}
	p.cmds = append(p.cmds, PathCmd{Op: PathLineTo, P: [3]Vec2{{x, y}}})
	p.cur = Vec2{x, y}
}

// CubicTo adds a cubic Bezier segment.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !p.open {
		p.MoveTo(c1x, c1y)
	}
	p.cmds = append(p.cmds, PathCmd{Op: PathCubicTo, P: [3]Vec2{{c1x, c1y}, {c2x, c2y}, {x, y}}})
	p.cur = Vec2{x, y}
}

// Close closes the current subpath.
func (p *Path) Close() {
	if !p.open {
		return
	}
	p.cmds = append(p.cmds, PathCmd{Op: PathClose})
	p.open = false
}

// Arc adds a clockwise circular arc around (cx, cy) from angle start to
// end (radians). A line joins the current point to the arc start, as with
// a canvas arc(); without a current point the arc starts a new subpath.
func (p *Path) Arc(cx, cy, r, start, end float64) {
	if r <= 0 {
		return
	}
	for end < start {
		end += 2 * math.Pi
	}
	sx, sy := cx+r*math.Cos(start), cy+r*math.Sin(start)
	p.LineTo(sx, sy)

	const maxSweep = math.Pi / 2
	n := int(math.Ceil((end - start) / maxSweep))
	if n == 0 {
		return
	}
	step := (end - start) / float64(n)
	for i := 0; i < n; i++ {
		a1 := start + float64(i)*step
		p.arcSegment(cx, cy, r, a1, a1+step)
	}
}

// arcSegment appends the cubic approximation of an arc of at most 90°.
func (p *Path) arcSegment(cx, cy, r, a1, a2 float64) {
	k := 4.0 / 3.0 * math.Tan((a2-a1)/4)
	sin1, cos1 := math.Sincos(a1)
	sin2, cos2 := math.Sincos(a2)

	x1, y1 := cx+r*cos1, cy+r*sin1
	x2, y2 := cx+r*cos2, cy+r*sin2
	p.CubicTo(
		x1-k*r*sin1, y1+k*r*cos1,
		x2+k*r*sin2, y2-k*r*cos2,
		x2, y2,
	)
}

// RoundedRect adds a closed rectangle of size w x h centered on the origin
// with corner radius r. The radius is clamped to [0, min(w, h)/2].
func (p *Path) RoundedRect(w, h, r float64) {
	r = ClampCornerRadius(w, h, r)
	hw, hh := w/2, h/2

	p.MoveTo(-hw+r, -hh)
	p.LineTo(hw-r, -hh)
	p.Arc(hw-r, -hh+r, r, -math.Pi/2, 0)
	p.LineTo(hw, hh-r)
	p.Arc(hw-r, hh-r, r, 0, math.Pi/2)
	p.LineTo(-hw+r, hh)
	p.Arc(-hw+r, hh-r, r, math.Pi/2, math.Pi)
	p.LineTo(-hw, -hh+r)
	p.Arc(-hw+r, -hh+r, r, math.Pi, 3*math.Pi/2)
	p.Close()
}

// ClampCornerRadius limits a corner radius so it never exceeds half the
// width or height of the rectangle, and never goes negative.
func ClampCornerRadius(w, h, r float64) float64 {
	if w < 2*r {
		r = w / 2
	}
	if h < 2*r {
		r = h / 2
	}
	if r < 0 {
		r = 0
	}
	return r
}

// Commands returns the recorded commands. The slice must not be modified.
func (p *Path) Commands() []PathCmd { return p.cmds }

// Empty reports whether the path has no commands.
func (p *Path) Empty() bool { return len(p.cmds) == 0 }

// Reset clears the path for reuse, keeping its storage.
func (p *Path) Reset() {
	p.cmds = p.cmds[:0]
	p.open = false
}

// Transformed returns a copy of the path with every point mapped through m.
func (p *Path) Transformed(m Affine) *Path {
	out := &Path{cmds: make([]PathCmd, len(p.cmds)), open: p.open}
	for i, c := range p.cmds {
		for j := range c.P {
			c.P[j].X, c.P[j].Y = m.Apply(c.P[j].X, c.P[j].Y)
		}
		out.cmds[i] = c
	}
	out.cur.X, out.cur.Y = m.Apply(p.cur.X, p.cur.Y)
	return out
}
