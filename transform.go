package tuiocanvas

import "math"

// Affine is a 2D affine matrix [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Affine [6]float64

// Identity is the identity affine matrix.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// TranslateAffine returns a translation matrix.
func TranslateAffine(x, y float64) Affine {
	return Affine{1, 0, 0, 1, x, y}
}

// ScaleAffine returns a scale matrix.
func ScaleAffine(sx, sy float64) Affine {
	return Affine{sx, 0, 0, sy, 0, 0}
}

// RotateAffine returns a rotation matrix. Positive angles rotate clockwise
// on screen (Y grows downward).
func RotateAffine(angle float64) Affine {
	sin, cos := math.Sincos(angle)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// Mul returns m * o: o is applied first, then m.
func (m Affine) Mul(o Affine) Affine {
	return Affine{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Translate returns m followed by a local translation, like a canvas
// context's translate().
func (m Affine) Translate(x, y float64) Affine { return m.Mul(TranslateAffine(x, y)) }

// Scale returns m followed by a local scale.
func (m Affine) Scale(sx, sy float64) Affine { return m.Mul(ScaleAffine(sx, sy)) }

// Rotate returns m followed by a local rotation.
func (m Affine) Rotate(angle float64) Affine { return m.Mul(RotateAffine(angle)) }

// Invert computes the inverse matrix. Returns Identity if m is singular
// (determinant ~ 0).
func (m Affine) Invert() Affine {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return Identity
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms a point.
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// UniformScale returns the length a unit vector has after the linear part
// of m. Exact for the similarity transforms the canvas uses.
func (m Affine) UniformScale() float64 {
	return math.Sqrt(math.Abs(m[0]*m[3] - m[2]*m[1]))
}

// ApproxEqual reports whether every component of m and o differs by less
// than eps.
func (m Affine) ApproxEqual(o Affine, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-o[i]) >= eps {
			return false
		}
	}
	return true
}
