package lumen

import "math"

// Affine is a 2D affine matrix [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Affine [6]float64

// IdentityAffine is the identity matrix.
var IdentityAffine = Affine{1, 0, 0, 1, 0, 0}

// Multiply returns p * c, so c is applied first.
func (p Affine) Multiply(c Affine) Affine {
	return Affine{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// Invert returns the inverse matrix, or the identity if m is singular.
func (m Affine) Invert() Affine {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return IdentityAffine
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

// ElementTransform is the pose a pointer engine applies to its element.
// Rotations are in degrees; zero values other than Scale are neutral.
type ElementTransform struct {
	// RotateX tilts about the horizontal axis; positive lifts the top edge
	// toward the viewer. RotateY tilts about the vertical axis.
	RotateX, RotateY float64
	Scale            float64
	TranslateX       float64
	TranslateY       float64
}

// NeutralTransform is the resting pose.
var NeutralTransform = ElementTransform{Scale: 1}

// Matrix flattens the pose into a 2D affine about pivot (normally the
// element centre) using an orthographic projection of the 3D tilt.
//
// Composition order:
//
//	Translate(-pivot) -> RotateY -> RotateX -> Scale -> Translate(pivot + T)
func (t ElementTransform) Matrix(pivot Vec2) Affine {
	sinY, cosY := math.Sincos(t.RotateY * math.Pi / 180)
	sinX, cosX := math.Sincos(t.RotateX * math.Pi / 180)

	// Rotating (x, y, 0) about Y then X and dropping z leaves
	// x' = x*cosY, y' = y*cosX + x*sinY*sinX.
	a := cosY * t.Scale
	b := sinY * sinX * t.Scale
	c := 0.0
	d := cosX * t.Scale

	preTx := -(a*pivot.X + c*pivot.Y)
	preTy := -(b*pivot.X + d*pivot.Y)
	return Affine{a, b, c, d,
		preTx + pivot.X + t.TranslateX,
		preTy + pivot.Y + t.TranslateY,
	}
}
