package lumen

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertNearEps(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, eps)
	}
}

func assertMatrix(t *testing.T, name string, got, want Affine) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- Affine ---

func TestMultiplyIdentity(t *testing.T) {
	m := Affine{2, 0, 0, 3, 10, 20}
	assertMatrix(t, "I*m", IdentityAffine.Multiply(m), m)
	assertMatrix(t, "m*I", m.Multiply(IdentityAffine), m)
}

func TestMultiplyTranslations(t *testing.T) {
	a := Affine{1, 0, 0, 1, 10, 20}
	b := Affine{1, 0, 0, 1, 5, 7}
	assertMatrix(t, "a*b", a.Multiply(b), Affine{1, 0, 0, 1, 15, 27})
}

func TestMultiplyScaleThenTranslate(t *testing.T) {
	translate := Affine{1, 0, 0, 1, 100, 0}
	scale := Affine{2, 0, 0, 2, 0, 0}
	// Scale applied first, then translate.
	x, y := translate.Multiply(scale).Apply(5, 5)
	assertNear(t, "x", x, 110)
	assertNear(t, "y", y, 10)
}

func TestInvertRoundTrip(t *testing.T) {
	m := Affine{0, 1, -1, 0, 30, 40}
	inv := m.Invert()
	assertMatrix(t, "m*inv", m.Multiply(inv), IdentityAffine)

	x, y := m.Apply(3, 4)
	bx, by := inv.Apply(x, y)
	assertNear(t, "x", bx, 3)
	assertNear(t, "y", by, 4)
}

func TestInvertSingular(t *testing.T) {
	m := Affine{0, 0, 0, 0, 5, 5}
	assertMatrix(t, "singular", m.Invert(), IdentityAffine)
}

// --- ElementTransform ---

func TestNeutralTransformIsIdentity(t *testing.T) {
	got := NeutralTransform.Matrix(Vec2{X: 50, Y: 25})
	assertMatrix(t, "neutral", got, IdentityAffine)
}

func TestTransformTranslation(t *testing.T) {
	tr := ElementTransform{Scale: 1, TranslateX: 4, TranslateY: -2}
	assertMatrix(t, "translate", tr.Matrix(Vec2{}), Affine{1, 0, 0, 1, 4, -2})
}

func TestTransformScaleAboutPivot(t *testing.T) {
	tr := ElementTransform{Scale: 2}
	m := tr.Matrix(Vec2{X: 10, Y: 10})

	// The pivot stays put.
	x, y := m.Apply(10, 10)
	assertNear(t, "pivot x", x, 10)
	assertNear(t, "pivot y", y, 10)

	x, y = m.Apply(20, 10)
	assertNear(t, "edge x", x, 30)
	assertNear(t, "edge y", y, 10)
}

func TestTransformRotateYShrinksWidth(t *testing.T) {
	tr := ElementTransform{Scale: 1, RotateY: 60}
	m := tr.Matrix(Vec2{})
	x, y := m.Apply(10, 0)
	assertNear(t, "x", x, 5) // cos 60°
	assertNear(t, "y", y, 0)
}

func TestTransformRotateXShrinksHeight(t *testing.T) {
	tr := ElementTransform{Scale: 1, RotateX: 60}
	m := tr.Matrix(Vec2{})
	x, y := m.Apply(0, 10)
	assertNear(t, "x", x, 0)
	assertNear(t, "y", y, 5)
}

func TestTransformCombinedTiltShears(t *testing.T) {
	tr := ElementTransform{Scale: 1, RotateX: 30, RotateY: 30}
	m := tr.Matrix(Vec2{})
	s := math.Sin(math.Pi / 6)
	_, y := m.Apply(10, 0)
	assertNear(t, "y", y, 10*s*s)
}

func TestAffineGeoM(t *testing.T) {
	m := Affine{2, 0.5, -1, 3, 10, 20}
	g := m.GeoM()
	x, y := g.Apply(4, 5)
	wx, wy := m.Apply(4, 5)
	assertNear(t, "x", x, wx)
	assertNear(t, "y", y, wy)
}
