package turtleizer

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func TestMultiplyAffineIdentity(t *testing.T) {
	id := identityTransform
	m := [6]float64{2, 1, 3, 4, 5, 6}
	assertMatrix(t, "id*m", multiplyAffine(id, m), m)
	assertMatrix(t, "m*id", multiplyAffine(m, id), m)
}

func TestMultiplyAffineTranslations(t *testing.T) {
	a := translateAffine(10, 20)
	b := translateAffine(5, 3)
	assertMatrix(t, "translations", multiplyAffine(a, b), [6]float64{1, 0, 0, 1, 15, 23})
}

func TestScaleThenTranslate(t *testing.T) {
	// Scale(2) * Translate(5, 5): translation happens first, then scaling.
	m := multiplyAffine(scaleAffine(2), translateAffine(5, 5))
	x, y := transformPoint(m, 1, 2)
	assertNear(t, "x", x, 12)
	assertNear(t, "y", y, 14)
}

func TestRotateAffine(t *testing.T) {
	m := rotateAffine(math.Pi / 2)
	x, y := transformPoint(m, 1, 0)
	assertNear(t, "x", x, 0)
	assertNear(t, "y", y, 1)
}

func TestInvertAffine(t *testing.T) {
	m := [6]float64{2, 0, 0, 3, 10, 20}
	inv := invertAffine(m)
	assertMatrix(t, "m*inv=id", multiplyAffine(m, inv), identityTransform)
}

func TestInvertAffineRotationScale(t *testing.T) {
	m := multiplyAffine(rotateAffine(math.Pi/3), scaleAffine(2))
	m = multiplyAffine(translateAffine(-7, 4), m)
	assertMatrix(t, "m*inv=id", multiplyAffine(m, invertAffine(m)), identityTransform)
}

func TestInvertAffineSingular(t *testing.T) {
	assertMatrix(t, "singular", invertAffine(scaleAffine(0)), identityTransform)
}
