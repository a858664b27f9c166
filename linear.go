package augment

import (
	"math"

	"golang.org/x/image/math/f64"
)

// LinearMap is a 2x2 linear transformation over (y, x) coordinate pairs:
//
//	| YY  YX |
//	| XY  XX |
//
// It is the resolved form of an affine specification: a specification is
// size-independent, a LinearMap is the concrete map produced for one input's
// bounds. Maps compose by matrix multiplication, which is associative, so a
// chain of resolved maps can be collapsed into one before any pixel is
// resampled.
type LinearMap struct {
	YY, YX float64
	XY, XX float64
}

// IdentityMap returns the identity linear map.
func IdentityMap() LinearMap {
	return LinearMap{YY: 1, YX: 0, XY: 0, XX: 1}
}

// Diagonal returns the pure scaling map with factor fy on the vertical axis
// and fx on the horizontal axis.
func Diagonal(fy, fx float64) LinearMap {
	return LinearMap{YY: fy, YX: 0, XY: 0, XX: fx}
}

// Compose returns the map equivalent to applying other first, then m.
// This is ordinary matrix multiplication m * other.
func (m LinearMap) Compose(other LinearMap) LinearMap {
	return LinearMap{
		YY: m.YY*other.YY + m.YX*other.XY,
		YX: m.YY*other.YX + m.YX*other.XX,
		XY: m.XY*other.YY + m.XX*other.XY,
		XX: m.XY*other.YX + m.XX*other.XX,
	}
}

// Apply transforms the coordinate pair (y, x).
func (m LinearMap) Apply(y, x float64) (float64, float64) {
	return m.YY*y + m.YX*x, m.XY*y + m.XX*x
}

// IsDiagonal reports whether the map is a pure per-axis scaling.
func (m LinearMap) IsDiagonal() bool {
	return m.YX == 0 && m.XY == 0
}

// IsIdentity reports whether the map leaves coordinates unchanged.
func (m LinearMap) IsIdentity() bool {
	return m.YY == 1 && m.YX == 0 && m.XY == 0 && m.XX == 1
}

// OutputBounds returns the spatial extent produced by applying the map to an
// input of the given extent, rounded to the nearest integer.
func (m LinearMap) OutputBounds(b Bounds) Bounds {
	h, w := m.Apply(float64(b.Height), float64(b.Width))
	return Bounds{
		Height: int(h + 0.5),
		Width:  int(w + 0.5),
	}
}

// Invert returns the inverse map.
// Returns false if the map is singular (non-invertible).
func (m LinearMap) Invert() (LinearMap, bool) {
	det := m.YY*m.XX - m.YX*m.XY
	if math.Abs(det) < 1e-10 {
		return LinearMap{}, false
	}
	invDet := 1.0 / det
	return LinearMap{
		YY: m.XX * invDet,
		YX: -m.YX * invDet,
		XY: -m.XY * invDet,
		XX: m.YY * invDet,
	}, true
}

// aff3 converts the map to the x/image source-to-destination affine form,
// which is (x, y) ordered with a translation column.
func (m LinearMap) aff3() f64.Aff3 {
	return f64.Aff3{
		m.XX, m.XY, 0,
		m.YX, m.YY, 0,
	}
}
