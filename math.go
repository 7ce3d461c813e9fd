package meteor

import (
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

const (
	// minRadiusM floors the radius before any inverse-square or inverse-cube
	// evaluation so a state at the body center cannot blow up the derivative.
	minRadiusM = 1e-3
	// minRadiusDisplay is the same floor for display-space attraction.
	minRadiusDisplay = 1e-9
	// minSpeedMS floors |v| before the drag magnitude is computed.
	minSpeedMS = 1e-9
)

// norm returns the norm of a given vector which is supposed to be 3x1.
func norm(v []float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// unit returns the unit vector of a given vector.
func unit(a []float64) (b []float64) {
	n := norm(a)
	if floats.EqualWithinAbs(n, 0, 1e-12) {
		return []float64{0, 0, 0}
	}
	b = make([]float64, len(a))
	for i, val := range a {
		b[i] = val / n
	}
	return
}

// dot performs the inner product via mat64/BLAS.
func dot(a, b []float64) float64 {
	return mat64.Dot(mat64.NewVector(len(a), a), mat64.NewVector(len(b), b))
}

// cross performs the cross product.
func cross(a, b []float64) []float64 {
	return []float64{a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0]}
}

// vecCopy returns a fresh copy of a state vector, never an alias.
func vecCopy(a []float64) []float64 {
	b := make([]float64, len(a))
	copy(b, a)
	return b
}

// allFinite returns whether every component of the vector is a finite number.
func allFinite(a []float64) bool {
	for _, val := range a {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return false
		}
	}
	return true
}

// isFinite returns whether a scalar is a finite number.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
