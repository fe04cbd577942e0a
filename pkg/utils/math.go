package utils

import (
	"math"

	"github.com/viterin/vek/vek32"
)

// L2Norm returns the Euclidean norm of x.
func L2Norm(x []float32) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Sqrt(float64(vek32.Dot(x, x)))
}

// NormalizeL2 normalizes the slice in place to unit L2 norm.
// If the norm is zero, the slice is unchanged.
func NormalizeL2(x []float32) {
	norm := L2Norm(x)
	if norm == 0 {
		return
	}
	vek32.MulNumber_Inplace(x, float32(1.0/norm))
}

// Dot returns the inner product of a and b. For unit-length vectors this
// equals their cosine similarity.
func Dot(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	return float64(vek32.Dot(a, b))
}
