package hnsw

import (
	"github.com/chewxy/math32"
	"github.com/viterin/vek"
)

// DistanceFunc computes the distance between two equal-length vectors.
// It must be a stable, deterministic function of its inputs and must
// not assume the triangle inequality. float32 is used throughout the
// index — widening to float64 anywhere would silently change the
// memory footprint the spec depends on.
//
// Implementations may assume the vectors are already the same length:
// Index enforces DimensionMismatch at its public boundary (Insert,
// Search) before any vector reaches a DistanceFunc, so the hot path
// inside the graph never pays for a length check it cannot fail.
type DistanceFunc func(a, b []float32) float32

const tinyNorm = 1e-12

// DotProductDistance returns max(0, 1 - <a,b>). Vectors must be
// pre-normalized by the caller for this to behave like a cosine
// surrogate; the index never normalizes vectors on its own.
//
// The dot-product reduction is delegated to vek, which may use SIMD
// where available; the mathematical contract is the plain sum of
// elementwise products, and a scalar loop is an equally conforming
// implementation.
func DotProductDistance(a, b []float32) float32 {
	product := vek.Dot(a, b)
	return math32.Max(0, 1-product)
}

// CosineDistance returns max(0, 1 - <a,b>/(‖a‖·‖b‖)), with a guard for
// near-zero norms: 1 if both vectors are near-zero, 0 if exactly one
// is, since cosine similarity is undefined at the origin.
func CosineDistance(a, b []float32) float32 {
	normA := math32.Sqrt(vek.Dot(a, a))
	normB := math32.Sqrt(vek.Dot(b, b))

	aZero := math32.Abs(normA) < tinyNorm
	bZero := math32.Abs(normB) < tinyNorm
	switch {
	case aZero && bZero:
		return 1
	case aZero || bZero:
		return 0
	}

	sim := vek.Dot(a, b) / (normA * normB)
	return math32.Max(0, 1-sim)
}
