package hnsw

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDotProductDistance(t *testing.T) {
	a := []float32{1, 0, 0}
	b := []float32{1, 0, 0}
	require.InDelta(t, 0, DotProductDistance(a, b), 1e-6)

	c := []float32{-1, 0, 0}
	require.InDelta(t, 2, DotProductDistance(a, c), 1e-6)
}

func TestCosineDistance(t *testing.T) {
	a := []float32{1, 0, 0}
	b := []float32{1, 0, 0}
	require.InDelta(t, 0, CosineDistance(a, b), 1e-6)

	orth := []float32{0, 1, 0}
	require.InDelta(t, 1, CosineDistance(a, orth), 1e-6)

	opposite := []float32{-1, 0, 0}
	require.InDelta(t, 2, CosineDistance(a, opposite), 1e-6)
}

func TestCosineDistanceTinyNormGuard(t *testing.T) {
	zero := []float32{0, 0, 0}
	require.Equal(t, float32(1), CosineDistance(zero, zero))

	nonZero := []float32{1, 0, 0}
	require.Equal(t, float32(0), CosineDistance(zero, nonZero))
	require.Equal(t, float32(0), CosineDistance(nonZero, zero))
}

func TestCosineDistanceNonNegative(t *testing.T) {
	a := []float32{0.3, 0.7, -0.2}
	b := []float32{0.1, -0.4, 0.9}
	d := CosineDistance(a, b)
	require.GreaterOrEqual(t, d, float32(0))
}
