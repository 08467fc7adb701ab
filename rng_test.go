package hnsw

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// These expectations are computed independently (see DESIGN.md) from
// the same h = floor(-ln(U)/ln(M+1)) + 1 formula §4.7 specifies, pinned
// against fixed raw draws so a change to the height-draw contract shows
// up as a test failure rather than silently shifting recall.

func TestDrawHeightNoScaling(t *testing.T) {
	h := drawHeight(31, func() (int64, int64) {
		return 1, 1_000_000
	})
	require.Equal(t, 4, h)
}

func TestDrawHeightScalesAboveThreshold(t *testing.T) {
	maxRand := int64(1) << 41
	sample := maxRand - 1

	h := drawHeight(31, func() (int64, int64) {
		return sample, maxRand
	})
	require.Equal(t, 1, h)
}

func TestDrawHeightScalesSmallerSample(t *testing.T) {
	maxRand := int64(1) << 41
	sample := int64(1) << 30

	h := drawHeight(31, func() (int64, int64) {
		return sample, maxRand
	})
	require.Equal(t, 3, h)
}

func TestDrawHeightClampsAtLeastOne(t *testing.T) {
	// sample == maxRand -> x == 1 -> -ln(1) == 0 -> level 0 -> height 1.
	h := drawHeight(31, func() (int64, int64) {
		return 1000, 1000
	})
	require.Equal(t, 1, h)
}

func TestDrawHeightZeroSampleNeverPanics(t *testing.T) {
	require.NotPanics(t, func() {
		h := drawHeight(31, func() (int64, int64) {
			return 0, 1000
		})
		require.GreaterOrEqual(t, h, 1)
	})
}
