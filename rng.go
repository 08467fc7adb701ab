package hnsw

import "math"

// rawDrawScale is the threshold past which the RNG's raw range must be
// scaled down before converting to a float64, so that every platform
// performs exactly one raw draw per height computation regardless of
// the generator's native range. See §4.7/§9: this is a reproducibility
// contract, not a micro-optimization — do not "simplify" it away.
const rawDrawScale = 1 << 20

// drawHeight draws the height of a newly inserted node:
// h = floor(-ln(U) / ln(M+1)) + 1, clamped to at least 1, where U is
// uniform on (0,1] derived from exactly one raw draw of cfg.Rng.
func drawHeight(maxLinks int, draw func() (sample, max int64)) int {
	sample, maxRand := draw()
	if maxRand > rawDrawScale {
		factor := maxRand / rawDrawScale
		sample /= factor
		maxRand /= factor
	}

	x := float64(sample) / float64(maxRand)
	if x > 1 {
		x = 1
	}
	if x <= 0 {
		x = math.SmallestNonzeroFloat64
	}

	level := int(-math.Log(x) / math.Log(float64(maxLinks+1)))
	if level < 0 {
		level = 0
	}
	return level + 1
}
