package hnsw

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// levelDirectory is the level directory (C3): an ordered map from
// node height to the set of keys whose tallest layer is that height.
// It exists only to (a) pick an entry point — any key in the tallest
// non-empty bucket — and (b) maintain §3 invariant 3. Each bucket
// shrinks on sparse load the same way the node store does.
type levelDirectory struct {
	buckets map[int]*heightBucket
}

type heightBucket struct {
	keys map[int]struct{}
	peak int
}

func newLevelDirectory() *levelDirectory {
	return &levelDirectory{buckets: make(map[int]*heightBucket)}
}

func (d *levelDirectory) add(height, key int) {
	b, ok := d.buckets[height]
	if !ok {
		b = &heightBucket{keys: make(map[int]struct{})}
		d.buckets[height] = b
	}
	b.keys[key] = struct{}{}
	if len(b.keys) > b.peak {
		b.peak = len(b.keys)
	}
}

// remove deletes key from the bucket for height, shrinking the bucket
// if sparse and deleting it entirely if it becomes empty.
func (d *levelDirectory) remove(height, key int) {
	b, ok := d.buckets[height]
	if !ok {
		return
	}
	delete(b.keys, key)
	if len(b.keys) == 0 {
		delete(d.buckets, height)
		return
	}
	if b.peak == 0 || 4*len(b.keys) >= b.peak {
		return
	}
	fresh := make(map[int]struct{}, len(b.keys))
	for k := range b.keys {
		fresh[k] = struct{}{}
	}
	b.keys = fresh
	b.peak = len(b.keys)
}

// empty reports whether the directory has no buckets at all.
func (d *levelDirectory) empty() bool {
	return len(d.buckets) == 0
}

// topHeight returns the tallest non-empty bucket's height.
func (d *levelDirectory) topHeight() (int, bool) {
	if len(d.buckets) == 0 {
		return 0, false
	}
	top := 0
	first := true
	for h := range d.buckets {
		if first || h > top {
			top = h
			first = false
		}
	}
	return top, true
}

// entryPoint returns the smallest key in the tallest non-empty bucket.
// Any key of that bucket would be an acceptable entry point; taking the
// smallest makes the choice deterministic for a given set of keys.
func (d *levelDirectory) entryPoint() (int, bool) {
	top, ok := d.topHeight()
	if !ok {
		return 0, false
	}
	b := d.buckets[top]
	keys := maps.Keys(b.keys)
	if len(keys) == 0 {
		return 0, false
	}
	slices.Sort(keys)
	return keys[0], true
}

// heightOf reports the bucket a key lives in, for the integrity
// auditor's bijectivity check (C9).
func (d *levelDirectory) heightOf(key int) (int, bool) {
	for h, b := range d.buckets {
		if _, ok := b.keys[key]; ok {
			return h, true
		}
	}
	return 0, false
}

// heights returns every populated height in ascending order.
func (d *levelDirectory) heights() []int {
	hs := maps.Keys(d.buckets)
	slices.Sort(hs)
	return hs
}
