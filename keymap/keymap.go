// Package keymap wraps a *hnsw.Index with a bijective mapping between
// caller-chosen opaque keys and the compact integer keys the graph
// actually stores. This is the C10 collaborator of the index
// specification: trivial by design, but required so embedding services
// can use whatever key type they already have (strings, UUIDs, row
// IDs) without teaching the graph about it.
package keymap

import (
	"math/rand"
	"time"

	"github.com/vectorcore/hnsw"
)

// Result is one entry of a Search call, re-keyed back to the caller's
// opaque key type.
type Result[K comparable] struct {
	Key      K
	Distance float32
}

// Map layers two bijective maps (opaque key <-> internal integer key)
// over an *hnsw.Index. It owns its own random generator for internal
// key allocation, kept separate from the index's own Rng field so that
// key allocation and height draws never interfere with each other's
// draw sequence.
type Map[K comparable] struct {
	index *hnsw.Index
	rng   *rand.Rand

	keyToInternal map[K]int
	internalToKey map[int]K

	keyPeak      int
	internalPeak int
}

// New wraps idx with a fresh, empty key mapping. A nil rng is replaced
// with a time-seeded generator.
func New[K comparable](idx *hnsw.Index, rng *rand.Rand) *Map[K] {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Map[K]{
		index:         idx,
		rng:           rng,
		keyToInternal: make(map[K]int),
		internalToKey: make(map[int]K),
	}
}

// Insert adds vector under key, translating to a freshly allocated
// internal key. Returns hnsw.ErrDuplicateKey if key is already mapped,
// or any error the underlying index reports (e.g. ErrDimensionMismatch).
func (m *Map[K]) Insert(key K, vector []float32) error {
	if _, exists := m.keyToInternal[key]; exists {
		return hnsw.ErrDuplicateKey
	}

	internal := m.allocateInternalKey()
	if err := m.index.Insert(internal, vector); err != nil {
		return err
	}

	m.keyToInternal[key] = internal
	m.internalToKey[internal] = key
	m.trackPeaks()
	return nil
}

// Remove deletes key, if present. No-op otherwise.
func (m *Map[K]) Remove(key K) {
	internal, ok := m.keyToInternal[key]
	if !ok {
		return
	}

	m.index.Remove(internal)
	delete(m.internalToKey, internal)
	delete(m.keyToInternal, key)
	m.maybeShrink()
}

// Search runs the underlying index's search and translates results
// back through the reverse map before returning them.
func (m *Map[K]) Search(target []float32, n int, ef ...int) ([]Result[K], error) {
	raw, err := m.index.Search(target, n, ef...)
	if err != nil {
		return nil, err
	}
	results := make([]Result[K], len(raw))
	for i, r := range raw {
		key, ok := m.internalToKey[r.Key]
		if !ok {
			panic("keymap: internal invariant violation: unmapped internal key")
		}
		results[i] = Result[K]{Key: key, Distance: r.Distance}
	}
	return results, nil
}

// Size returns the number of live keys.
func (m *Map[K]) Size() int {
	return len(m.keyToInternal)
}

// Check verifies the underlying index's invariants plus the bijection
// between the two key maps.
func (m *Map[K]) Check() bool {
	if !m.index.Check() {
		return false
	}
	if len(m.keyToInternal) != len(m.internalToKey) {
		return false
	}
	for k, internal := range m.keyToInternal {
		back, ok := m.internalToKey[internal]
		if !ok || back != k {
			return false
		}
	}
	for internal, k := range m.internalToKey {
		fwd, ok := m.keyToInternal[k]
		if !ok || fwd != internal {
			return false
		}
	}
	return true
}

// allocateInternalKey draws a uniform integer from m.rng and linearly
// probes upward until it finds one not already in use, matching the
// original key_mapper's allocation strategy.
func (m *Map[K]) allocateInternalKey() int {
	candidate := m.rng.Int()
	for {
		if _, taken := m.internalToKey[candidate]; !taken {
			return candidate
		}
		candidate++
	}
}

func (m *Map[K]) trackPeaks() {
	if len(m.keyToInternal) > m.keyPeak {
		m.keyPeak = len(m.keyToInternal)
	}
	if len(m.internalToKey) > m.internalPeak {
		m.internalPeak = len(m.internalToKey)
	}
}

// maybeShrink rebuilds both maps once the live set falls under a
// quarter of the peak size observed since the last rebuild, mirroring
// the shrink-on-sparse rule the core index applies to its own tables.
func (m *Map[K]) maybeShrink() {
	if m.keyPeak != 0 && 4*len(m.keyToInternal) < m.keyPeak {
		fresh := make(map[K]int, len(m.keyToInternal))
		for k, v := range m.keyToInternal {
			fresh[k] = v
		}
		m.keyToInternal = fresh
		m.keyPeak = len(fresh)
	}
	if m.internalPeak != 0 && 4*len(m.internalToKey) < m.internalPeak {
		fresh := make(map[int]K, len(m.internalToKey))
		for k, v := range m.internalToKey {
			fresh[k] = v
		}
		m.internalToKey = fresh
		m.internalPeak = len(fresh)
	}
}
