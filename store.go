package hnsw

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// nodeStore is the node store (C2): a hash map from internal key to
// node, with shrink-on-sparse rehashing so that iteration cost and
// resident memory stay proportional to the live set under heavy
// insert/remove churn (§4.2, §9). Go's built-in map never shrinks on
// delete, so this tracks the largest size seen since the last rebuild
// and rebuilds into a fresh map once the live count falls below a
// quarter of that peak — the same threshold the original C++ index
// uses for its hopscotch-map rehash calls.
type nodeStore struct {
	m    map[int]*node
	peak int
}

func newNodeStore() *nodeStore {
	return &nodeStore{m: make(map[int]*node)}
}

func (s *nodeStore) get(key int) (*node, bool) {
	n, ok := s.m[key]
	return n, ok
}

func (s *nodeStore) insert(key int, n *node) {
	s.m[key] = n
	if len(s.m) > s.peak {
		s.peak = len(s.m)
	}
}

func (s *nodeStore) erase(key int) {
	delete(s.m, key)
	s.maybeShrink()
}

func (s *nodeStore) len() int {
	return len(s.m)
}

// maybeShrink rebuilds the backing map when the live set has fallen
// under a quarter of the peak size observed since the last rebuild.
func (s *nodeStore) maybeShrink() {
	if s.peak == 0 || 4*len(s.m) >= s.peak {
		return
	}
	fresh := make(map[int]*node, len(s.m))
	for k, v := range s.m {
		fresh[k] = v
	}
	s.m = fresh
	s.peak = len(s.m)
}

// keys returns every live key in a deterministic ascending order, used
// wherever the index needs stable iteration (e.g. the integrity
// auditor).
func (s *nodeStore) keys() []int {
	ks := maps.Keys(s.m)
	slices.Sort(ks)
	return ks
}
