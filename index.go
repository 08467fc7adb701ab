package hnsw

import (
	"math/rand"
	"sort"
	"time"
)

// Result is one entry of a Search call: a stored key and its distance
// to the query vector under the index's configured DistanceFunc.
type Result struct {
	Key      int
	Distance float32
}

// Index is a single-writer, in-memory HNSW approximate nearest
// neighbor index over integer keys and float32 vectors. All mutating
// methods (Insert, Remove) must not be called concurrently with each
// other or with Search; Search itself only reads and is safe to call
// concurrently with other Search calls as long as no mutation is in
// flight, matching the package doc's single-writer contract.
type Index struct {
	cfg    Config
	store  *nodeStore
	levels *levelDirectory

	dims    int
	dimsSet bool
}

// NewIndex constructs an Index from cfg as given. DefaultConfig's
// fields are not merged in — callers that want defaults should start
// from DefaultConfig() and override individual fields. A nil cfg.Rng
// is replaced with a time-seeded generator.
func NewIndex(cfg Config) (*Index, error) {
	if cfg.Rng == nil {
		cfg.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Index{
		cfg:    cfg,
		store:  newNodeStore(),
		levels: newLevelDirectory(),
		dims:   -1,
	}, nil
}

// Insert adds a new vector under key. It returns ErrDuplicateKey if
// key is already present, or ErrDimensionMismatch if vector's length
// does not match every previously inserted vector's length.
func (idx *Index) Insert(key int, vector []float32) error {
	if err := idx.checkDims(vector); err != nil {
		return err
	}
	if err := idx.insertNode(key, vector); err != nil {
		return err
	}
	idx.dims = len(vector)
	idx.dimsSet = true
	return nil
}

// Remove deletes key from the index, if present. It is a no-op
// otherwise, matching the original index's remove().
func (idx *Index) Remove(key int) {
	idx.removeNode(key)
}

// Search returns up to n nearest neighbors of target by the index's
// configured distance function. ef optionally overrides the beam
// width used for the layer-0 search; it defaults to 100+n, matching
// the original index's two-argument search() overload (Go has no
// overloading, so the variadic trailing parameter plays that role).
func (idx *Index) Search(target []float32, n int, ef ...int) ([]Result, error) {
	if err := idx.checkDims(target); err != nil {
		return nil, err
	}
	if idx.store.len() == 0 {
		return nil, nil
	}

	beamWidth := 100 + n
	if len(ef) > 0 {
		beamWidth = ef[0]
	}
	width := maxInt(n, beamWidth)

	start, ok := idx.levels.entryPoint()
	if !ok {
		return nil, nil
	}
	topHeight := mustHeight(idx.store, start)
	for layer := topHeight; layer > 0; layer-- {
		start = greedySearch(idx.store, idx.cfg.Distance, target, layer-1, start)
	}

	candidates := searchLevel(idx.store, idx.cfg.Distance, target, width, 0, []int{start})
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })

	if n < len(candidates) {
		candidates = candidates[:n]
	}
	results := make([]Result, len(candidates))
	for i, c := range candidates {
		results[i] = Result{Key: c.key, Distance: c.dist}
	}
	return results, nil
}

// Size returns the number of live keys in the index.
func (idx *Index) Size() int {
	return idx.store.len()
}

// Check runs the integrity auditor (C9) over the index's current
// state.
func (idx *Index) Check() bool {
	return checkInvariants(idx.store, idx.levels, &idx.cfg)
}

func (idx *Index) checkDims(vector []float32) error {
	if !idx.dimsSet {
		return nil
	}
	if len(vector) != idx.dims {
		return wrapf(ErrDimensionMismatch, "expected %d dimensions, got %d", idx.dims, len(vector))
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
