package hnsw

// Analyzer provides read-only introspection over an Index's graph
// shape: how many layers it has, how many nodes populate each one,
// and how well connected each layer is. It is a diagnostics surface,
// not part of the insert/search/remove path.
type Analyzer struct {
	idx *Index
}

// NewAnalyzer wraps idx for introspection.
func NewAnalyzer(idx *Index) *Analyzer {
	return &Analyzer{idx: idx}
}

// Height returns the number of layers in the graph (the height of the
// tallest node), or 0 if the index is empty.
func (a *Analyzer) Height() int {
	top, ok := a.idx.levels.topHeight()
	if !ok {
		return 0
	}
	return top
}

// Connectivity returns the average out-degree of nodes participating
// in each layer, indexed 0..Height()-1.
func (a *Analyzer) Connectivity() []float64 {
	height := a.Height()
	if height == 0 {
		return nil
	}
	sums := make([]float64, height)
	counts := make([]int, height)

	for _, key := range a.idx.store.keys() {
		n, _ := a.idx.store.get(key)
		for layer := 0; layer < n.height(); layer++ {
			sums[layer] += float64(len(n.layers[layer].outgoing))
			counts[layer]++
		}
	}

	result := make([]float64, height)
	for i := range result {
		if counts[i] > 0 {
			result[i] = sums[i] / float64(counts[i])
		}
	}
	return result
}

// Topography returns the number of nodes participating in each layer,
// indexed 0..Height()-1.
func (a *Analyzer) Topography() []int {
	height := a.Height()
	if height == 0 {
		return nil
	}
	counts := make([]int, height)
	for _, key := range a.idx.store.keys() {
		n, _ := a.idx.store.get(key)
		for layer := 0; layer < n.height(); layer++ {
			counts[layer]++
		}
	}
	return counts
}
