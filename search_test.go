package hnsw

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildChainStore builds a layer-0 chain graph: keys 0..n-1 at position
// 10*key on a number line, each linked bidirectionally to its
// immediate neighbors in key order.
func buildChainStore(n int) *nodeStore {
	s := newNodeStore()
	for i := 0; i < n; i++ {
		s.insert(i, &node{
			vector: []float32{float32(10 * i)},
			layers: []layerLinks{newLayerLinks(2)},
		})
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			nd, _ := s.get(i)
			nd.layers[0].insertOutgoing(i-1, 10)
		}
		if i < n-1 {
			nd, _ := s.get(i)
			nd.layers[0].insertOutgoing(i+1, 10)
		}
	}
	return s
}

func TestGreedySearchConvergesTowardTarget(t *testing.T) {
	store := buildChainStore(5)
	best := greedySearch(store, lineDistance, []float32{35}, 0, 0)
	require.Equal(t, 3, best)
}

func TestGreedySearchStartIsAlreadyBest(t *testing.T) {
	store := buildChainStore(5)
	best := greedySearch(store, lineDistance, []float32{0}, 0, 0)
	require.Equal(t, 0, best)
}

func TestSearchLevelReturnsClosestWithinWidth(t *testing.T) {
	store := buildChainStore(5)
	results := searchLevel(store, lineDistance, []float32{40}, 2, 0, []int{0})

	sort.Slice(results, func(i, j int) bool { return results[i].dist < results[j].dist })
	require.Len(t, results, 2)
	require.Equal(t, 4, results[0].key)
	require.Equal(t, float32(0), results[0].dist)
	require.Equal(t, 3, results[1].key)
	require.Equal(t, float32(10), results[1].dist)
}

func TestSearchLevelWidthThree(t *testing.T) {
	store := buildChainStore(5)
	results := searchLevel(store, lineDistance, []float32{35}, 3, 0, []int{0})

	keys := make([]int, len(results))
	for i, r := range results {
		keys[i] = r.key
	}
	sort.Ints(keys)
	require.Equal(t, []int{2, 3, 4}, keys)
}

func TestSearchLevelMultipleStarts(t *testing.T) {
	store := buildChainStore(5)
	results := searchLevel(store, lineDistance, []float32{20}, 1, 0, []int{0, 4})
	require.Len(t, results, 1)
	require.Equal(t, 2, results[0].key)
	require.Equal(t, float32(0), results[0].dist)
}
