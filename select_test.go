package hnsw

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// lineDistance treats each vector as a single coordinate on a number
// line, so distances are trivial to reason about by hand: dist(a,b) =
// |a[0]-b[0]|.
func lineDistance(a, b []float32) float32 {
	d := a[0] - b[0]
	if d < 0 {
		d = -d
	}
	return d
}

// buildLineStore creates a nodeStore with one layer-0 node per
// (key, position) pair, every node reserving room for maxLinks edges.
func buildLineStore(maxLinks int, positions map[int]float32) *nodeStore {
	s := newNodeStore()
	for key, pos := range positions {
		s.insert(key, &node{
			vector: []float32{pos},
			layers: []layerLinks{newLayerLinks(maxLinks)},
		})
	}
	return s
}

func TestSelectNearestKeepsPrefix(t *testing.T) {
	candidates := []searchCandidate{{key: 1, dist: 1}, {key: 2, dist: 2}, {key: 3, dist: 3}}
	kept := selectNearest(candidates, 2)
	require.Equal(t, []searchCandidate{{key: 1, dist: 1}, {key: 2, dist: 2}}, kept)

	// fewer candidates than the quota returns them all.
	require.Equal(t, candidates, selectNearest(candidates, 10))
}

func TestSelectDiverseAcceptsThenBackfills(t *testing.T) {
	store := buildLineStore(8, map[int]float32{
		0: 0, // self, not a candidate
		1: 1,
		2: 2,
		3: 3,
		4: 10,
	})

	candidates := []searchCandidate{
		{key: 1, dist: 1},
		{key: 2, dist: 2},
		{key: 3, dist: 3},
		{key: 4, dist: 10},
	}

	chosen := selectDiverse(store, lineDistance, candidates, 3)
	require.Len(t, chosen, 3)

	keys := make([]int, len(chosen))
	for i, c := range chosen {
		keys[i] = c.key
	}
	// 1 is accepted outright; 2 and 3 are dominated by 1 but backfill
	// the remaining quota in distance order; 4 never makes the cut.
	require.Equal(t, []int{1, 2, 3}, keys)
}

func TestTryAddLinkNearestReplacesFartherEdge(t *testing.T) {
	store := buildLineStore(1, map[int]float32{
		0: 0, // owner
		1: 5, // existing peer, dist 5
		2: 3, // candidate, dist 3
	})
	cfg := &Config{MaxLinks: 0, InsertMethod: LinkNearest, Distance: lineDistance}
	owner, _ := store.get(0)
	owner.layers[0].insertOutgoing(1, 5)
	addIncomingAt(store, 1, 0, 0)

	tryAddLink(store, cfg, 0, 0, 2, 3)

	require.True(t, owner.layers[0].hasOutgoing(2))
	require.False(t, owner.layers[0].hasOutgoing(1))
	peer1, _ := store.get(1)
	require.False(t, peer1.layers[0].hasIncoming(0))
	peer2, _ := store.get(2)
	require.True(t, peer2.layers[0].hasIncoming(0))
}

func TestTryAddLinkNearestRejectsFartherCandidate(t *testing.T) {
	store := buildLineStore(1, map[int]float32{
		0: 0,
		1: 5,
		2: 10,
	})
	cfg := &Config{MaxLinks: 0, InsertMethod: LinkNearest, Distance: lineDistance}
	owner, _ := store.get(0)
	owner.layers[0].insertOutgoing(1, 5)
	addIncomingAt(store, 1, 0, 0)

	tryAddLink(store, cfg, 0, 0, 2, 10)

	require.True(t, owner.layers[0].hasOutgoing(1))
	require.False(t, owner.layers[0].hasOutgoing(2))
}

func TestReplaceDiverseDominatedCandidateRejected(t *testing.T) {
	store := buildLineStore(2, map[int]float32{
		0: 0, // owner
		1: 2, // P1, dist 2
		2: 8, // P2, dist 8
		3: 5, // candidate, dist 5, but closer to P1 than owner is
	})
	links := &layerLinks{outgoing: []edge{{peer: 1, dist: 2}, {peer: 2, dist: 8}}}

	victim, replace := replaceDiverse(store, lineDistance, links, 3, 5)
	require.False(t, replace)
	require.Equal(t, 0, victim)
}

func TestReplaceDiverseAcceptsAndPicksCorrectVictim(t *testing.T) {
	store := buildLineStore(2, map[int]float32{
		0: 0,  // owner
		1: 10, // P1, dist 10
		2: 20, // P2, dist 20
		3: 5,  // candidate, dist 5; P1 is closer to it (5) than to owner (10)
	})
	links := &layerLinks{outgoing: []edge{{peer: 1, dist: 10}, {peer: 2, dist: 20}}}

	victim, replace := replaceDiverse(store, lineDistance, links, 3, 5)
	require.True(t, replace)
	require.Equal(t, 1, victim)
}

func TestReplaceDiverseRejectsFartherThanWorst(t *testing.T) {
	store := buildLineStore(2, map[int]float32{
		0: 0,
		1: 2,
		2: 8,
		3: 10,
	})
	links := &layerLinks{outgoing: []edge{{peer: 1, dist: 2}, {peer: 2, dist: 8}}}

	victim, replace := replaceDiverse(store, lineDistance, links, 3, 10)
	require.False(t, replace)
	require.Equal(t, 0, victim)
}

func TestSelectCompensationNearestPicksClosest(t *testing.T) {
	store := buildLineStore(4, map[int]float32{
		10: 0, // linkTo
		20: 3, // candidate, dist 3
		30: 1, // candidate, dist 1 (closest)
	})
	existing := &layerLinks{}
	candidates := []edge{{peer: 20}, {peer: 30}}

	chosen, found := selectCompensationNearest(store, lineDistance, 10, existing, candidates)
	require.True(t, found)
	require.Equal(t, 30, chosen)
}

func TestSelectCompensationNearestSkipsSelfAndExisting(t *testing.T) {
	store := buildLineStore(4, map[int]float32{
		10: 0,
		20: 1,
	})
	existing := &layerLinks{outgoing: []edge{{peer: 20, dist: 1}}}
	candidates := []edge{{peer: 10}, {peer: 20}}

	_, found := selectCompensationNearest(store, lineDistance, 10, existing, candidates)
	require.False(t, found)
}

func TestSelectCompensationDiverseFallsBackToClosest(t *testing.T) {
	store := buildLineStore(4, map[int]float32{
		10: 0,  // linkTo
		20: 1,  // existing out-edge of linkTo
		30: 3,  // candidate, dist(linkTo,30)=3, but dist(20,30)=2 < 3: dominated
		40: 10, // candidate, dist 10, dominated too since dist(20,40)=9<10
	})
	existing := &layerLinks{outgoing: []edge{{peer: 20, dist: 1}}}
	candidates := []edge{{peer: 30}, {peer: 40}}

	chosen, found := selectCompensationDiverse(store, lineDistance, 10, existing, candidates)
	require.True(t, found)
	// every candidate is dominated, so the closest one is the fallback.
	require.Equal(t, 30, chosen)
}
