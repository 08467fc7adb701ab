package hnsw

import "github.com/vectorcore/hnsw/heap"

// searchCandidate pairs a node key with its distance to the current
// search target. It orders ascending by distance, making a
// heap.Heap[searchCandidate] a min-heap: Pop drains closest-first,
// while Max/PopLast give the furthest element for a bounded result
// set's eviction.
type searchCandidate struct {
	key  int
	dist float32
}

func (s searchCandidate) Less(o searchCandidate) bool {
	return s.dist < o.dist
}

// greedySearch performs the greedy descent of C5: starting from start,
// repeatedly move to the neighbor on layer strictly closer to target
// than the current best, stopping when no neighbor improves or the
// hop budget (one per live node, a safety belt against pathological
// graphs) is exhausted.
func greedySearch(store *nodeStore, distance DistanceFunc, target []float32, layer, start int) int {
	current := start
	curNode, _ := store.get(current)
	best := distance(curNode.vector, target)

	hopCap := store.len()
	for hops := 0; hops < hopCap; hops++ {
		n, ok := store.get(current)
		if !ok || layer >= len(n.layers) {
			break
		}

		bestPeer := -1
		bestDist := best
		for _, e := range n.layers[layer].outgoing {
			peer, ok := store.get(e.peer)
			if !ok {
				continue
			}
			d := distance(peer.vector, target)
			if d < bestDist {
				bestDist = d
				bestPeer = e.peer
			}
		}

		if bestPeer < 0 {
			break
		}
		current = bestPeer
		best = bestDist
	}

	return current
}

// searchLevel is the beam search of C5 (`search_level`): it expands
// outward from starts on layer, maintaining a closest-first frontier
// and a width-bounded furthest-first result set, and returns the
// result set's candidates in arbitrary (heap) order — callers that
// need ascending order sort the returned slice.
func searchLevel(store *nodeStore, distance DistanceFunc, target []float32, width, layer int, starts []int) []searchCandidate {
	visited := make(map[int]bool, width*4)

	var frontier heap.Heap[searchCandidate]
	var results heap.Heap[searchCandidate]

	for _, s := range starts {
		if visited[s] {
			continue
		}
		visited[s] = true
		n, ok := store.get(s)
		if !ok {
			continue
		}
		d := distance(n.vector, target)
		frontier.Push(searchCandidate{key: s, dist: d})
		results.Push(searchCandidate{key: s, dist: d})
	}

	for results.Len() > width {
		results.PopLast()
	}

	hopCap := store.len()
	for hop := 0; frontier.Len() > 0 && frontier.Min().dist <= results.Max().dist && hop < hopCap; hop++ {
		cur := frontier.Pop()

		n, ok := store.get(cur.key)
		if !ok || layer >= len(n.layers) {
			continue
		}

		for _, e := range n.layers[layer].outgoing {
			if visited[e.peer] {
				continue
			}
			visited[e.peer] = true

			peerNode, ok := store.get(e.peer)
			if !ok {
				continue
			}
			d := distance(peerNode.vector, target)

			if results.Len() < width {
				results.Push(searchCandidate{key: e.peer, dist: d})
			} else if d < results.Max().dist {
				results.PopLast()
				results.Push(searchCandidate{key: e.peer, dist: d})
			}
			frontier.Push(searchCandidate{key: e.peer, dist: d})
		}
	}

	return results.Slice()
}
