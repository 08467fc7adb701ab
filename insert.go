package hnsw

import "sort"

// insertNode implements C7, mirroring the original index's insert():
// draw a height, create the node, and for a non-first node, descend
// from the current entry point refining the single best candidate on
// every layer above the new node's height, then run full beam search
// and link installation on every layer at or below it. The new node is
// only registered in the level directory once all linking is done, so
// entryPoint() never returns the node being inserted.
func (idx *Index) insertNode(key int, vector []float32) error {
	if _, exists := idx.store.get(key); exists {
		return wrapf(ErrDuplicateKey, "key %v already present", key)
	}

	height := drawHeight(idx.cfg.MaxLinks, func() (int64, int64) {
		return idx.cfg.Rng.Int63n(heightDrawRange), heightDrawRange - 1
	})

	n := &node{vector: vector, layers: make([]layerLinks, height)}
	for layer := 0; layer < height; layer++ {
		n.layers[layer] = newLayerLinks(idx.cfg.maxLinks(layer))
	}
	idx.store.insert(key, n)

	if idx.store.len() == 1 {
		idx.levels.add(height, key)
		return nil
	}

	start, ok := idx.levels.entryPoint()
	if !ok {
		idx.levels.add(height, key)
		return nil
	}
	startHeight := mustHeight(idx.store, start)

	for layer := startHeight; layer > 0; layer-- {
		start = greedySearch(idx.store, idx.cfg.Distance, vector, layer-1, start)

		if layer <= height {
			candidates := searchLevel(idx.store, idx.cfg.Distance, vector, idx.cfg.EfConstruction, layer-1, []int{start})
			sort.Slice(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })

			installOwnLinks(idx.store, key, layer-1, selectLinks(idx.store, &idx.cfg, candidates, layer-1))

			for _, peer := range candidates {
				tryAddLink(idx.store, &idx.cfg, peer.key, layer-1, key, peer.dist)
			}
		}
	}

	idx.levels.add(height, key)
	return nil
}

// heightDrawRange bounds the raw draw passed to drawHeight. It is well
// above rawDrawScale so drawHeight's scaling branch always exercises,
// keeping behavior independent of *rand.Rand's internal range.
const heightDrawRange = 1 << 62

func mustHeight(store *nodeStore, key int) int {
	n, ok := store.get(key)
	if !ok {
		panic("hnsw: internal invariant violation: missing entry point node")
	}
	return n.height()
}

// installOwnLinks sets a brand-new node's out-edges at layer to chosen
// and records the corresponding incoming backlink on each peer. The
// node has no prior out-edges at this layer, so there is nothing to
// tear down first (unlike the original's set_links, which also handles
// replacing an existing node's links).
func installOwnLinks(store *nodeStore, key, layer int, chosen []searchCandidate) {
	n, ok := store.get(key)
	if !ok || layer >= len(n.layers) {
		return
	}
	sorted := make([]edge, len(chosen))
	for i, c := range chosen {
		sorted[i] = edge{peer: c.key, dist: c.dist}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].peer < sorted[j].peer })
	n.layers[layer].setOutgoing(sorted)

	for _, c := range chosen {
		addIncomingAt(store, c.key, layer, key)
	}
}
