package hnsw

// checkInvariants implements C9, the whole-index integrity auditor.
// It verifies every invariant of §3: no self-links, link symmetry,
// the height-to-directory bijection, and the per-layer degree bound.
// Key uniqueness is guaranteed structurally by the node store's map
// semantics. Distance consistency is also structural — edges are only
// ever written with a freshly computed distance and are never
// mutated in place — so neither is re-verified here.
func checkInvariants(store *nodeStore, levels *levelDirectory, cfg *Config) bool {
	if store.len() == 0 {
		return levels.empty()
	}

	for _, key := range store.keys() {
		n, ok := store.get(key)
		if !ok {
			return false
		}
		height := n.height()

		if h, ok := levels.heightOf(key); !ok || h != height {
			return false
		}

		for layer := 0; layer < height; layer++ {
			links := n.layers[layer]

			if len(links.outgoing) > cfg.maxLinks(layer) {
				return false
			}
			if links.hasOutgoing(key) {
				return false
			}

			for _, e := range links.outgoing {
				peer, ok := store.get(e.peer)
				if !ok {
					return false
				}
				if layer >= peer.height() {
					return false
				}
				if !peer.layers[layer].hasIncoming(key) {
					return false
				}
			}

			for _, p := range links.incoming {
				peer, ok := store.get(p)
				if !ok {
					return false
				}
				if layer >= peer.height() {
					return false
				}
				if !peer.layers[layer].hasOutgoing(key) {
					return false
				}
			}
		}
	}

	for _, h := range levels.heights() {
		b, ok := levels.buckets[h]
		if !ok {
			return false
		}
		for key := range b.keys {
			n, ok := store.get(key)
			if !ok {
				return false
			}
			if n.height() != h {
				return false
			}
		}
	}

	return true
}
