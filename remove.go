package hnsw

// removeNode implements C8, mirroring the original index's remove():
// sever every bidirectional link the node participates in, optionally
// repair orphaned incoming peers by linking them to a replacement
// chosen from the removed node's own out-edges, then erase the node
// from the level directory and the node store (both shrink on sparse
// load).
func (idx *Index) removeNode(key int) {
	n, ok := idx.store.get(key)
	if !ok {
		return
	}

	layers := n.layers

	for layer := 0; layer < len(layers); layer++ {
		for _, out := range layers[layer].outgoing {
			removeIncomingAt(idx.store, out.peer, layer, key)
		}
		for _, in := range layers[layer].incoming {
			removeOutgoingAt(idx.store, in, layer, key)
		}
	}

	if idx.cfg.RemoveMethod != NoLink {
		for layer := 0; layer < len(layers); layer++ {
			for _, inverted := range layers[layer].incoming {
				idx.compensate(layer, inverted, layers[layer].outgoing)
			}
		}
	}

	height := n.height()
	idx.levels.remove(height, key)
	idx.store.erase(key)
}

// compensate picks a replacement out-edge for peerKey at layer from
// candidates (the removed node's former out-edges at that layer),
// installs it directly (a slot was just freed by severing the link to
// the removed node), and attempts the reverse link via the
// degree-bound-respecting replacement form.
func (idx *Index) compensate(layer, peerKey int, candidates []edge) {
	peer, ok := idx.store.get(peerKey)
	if !ok || layer >= len(peer.layers) {
		return
	}
	existing := &peer.layers[layer]

	var chosen int
	var found bool
	switch idx.cfg.InsertMethod {
	case LinkNearest:
		chosen, found = selectCompensationNearest(idx.store, idx.cfg.Distance, peerKey, existing, candidates)
	default:
		chosen, found = selectCompensationDiverse(idx.store, idx.cfg.Distance, peerKey, existing, candidates)
	}
	if !found {
		return
	}

	d := idx.cfg.Distance(mustVector(idx.store, peerKey), mustVector(idx.store, chosen))
	existing.insertOutgoing(chosen, d)
	addIncomingAt(idx.store, chosen, layer, peerKey)

	tryAddLink(idx.store, &idx.cfg, chosen, layer, peerKey, d)
}

func removeOutgoingAt(store *nodeStore, ownerKey, layer, peer int) {
	owner, ok := store.get(ownerKey)
	if !ok || layer >= len(owner.layers) {
		return
	}
	owner.layers[layer].removeOutgoing(peer)
}
