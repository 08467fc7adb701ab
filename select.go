package hnsw

import "sort"

// mustVector fetches a node's vector, trusting the caller's invariant
// that key is live in store. A miss here means the graph's own
// bookkeeping is broken, not a user error.
func mustVector(store *nodeStore, key int) []float32 {
	n, ok := store.get(key)
	if !ok {
		panic("hnsw: internal invariant violation: missing node")
	}
	return n.vector
}

// selectNearest implements C6's nearest-link policy for initial link
// assignment: candidates is assumed ascending by distance to the new
// node, so the first maxLinks are simply taken.
func selectNearest(candidates []searchCandidate, maxLinks int) []searchCandidate {
	if len(candidates) <= maxLinks {
		return candidates
	}
	return candidates[:maxLinks]
}

// selectDiverse implements C6's diverse-link policy (the RNG-style
// heuristic) for initial link assignment: walk candidates ascending by
// distance to the new node, accepting c only if no already-accepted
// peer is strictly closer to c than the new node itself is. Rejected
// candidates backfill remaining slots in distance order if too few
// were accepted.
func selectDiverse(store *nodeStore, distance DistanceFunc, candidates []searchCandidate, maxLinks int) []searchCandidate {
	accepted := make([]searchCandidate, 0, maxLinks)
	acceptedVecs := make([][]float32, 0, maxLinks)
	rejected := make([]searchCandidate, 0, len(candidates))

	for _, c := range candidates {
		if len(accepted) >= maxLinks {
			break
		}
		cVec := mustVector(store, c.key)

		dominated := false
		for _, av := range acceptedVecs {
			if distance(cVec, av) < c.dist {
				dominated = true
				break
			}
		}

		if dominated {
			rejected = append(rejected, c)
		} else {
			accepted = append(accepted, c)
			acceptedVecs = append(acceptedVecs, cVec)
		}
	}

	for _, r := range rejected {
		if len(accepted) >= maxLinks {
			break
		}
		accepted = append(accepted, r)
	}
	return accepted
}

// selectLinks dispatches initial link selection by policy.
func selectLinks(store *nodeStore, cfg *Config, candidates []searchCandidate, layer int) []searchCandidate {
	maxLinks := cfg.maxLinks(layer)
	switch cfg.InsertMethod {
	case LinkNearest:
		return selectNearest(candidates, maxLinks)
	default:
		return selectDiverse(store, cfg.Distance, candidates, maxLinks)
	}
}

// tryAddLink attempts to record an owner -> candidate out-edge on
// owner's layer, honoring the degree bound (C6's "replacement form").
// If owner's out-edge set at layer has room, the candidate is simply
// added. Otherwise the configured replacement policy decides whether
// the candidate displaces an existing out-edge. Bidirectional
// bookkeeping (incoming sets on both sides) is updated to match.
func tryAddLink(store *nodeStore, cfg *Config, ownerKey, layer, candidateKey int, candidateDist float32) {
	if ownerKey == candidateKey {
		return
	}
	owner, ok := store.get(ownerKey)
	if !ok || layer >= len(owner.layers) {
		return
	}
	links := &owner.layers[layer]
	if links.hasOutgoing(candidateKey) {
		return
	}

	maxLinks := cfg.maxLinks(layer)
	if len(links.outgoing) < maxLinks {
		links.insertOutgoing(candidateKey, candidateDist)
		addIncomingAt(store, candidateKey, layer, ownerKey)
		return
	}

	var victim int
	var replace bool
	switch cfg.InsertMethod {
	case LinkNearest:
		victim, replace = replaceNearest(links, candidateDist)
	default:
		victim, replace = replaceDiverse(store, cfg.Distance, links, candidateKey, candidateDist)
	}
	if !replace {
		return
	}

	links.removeOutgoing(victim)
	removeIncomingAt(store, victim, layer, ownerKey)
	links.insertOutgoing(candidateKey, candidateDist)
	addIncomingAt(store, candidateKey, layer, ownerKey)
}

// replaceNearest is C6's nearest-link replacement form: candidate
// displaces the current furthest out-edge if it is strictly closer.
func replaceNearest(links *layerLinks, candidateDist float32) (victim int, replace bool) {
	if len(links.outgoing) == 0 {
		return 0, false
	}
	worst := 0
	for i := 1; i < len(links.outgoing); i++ {
		if links.outgoing[i].dist > links.outgoing[worst].dist {
			worst = i
		}
	}
	if candidateDist < links.outgoing[worst].dist {
		return links.outgoing[worst].peer, true
	}
	return 0, false
}

// replaceDiverse is C6's diverse-link replacement form. It mirrors the
// original index's try_add_link diverse branch exactly, including its
// asymmetry: candidateDist and each existing edge's dist are stored
// distances from owner's perspective, while distances between the
// candidate and an existing peer are recomputed on the fly. This is
// deliberate — see §9 — and must not be "fixed" into full symmetry.
func replaceDiverse(store *nodeStore, distance DistanceFunc, links *layerLinks, candidateKey int, candidateDist float32) (victim int, replace bool) {
	if len(links.outgoing) == 0 {
		return 0, false
	}
	sorted := make([]edge, len(links.outgoing))
	copy(sorted, links.outgoing)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].dist < sorted[j].dist })

	if candidateDist >= sorted[len(sorted)-1].dist {
		return 0, false
	}

	for _, e := range sorted {
		if e.peer == candidateKey {
			return 0, false
		}
	}

	candidateVec := mustVector(store, candidateKey)
	insert := true
	replaceIdx := len(sorted) - 1

	for i, e := range sorted {
		existingVec := mustVector(store, e.peer)
		if candidateDist >= e.dist {
			if candidateDist > distance(candidateVec, existingVec) {
				insert = false
				break
			}
		} else if replaceIdx > i {
			if e.dist > distance(candidateVec, existingVec) {
				replaceIdx = i
			}
		}
	}

	if !insert {
		return 0, false
	}
	return sorted[replaceIdx].peer, true
}

// addIncomingAt records that owner now lists peer as an out-edge on
// layer, updating peer's incoming set. No-op if peer has no such layer
// (should not happen given §3 invariant 2, but guarded defensively
// since this is reached from several call sites).
func addIncomingAt(store *nodeStore, peerKey, layer, owner int) {
	peer, ok := store.get(peerKey)
	if !ok || layer >= len(peer.layers) {
		return
	}
	peer.layers[layer].addIncoming(owner)
}

func removeIncomingAt(store *nodeStore, peerKey, layer, owner int) {
	peer, ok := store.get(peerKey)
	if !ok || layer >= len(peer.layers) {
		return
	}
	peer.layers[layer].removeIncoming(owner)
}

// selectCompensationNearest implements C8's nearest-link repair
// selection: among candidates (typically a removed node's out-edges)
// excluding linkTo itself and anything already in existingLinks, pick
// the one nearest to linkTo.
func selectCompensationNearest(store *nodeStore, distance DistanceFunc, linkTo int, existingLinks *layerLinks, candidates []edge) (int, bool) {
	linkToVec := mustVector(store, linkTo)
	best := -1
	bestDist := float32(0)
	for _, c := range candidates {
		if c.peer == linkTo || existingLinks.hasOutgoing(c.peer) {
			continue
		}
		d := distance(mustVector(store, c.peer), linkToVec)
		if best < 0 || d < bestDist {
			best = c.peer
			bestDist = d
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// selectCompensationDiverse implements C8's diverse-link repair
// selection: among the same filtered candidate set, sorted ascending
// by distance to linkTo, pick the first one not dominated by any of
// linkTo's current out-edges (an out-edge strictly closer to the
// candidate than linkTo is). Falls back to the closest candidate if
// every candidate is dominated.
func selectCompensationDiverse(store *nodeStore, distance DistanceFunc, linkTo int, existingLinks *layerLinks, candidates []edge) (int, bool) {
	linkToVec := mustVector(store, linkTo)

	type scored struct {
		peer int
		dist float32
	}
	filtered := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if c.peer == linkTo || existingLinks.hasOutgoing(c.peer) {
			continue
		}
		filtered = append(filtered, scored{peer: c.peer, dist: distance(mustVector(store, c.peer), linkToVec)})
	}
	if len(filtered) == 0 {
		return 0, false
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].dist < filtered[j].dist })

	for _, cand := range filtered {
		candVec := mustVector(store, cand.peer)
		good := true
		for _, e := range existingLinks.outgoing {
			existingVec := mustVector(store, e.peer)
			if distance(existingVec, candVec) < cand.dist {
				good = false
				break
			}
		}
		if good {
			return cand.peer, true
		}
	}
	return filtered[0].peer, true
}
