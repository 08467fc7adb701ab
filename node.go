package hnsw

import "sort"

// edge is one outgoing link: a peer's internal key and the distance
// from the owning node to that peer, captured at link time. Per §3
// invariant 4, this stored distance is never recomputed once set.
type edge struct {
	peer int
	dist float32
}

// layerLinks is the per-layer, per-node link table (C4). outgoing is
// kept sorted by peer key for logarithmic membership tests and
// deterministic ordered iteration; incoming is an unordered slice since
// membership on it is only ever a linear scan at M≈32.
type layerLinks struct {
	outgoing []edge
	incoming []int
}

func newLayerLinks(maxLinks int) layerLinks {
	return layerLinks{
		outgoing: make([]edge, 0, maxLinks),
		incoming: make([]int, 0, maxLinks),
	}
}

// find returns the index of peer in outgoing and whether it was found.
func (l *layerLinks) find(peer int) (int, bool) {
	i := sort.Search(len(l.outgoing), func(i int) bool {
		return l.outgoing[i].peer >= peer
	})
	if i < len(l.outgoing) && l.outgoing[i].peer == peer {
		return i, true
	}
	return i, false
}

// hasOutgoing reports whether peer is already an out-edge.
func (l *layerLinks) hasOutgoing(peer int) bool {
	_, ok := l.find(peer)
	return ok
}

// insertOutgoing inserts (peer, dist) keeping outgoing sorted by peer
// key. No-op if peer is already present.
func (l *layerLinks) insertOutgoing(peer int, dist float32) {
	i, ok := l.find(peer)
	if ok {
		return
	}
	l.outgoing = append(l.outgoing, edge{})
	copy(l.outgoing[i+1:], l.outgoing[i:])
	l.outgoing[i] = edge{peer: peer, dist: dist}
}

// removeOutgoing deletes peer from outgoing, if present.
func (l *layerLinks) removeOutgoing(peer int) {
	i, ok := l.find(peer)
	if !ok {
		return
	}
	l.outgoing = append(l.outgoing[:i], l.outgoing[i+1:]...)
}

// setOutgoing bulk-replaces outgoing with a pre-sorted, unique-by-peer
// sequence. Used when installing the link set chosen at insert time.
func (l *layerLinks) setOutgoing(sorted []edge) {
	l.outgoing = sorted
}

// addIncoming records peer as listing this node in its outgoing set.
// No-op if already present.
func (l *layerLinks) addIncoming(peer int) {
	for _, p := range l.incoming {
		if p == peer {
			return
		}
	}
	l.incoming = append(l.incoming, peer)
}

// removeIncoming deletes peer from incoming, if present.
func (l *layerLinks) removeIncoming(peer int) {
	for i, p := range l.incoming {
		if p == peer {
			l.incoming[i] = l.incoming[len(l.incoming)-1]
			l.incoming = l.incoming[:len(l.incoming)-1]
			return
		}
	}
}

func (l *layerLinks) hasIncoming(peer int) bool {
	for _, p := range l.incoming {
		if p == peer {
			return true
		}
	}
	return false
}

// node is a single point in the graph: an immutable vector and its
// mutable participation in layers 0..height-1. Created by Insert,
// destroyed by Remove.
type node struct {
	vector []float32
	layers []layerLinks
}

// height returns the number of layers this node participates in.
func (n *node) height() int {
	return len(n.layers)
}
