package hnsw

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLayerLinksInsertFindRemove(t *testing.T) {
	l := newLayerLinks(4)

	l.insertOutgoing(5, 0.5)
	l.insertOutgoing(1, 0.1)
	l.insertOutgoing(3, 0.3)

	require.True(t, l.hasOutgoing(1))
	require.True(t, l.hasOutgoing(3))
	require.True(t, l.hasOutgoing(5))
	require.False(t, l.hasOutgoing(2))

	// outgoing stays sorted by peer key.
	peers := make([]int, len(l.outgoing))
	for i, e := range l.outgoing {
		peers[i] = e.peer
	}
	require.Equal(t, []int{1, 3, 5}, peers)

	l.removeOutgoing(3)
	require.False(t, l.hasOutgoing(3))
	require.Len(t, l.outgoing, 2)

	// duplicate insert is a no-op.
	l.insertOutgoing(1, 0.9)
	idx, ok := l.find(1)
	require.True(t, ok)
	require.Equal(t, float32(0.1), l.outgoing[idx].dist)
}

func TestLayerLinksIncomingSet(t *testing.T) {
	l := newLayerLinks(4)

	l.addIncoming(7)
	l.addIncoming(9)
	l.addIncoming(7) // duplicate, no-op

	require.True(t, l.hasIncoming(7))
	require.True(t, l.hasIncoming(9))
	require.Len(t, l.incoming, 2)

	l.removeIncoming(7)
	require.False(t, l.hasIncoming(7))
	require.True(t, l.hasIncoming(9))
}

func TestLayerLinksSetOutgoingBulkReplace(t *testing.T) {
	l := newLayerLinks(4)
	l.setOutgoing([]edge{{peer: 1, dist: 0.1}, {peer: 2, dist: 0.2}})
	require.Len(t, l.outgoing, 2)
	require.True(t, l.hasOutgoing(1))
	require.True(t, l.hasOutgoing(2))
}

func TestNodeHeight(t *testing.T) {
	n := &node{layers: make([]layerLinks, 3)}
	require.Equal(t, 3, n.height())

	empty := &node{}
	require.Equal(t, 0, empty.height())
}
