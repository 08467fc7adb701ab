// Package heap implements the two-priority-queue primitive the graph
// search kernel needs: a closest-first expansion frontier (pop the
// smallest) and a bounded furthest-first result set (evict the
// largest on overflow). Both are the same underlying binary min-heap
// — Pop drains it smallest-first, while Max/PopLast give O(n) access
// to the current worst element so a bounded result set can evict it.
package heap

// Lesser orders a type by a single strict-weak ordering, the same way
// sort.Interface does but scoped to a single generic element.
type Lesser[T any] interface {
	Less(T) bool
}

// Heap is a binary min-heap over any Lesser[T]. The zero value is an
// empty heap.
type Heap[T Lesser[T]] struct {
	items []T
}

// Init builds a heap in place over items, taking ownership of the
// slice (it is reordered).
func (h *Heap[T]) Init(items []T) {
	h.items = items
	for i := len(h.items)/2 - 1; i >= 0; i-- {
		h.siftDown(i)
	}
}

// Len returns the number of items in the heap.
func (h *Heap[T]) Len() int {
	return len(h.items)
}

// Push adds v to the heap.
func (h *Heap[T]) Push(v T) {
	h.items = append(h.items, v)
	h.siftUp(len(h.items) - 1)
}

// Min returns, without removing, the smallest item.
func (h *Heap[T]) Min() T {
	return h.items[0]
}

// Pop removes and returns the smallest item.
func (h *Heap[T]) Pop() T {
	n := len(h.items) - 1
	h.items[0], h.items[n] = h.items[n], h.items[0]
	v := h.items[n]
	h.items = h.items[:n]
	if n > 0 {
		h.siftDown(0)
	}
	return v
}

// Max returns, without removing, the largest item. O(n).
func (h *Heap[T]) Max() T {
	worst := 0
	for i := 1; i < len(h.items); i++ {
		if h.items[worst].Less(h.items[i]) {
			worst = i
		}
	}
	return h.items[worst]
}

// PopLast removes and returns the largest item. O(n).
func (h *Heap[T]) PopLast() T {
	worst := 0
	for i := 1; i < len(h.items); i++ {
		if h.items[worst].Less(h.items[i]) {
			worst = i
		}
	}
	return h.remove(worst)
}

// remove deletes the item at index i, restoring the heap property,
// and returns it.
func (h *Heap[T]) remove(i int) T {
	n := len(h.items) - 1
	h.items[i], h.items[n] = h.items[n], h.items[i]
	v := h.items[n]
	h.items = h.items[:n]
	if i < n {
		h.siftDown(i)
		h.siftUp(i)
	}
	return v
}

// Slice returns the heap's backing items in heap order (not sorted).
// Callers that need ascending order should sort the result.
func (h *Heap[T]) Slice() []T {
	return h.items
}

func (h *Heap[T]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.items[i].Less(h.items[parent]) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *Heap[T]) siftDown(i int) {
	n := len(h.items)
	for {
		left := 2*i + 1
		right := 2*i + 2
		smallest := i
		if left < n && h.items[left].Less(h.items[smallest]) {
			smallest = left
		}
		if right < n && h.items[right].Less(h.items[smallest]) {
			smallest = right
		}
		if smallest == i {
			return
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}
