package datastructure

// Key is the ranking key for a candidate: squared distance, with the
// original item index as a tie-break (lower index wins).
type Key struct {
	Dist  float64
	Index int
}

func (a Key) Less(b Key) bool {
	if a.Dist != b.Dist {
		return a.Dist < b.Dist
	}
	return a.Index < b.Index
}

// Entry is a (key, item) pair as drained from a BoundedMaxHeap.
type Entry[T any] struct {
	key  Key
	item T
}

func (e Entry[T]) Value() T { return e.item }

func (e Entry[T]) KeyOf() Key { return e.key }

// BoundedMaxHeap retains at most k (key, item) pairs, evicting the
// current worst whenever a strictly better candidate arrives at a full
// heap. The root is always the worst accepted key.
type BoundedMaxHeap[T any] struct {
	capacity int
	items    []Entry[T]
}

func NewBoundedMaxHeap[T any](k int) *BoundedMaxHeap[T] {
	return &BoundedMaxHeap[T]{
		capacity: k,
		items:    make([]Entry[T], 0, k),
	}
}

func (h *BoundedMaxHeap[T]) Len() int { return len(h.items) }

func (h *BoundedMaxHeap[T]) Full() bool { return len(h.items) >= h.capacity }

// TopKey returns the current worst accepted key; only meaningful when Len() > 0.
func (h *BoundedMaxHeap[T]) TopKey() Key { return h.items[0].key }

func (h *BoundedMaxHeap[T]) Push(key Key, item T) {
	if !h.Full() {
		h.items = append(h.items, Entry[T]{key, item})
		h.siftUp(len(h.items) - 1)
		return
	}
	if !key.Less(h.items[0].key) {
		return
	}
	h.items[0] = Entry[T]{key, item}
	h.siftDown(0)
}

func (h *BoundedMaxHeap[T]) siftUp(i int) {
	for i != 0 {
		parent := (i - 1) / 2
		if !h.items[parent].key.Less(h.items[i].key) {
			break
		}
		h.items[parent], h.items[i] = h.items[i], h.items[parent]
		i = parent
	}
}

func (h *BoundedMaxHeap[T]) siftDown(i int) {
	n := len(h.items)
	for {
		largest := i
		left, right := 2*i+1, 2*i+2
		if left < n && h.items[largest].key.Less(h.items[left].key) {
			largest = left
		}
		if right < n && h.items[largest].key.Less(h.items[right].key) {
			largest = right
		}
		if largest == i {
			return
		}
		h.items[i], h.items[largest] = h.items[largest], h.items[i]
		i = largest
	}
}

// DrainAscending empties the heap and returns its items in ascending key
// order. Each extraction removes the current worst remaining key, so
// filling the result backwards from its last slot produces ascending order.
func (h *BoundedMaxHeap[T]) DrainAscending() []Entry[T] {
	n := len(h.items)
	out := make([]Entry[T], n)
	for i := n - 1; i >= 0; i-- {
		out[i] = h.items[0]
		h.items[0] = h.items[len(h.items)-1]
		h.items = h.items[:len(h.items)-1]
		h.siftDown(0)
	}
	return out
}
