package datastructure

type frontierEntry[N any] struct {
	lowerBound float64
	node       N
}

// Frontier is an unbounded min-heap of (lowerBound, node) pairs. Popping
// always yields the pending node with the smallest lower bound.
type Frontier[N any] struct {
	items []frontierEntry[N]
}

func NewFrontier[N any]() *Frontier[N] {
	return &Frontier[N]{}
}

func (f *Frontier[N]) Len() int { return len(f.items) }

func (f *Frontier[N]) Push(lowerBound float64, node N) {
	f.items = append(f.items, frontierEntry[N]{lowerBound, node})
	i := len(f.items) - 1
	for i != 0 {
		parent := (i - 1) / 2
		if f.items[parent].lowerBound <= f.items[i].lowerBound {
			break
		}
		f.items[parent], f.items[i] = f.items[i], f.items[parent]
		i = parent
	}
}

// Pop removes and returns the pending node with the smallest lower bound.
// ok is false if the frontier is empty.
func (f *Frontier[N]) Pop() (lowerBound float64, node N, ok bool) {
	if len(f.items) == 0 {
		return 0, node, false
	}
	root := f.items[0]
	last := len(f.items) - 1
	f.items[0] = f.items[last]
	f.items = f.items[:last]

	i := 0
	n := len(f.items)
	for {
		smallest := i
		left, right := 2*i+1, 2*i+2
		if left < n && f.items[left].lowerBound < f.items[smallest].lowerBound {
			smallest = left
		}
		if right < n && f.items[right].lowerBound < f.items[smallest].lowerBound {
			smallest = right
		}
		if smallest == i {
			break
		}
		f.items[i], f.items[smallest] = f.items[smallest], f.items[i]
		i = smallest
	}

	return root.lowerBound, root.node, true
}
