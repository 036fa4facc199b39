package rtree

import (
	"github.com/lintang-b-s/locusgo/pkg/datastructure"
	"github.com/lintang-b-s/locusgo/pkg/geom"
	"github.com/lintang-b-s/locusgo/pkg/spatial"
)

// NearestIndex returns the index of the box closest to target, ties broken by
// the lower original index.
func (t *Tree) NearestIndex(target geom.Point) (int, error) {
	results, err := t.nNearestSearch(1, target)
	if err != nil {
		return 0, err
	}
	return results[0].KeyOf().Index, nil
}

func (t *Tree) NearestBox(target geom.Point) (geom.Box, error) {
	idx, err := t.NearestIndex(target)
	if err != nil {
		return geom.Box{}, err
	}
	return t.boxes[idx], nil
}

// NNearestIndices returns the k boxes closest to target, in ascending
// distance order, ties broken by original index. If k > Len(), all
// items are returned.
func (t *Tree) NNearestIndices(k int, target geom.Point) ([]int, error) {
	results, err := t.nNearestSearch(k, target)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(results))
	for i, r := range results {
		out[i] = r.KeyOf().Index
	}
	return out, nil
}

func (t *Tree) NNearestBoxes(k int, target geom.Point) ([]geom.Box, error) {
	indices, err := t.NNearestIndices(k, target)
	if err != nil {
		return nil, err
	}
	return t.resolve(indices), nil
}

// nNearestSearch is the incremental-nearest-neighbor engine shared by
// NearestIndex (k=1) and NNearestIndices: a bounded max-heap plus a
// min-heap frontier, with lower bounds computed from geom.DistPointBox
// against each node's bounding box.
func (t *Tree) nNearestSearch(k int, target geom.Point) ([]datastructure.Entry[int], error) {
	if len(t.boxes) == 0 {
		return nil, spatial.ErrEmptyTree
	}
	if err := spatial.ValidateK(k); err != nil {
		return nil, err
	}
	if k > len(t.boxes) {
		k = len(t.boxes)
	}

	best := datastructure.NewBoundedMaxHeap[int](k)
	frontier := datastructure.NewFrontier[int]()
	frontier.Push(geom.DistPointBox(target, t.nodes[t.root].box), t.root)

	for frontier.Len() > 0 {
		lb, nodeIdx, _ := frontier.Pop()
		if best.Full() && lb > best.TopKey().Dist {
			break
		}

		n := t.nodes[nodeIdx]
		if n.isLeaf {
			best.Push(datastructure.Key{Dist: lb, Index: n.itemIndex}, n.itemIndex)
			continue
		}
		for _, c := range n.children {
			frontier.Push(geom.DistPointBox(target, t.nodes[c].box), c)
		}
	}

	return best.DrainAscending(), nil
}

// FindSubsetsIndices returns the indices of every box contained in q.
// Internal nodes whose own bounding box is already contained in q have
// every descendant leaf emitted without further predicate checks; nodes
// whose box does not even intersect q are pruned entirely.
func (t *Tree) FindSubsetsIndices(q geom.Box) ([]int, error) {
	if len(t.boxes) == 0 {
		return nil, spatial.ErrEmptyTree
	}
	var out []int
	t.findSubsets(t.root, q, &out)
	return out, nil
}

func (t *Tree) FindSubsets(q geom.Box) ([]geom.Box, error) {
	indices, err := t.FindSubsetsIndices(q)
	if err != nil {
		return nil, err
	}
	return t.resolve(indices), nil
}

func (t *Tree) findSubsets(nodeIdx int, q geom.Box, out *[]int) {
	n := t.nodes[nodeIdx]
	if n.isLeaf {
		if q.ContainsBox(n.box) {
			*out = append(*out, n.itemIndex)
		}
		return
	}
	if !n.box.IntersectsBox(q) {
		return
	}
	if q.ContainsBox(n.box) {
		t.emitAll(nodeIdx, out)
		return
	}
	for _, c := range n.children {
		t.findSubsets(c, q, out)
	}
}

func (t *Tree) emitAll(nodeIdx int, out *[]int) {
	n := t.nodes[nodeIdx]
	if n.isLeaf {
		*out = append(*out, n.itemIndex)
		return
	}
	for _, c := range n.children {
		t.emitAll(c, out)
	}
}

// FindSupersetsIndices returns the indices of every box containing q.
// Any node whose bounding box does not contain q is pruned.
func (t *Tree) FindSupersetsIndices(q geom.Box) ([]int, error) {
	if len(t.boxes) == 0 {
		return nil, spatial.ErrEmptyTree
	}
	var out []int
	t.findSupersets(t.root, q, &out)
	return out, nil
}

func (t *Tree) FindSupersets(q geom.Box) ([]geom.Box, error) {
	indices, err := t.FindSupersetsIndices(q)
	if err != nil {
		return nil, err
	}
	return t.resolve(indices), nil
}

func (t *Tree) findSupersets(nodeIdx int, q geom.Box, out *[]int) {
	n := t.nodes[nodeIdx]
	if !n.box.ContainsBox(q) {
		return
	}
	if n.isLeaf {
		*out = append(*out, n.itemIndex)
		return
	}
	for _, c := range n.children {
		t.findSupersets(c, q, out)
	}
}

// FindBoxIndices returns the indices of every box intersecting q.
func (t *Tree) FindBoxIndices(q geom.Box) ([]int, error) {
	if len(t.boxes) == 0 {
		return nil, spatial.ErrEmptyTree
	}
	var out []int
	t.findBox(t.root, q, &out)
	return out, nil
}

func (t *Tree) FindBoxBoxes(q geom.Box) ([]geom.Box, error) {
	indices, err := t.FindBoxIndices(q)
	if err != nil {
		return nil, err
	}
	return t.resolve(indices), nil
}

func (t *Tree) findBox(nodeIdx int, q geom.Box, out *[]int) {
	n := t.nodes[nodeIdx]
	if !n.box.IntersectsBox(q) {
		return
	}
	if n.isLeaf {
		*out = append(*out, n.itemIndex)
		return
	}
	for _, c := range n.children {
		t.findBox(c, q, out)
	}
}

func (t *Tree) resolve(indices []int) []geom.Box {
	out := make([]geom.Box, len(indices))
	for i, idx := range indices {
		out[i] = t.boxes[idx]
	}
	return out
}
