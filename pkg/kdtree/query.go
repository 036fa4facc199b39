package kdtree

import (
	"github.com/lintang-b-s/locusgo/pkg/datastructure"
	"github.com/lintang-b-s/locusgo/pkg/geom"
	"github.com/lintang-b-s/locusgo/pkg/spatial"
)

// NearestIndex returns the index of the item closest to target, ties broken
// by the lower original index.
func (t *Tree) NearestIndex(target geom.Point) (int, error) {
	results, err := t.nNearestSearch(1, target)
	if err != nil {
		return 0, err
	}
	return results[0].KeyOf().Index, nil
}

func (t *Tree) NearestPoint(target geom.Point) (geom.Point, error) {
	idx, err := t.NearestIndex(target)
	if err != nil {
		return geom.Point{}, err
	}
	return t.points[idx], nil
}

// NNearestIndices returns the k items closest to target, in ascending
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

func (t *Tree) NNearestPoints(k int, target geom.Point) ([]geom.Point, error) {
	indices, err := t.NNearestIndices(k, target)
	if err != nil {
		return nil, err
	}
	out := make([]geom.Point, len(indices))
	for i, idx := range indices {
		out[i] = t.points[idx]
	}
	return out, nil
}

// nNearestSearch is the branch-and-bound engine shared by NearestIndex
// (k=1) and NNearestIndices: a bounded max-heap of the k best candidates
// seen so far, and a min-heap frontier of (lower-bound, node) pairs that
// stops exploring a subtree once its bound can't beat the current k-th best.
func (t *Tree) nNearestSearch(k int, target geom.Point) ([]entryResult, error) {
	if len(t.points) == 0 {
		return nil, spatial.ErrEmptyTree
	}
	if err := spatial.ValidateK(k); err != nil {
		return nil, err
	}
	if k > len(t.points) {
		k = len(t.points)
	}

	best := datastructure.NewBoundedMaxHeap[int](k)
	frontier := datastructure.NewFrontier[int]()
	frontier.Push(0, t.root)

	for frontier.Len() > 0 {
		lb, nodeIdx, _ := frontier.Pop()
		if best.Full() && lb > best.TopKey().Dist {
			break
		}

		p := t.points[nodeIdx]
		d := geom.DistPointPoint(target, p)
		best.Push(datastructure.Key{Dist: d, Index: nodeIdx}, nodeIdx)

		n := t.nodes[nodeIdx]
		nodeCoord := coord(p, n.axis)
		targetCoord := coord(target, n.axis)
		diff := targetCoord - nodeCoord
		diff2 := diff * diff

		if targetCoord <= nodeCoord {
			if n.left != null {
				frontier.Push(lb, n.left)
			}
			if n.right != null {
				frontier.Push(max(lb, diff2), n.right)
			}
		} else {
			if n.right != null {
				frontier.Push(lb, n.right)
			}
			if n.left != null {
				frontier.Push(max(lb, diff2), n.left)
			}
		}
	}

	return best.DrainAscending(), nil
}

type entryResult = datastructure.Entry[int]

// FindBallIndices returns the indices of every point within radius of
// center, inclusive. Results are in tree-traversal order, not sorted by
// distance.
func (t *Tree) FindBallIndices(center geom.Point, radius float64) ([]int, error) {
	if len(t.points) == 0 {
		return nil, spatial.ErrEmptyTree
	}
	if err := spatial.ValidateRadius(radius); err != nil {
		return nil, err
	}
	radius2 := radius * radius

	var out []int
	t.findBall(t.root, center, radius2, &out)
	return out, nil
}

func (t *Tree) FindBallPoints(center geom.Point, radius float64) ([]geom.Point, error) {
	indices, err := t.FindBallIndices(center, radius)
	if err != nil {
		return nil, err
	}
	return t.resolve(indices), nil
}

func (t *Tree) findBall(nodeIdx int, center geom.Point, radius2 float64, out *[]int) {
	if nodeIdx == null {
		return
	}
	p := t.points[nodeIdx]
	if geom.DistPointPoint(p, center) <= radius2 {
		*out = append(*out, nodeIdx)
	}

	n := t.nodes[nodeIdx]
	nodeCoord := coord(p, n.axis)
	centerCoord := coord(center, n.axis)

	leftGap := max(0, centerCoord-nodeCoord)
	rightGap := max(0, nodeCoord-centerCoord)

	if leftGap*leftGap <= radius2 {
		t.findBall(n.left, center, radius2, out)
	}
	if rightGap*rightGap <= radius2 {
		t.findBall(n.right, center, radius2, out)
	}
}

// FindBoxIndices returns the indices of every point inside box,
// inclusive on all edges. Results are in tree-traversal order, no duplicates.
func (t *Tree) FindBoxIndices(box geom.Box) ([]int, error) {
	if len(t.points) == 0 {
		return nil, spatial.ErrEmptyTree
	}
	var out []int
	t.findBox(t.root, box, &out)
	return out, nil
}

func (t *Tree) FindBoxPoints(box geom.Box) ([]geom.Point, error) {
	indices, err := t.FindBoxIndices(box)
	if err != nil {
		return nil, err
	}
	return t.resolve(indices), nil
}

func (t *Tree) findBox(nodeIdx int, box geom.Box, out *[]int) {
	if nodeIdx == null {
		return
	}
	p := t.points[nodeIdx]
	if box.ContainsPoint(p) {
		*out = append(*out, nodeIdx)
	}

	n := t.nodes[nodeIdx]
	nodeCoord := coord(p, n.axis)
	boxMin, boxMax := axisBounds(box, n.axis)

	if boxMin <= nodeCoord {
		t.findBox(n.left, box, out)
	}
	if nodeCoord <= boxMax {
		t.findBox(n.right, box, out)
	}
}

func axisBounds(box geom.Box, axis int) (min, max float64) {
	if axis == 0 {
		return box.MinX, box.MaxX
	}
	return box.MinY, box.MaxY
}

func (t *Tree) resolve(indices []int) []geom.Point {
	out := make([]geom.Point, len(indices))
	for i, idx := range indices {
		out[i] = t.points[idx]
	}
	return out
}
