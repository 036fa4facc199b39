package kdtree

import (
	"github.com/lintang-b-s/locusgo/pkg/geom"
	"github.com/lintang-b-s/locusgo/pkg/util"
)

const null = -1

// node describes item i's role as a median: its splitting axis and the
// arena indices of its left/right children (null if absent).
type node struct {
	axis        int
	left, right int
}

// Tree is an immutable k-d tree over a fixed point set.
type Tree struct {
	points []geom.Point
	nodes  []node
	root   int
}

// Build bulk-loads a k-d tree from points. The slice's order is
// preserved as the tree's index space.
func Build(points []geom.Point) *Tree {
	n := len(points)
	t := &Tree{
		points: append([]geom.Point(nil), points...),
		nodes:  make([]node, n),
		root:   null,
	}
	if n == 0 {
		return t
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	t.root = t.build(idx, 0)
	return t
}

// build partitions idx by the axis for the current depth, picks the
// exact median (quickselect, ties broken by original index), and
// recurses on the two halves.
func (t *Tree) build(idx []int, depth int) int {
	if len(idx) == 0 {
		return null
	}
	axis := depth % 2
	mid := len(idx) / 2

	util.QuickSelect(idx, mid, func(a, b int) int {
		return comparePoints(t.points[a], t.points[b], axis, a, b)
	})

	medianIdx := idx[mid]
	left := t.build(idx[:mid], depth+1)
	right := t.build(idx[mid+1:], depth+1)

	t.nodes[medianIdx] = node{axis: axis, left: left, right: right}
	return medianIdx
}

// comparePoints orders by the coordinate on axis, breaking ties by index.
func comparePoints(p, q geom.Point, axis, pIdx, qIdx int) int {
	pc, qc := coord(p, axis), coord(q, axis)
	switch {
	case pc < qc:
		return -1
	case pc > qc:
		return 1
	case pIdx < qIdx:
		return -1
	case pIdx > qIdx:
		return 1
	default:
		return 0
	}
}

func coord(p geom.Point, axis int) float64 {
	if axis == 0 {
		return p.X
	}
	return p.Y
}

func (t *Tree) Len() int { return len(t.points) }
