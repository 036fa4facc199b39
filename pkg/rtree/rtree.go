package rtree

import (
	"math"
	"sort"

	"github.com/lintang-b-s/locusgo/pkg/geom"
	"github.com/lintang-b-s/locusgo/pkg/spatial"
)

const null = -1

// DefaultMaxChildren is the node capacity used when BuildOptions.MaxChildren
// is left at its zero value.
const DefaultMaxChildren = 16

type BuildOptions struct {
	MaxChildren int
}

// node is either a leaf (one item's index and box) or an internal node
// (the union bounding box of its children and their arena indices).
type node struct {
	isLeaf    bool
	box       geom.Box
	itemIndex int   // meaningful only when isLeaf
	children  []int // meaningful only when !isLeaf
}

// Tree is an immutable R-tree over a fixed box set.
type Tree struct {
	boxes []geom.Box
	nodes []node
	root  int
}

// Build bulk-loads an R-tree from boxes using sort-tile-recursive
// packing. opts.MaxChildren must be >= 2; a zero value defaults to
// DefaultMaxChildren.
func Build(boxes []geom.Box, opts BuildOptions) (*Tree, error) {
	maxChildren := opts.MaxChildren
	if maxChildren == 0 {
		maxChildren = DefaultMaxChildren
	}
	if err := spatial.ValidateCapacity(maxChildren); err != nil {
		return nil, err
	}

	t := &Tree{
		boxes: append([]geom.Box(nil), boxes...),
		root:  null,
	}
	n := len(boxes)
	if n == 0 {
		return t, nil
	}

	level := make([]int, n)
	for i := range boxes {
		level[i] = t.newNode(node{isLeaf: true, box: boxes[i], itemIndex: i})
	}

	for len(level) > maxChildren {
		level = t.packLevel(level, maxChildren)
	}

	if len(level) == 1 {
		t.root = level[0]
		return t, nil
	}
	t.root = t.newNode(t.internalOf(level))
	return t, nil
}

func (t *Tree) newNode(n node) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func (t *Tree) internalOf(children []int) node {
	box := t.nodes[children[0]].box
	for _, c := range children[1:] {
		box = box.Union(t.nodes[c].box)
	}
	return node{isLeaf: false, box: box, children: append([]int(nil), children...)}
}

// packLevel sorts by x-center into S vertical slabs, sorts each slab by
// y-center, and packs consecutive runs of maxChildren into parent nodes.
func (t *Tree) packLevel(level []int, maxChildren int) []int {
	l := len(level)
	p := ceilDiv(l, maxChildren)
	s := int(math.Ceil(math.Sqrt(float64(p))))

	sorted := append([]int(nil), level...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return t.nodes[sorted[i]].box.CenterX() < t.nodes[sorted[j]].box.CenterX()
	})

	slabSize := ceilDiv(l, s)
	var parents []int
	for start := 0; start < l; start += slabSize {
		end := min(start+slabSize, l)
		slab := sorted[start:end]

		sort.SliceStable(slab, func(i, j int) bool {
			return t.nodes[slab[i]].box.CenterY() < t.nodes[slab[j]].box.CenterY()
		})

		for g := 0; g < len(slab); g += maxChildren {
			group := slab[g:min(g+maxChildren, len(slab))]
			parents = append(parents, t.newNode(t.internalOf(group)))
		}
	}
	return parents
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func (t *Tree) Len() int { return len(t.boxes) }
