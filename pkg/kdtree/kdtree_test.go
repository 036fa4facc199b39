package kdtree_test

import (
	"math"
	"sort"
	"testing"

	"github.com/lintang-b-s/locusgo/pkg/geom"
	"github.com/lintang-b-s/locusgo/pkg/kdtree"
	"github.com/lintang-b-s/locusgo/pkg/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// s1Points builds the seed scenario {(-10+i, i) : i in 0..20}.
func s1Points() []geom.Point {
	pts := make([]geom.Point, 21)
	for i := 0; i <= 20; i++ {
		pts[i] = geom.NewPoint(float64(-10+i), float64(i))
	}
	return pts
}

func TestS1NearestAndKNearest(t *testing.T) {
	tree := kdtree.Build(s1Points())

	idx, err := tree.NearestIndex(geom.NewPoint(0, 0))
	require.NoError(t, err)
	assert.Equal(t, 5, idx)

	p, err := tree.NearestPoint(geom.NewPoint(0, 0))
	require.NoError(t, err)
	assert.Equal(t, geom.NewPoint(-5, 5), p)

	// Distances: index 5 is 50, indices 4 and 6 tie at 52. Ties break on
	// the lower original index, so the second-nearest slot is index 4.
	indices, err := tree.NNearestIndices(2, geom.NewPoint(0, 0))
	require.NoError(t, err)
	assert.Equal(t, []int{5, 4}, indices)
}

func TestS1FindBoxIndices(t *testing.T) {
	tree := kdtree.Build(s1Points())
	box, err := geom.NewBox(-1, 1, 0, 10)
	require.NoError(t, err)

	indices, err := tree.FindBoxIndices(box)
	require.NoError(t, err)

	sort.Ints(indices)
	assert.Equal(t, []int{9, 10}, indices)
}

func TestS2FindBallIndices(t *testing.T) {
	tree := kdtree.Build(s1Points())

	indices, err := tree.FindBallIndices(geom.NewPoint(0, 3), 5)
	require.NoError(t, err)
	sort.Ints(indices)
	assert.Equal(t, []int{6, 7}, indices)

	points, err := tree.FindBallPoints(geom.NewPoint(0, 3), 5)
	require.NoError(t, err)
	sort.Slice(points, func(i, j int) bool { return points[i].X < points[j].X })
	assert.Equal(t, []geom.Point{geom.NewPoint(-4, 6), geom.NewPoint(-3, 7)}, points)
}

func TestEmptyTreeFailsAllQueries(t *testing.T) {
	tree := kdtree.Build(nil)

	_, err := tree.NearestIndex(geom.NewPoint(0, 0))
	assert.ErrorIs(t, err, spatial.ErrEmptyTree)

	_, err = tree.NNearestIndices(1, geom.NewPoint(0, 0))
	assert.ErrorIs(t, err, spatial.ErrEmptyTree)

	_, err = tree.FindBallIndices(geom.NewPoint(0, 0), 1)
	assert.ErrorIs(t, err, spatial.ErrEmptyTree)

	box, _ := geom.NewBox(0, 1, 0, 1)
	_, err = tree.FindBoxIndices(box)
	assert.ErrorIs(t, err, spatial.ErrEmptyTree)
}

func TestInvalidKAndRadius(t *testing.T) {
	tree := kdtree.Build(s1Points())

	_, err := tree.NNearestIndices(0, geom.NewPoint(0, 0))
	assert.ErrorIs(t, err, spatial.ErrInvalidK)

	_, err = tree.FindBallIndices(geom.NewPoint(0, 0), -1)
	assert.ErrorIs(t, err, spatial.ErrInvalidRadius)
}

func TestIndexFidelity(t *testing.T) {
	pts := randomPoints(200, 5)
	tree := kdtree.Build(pts)

	for i, p := range pts {
		idx, err := tree.NearestIndex(p)
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}
}

func TestNearestMatchesBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	pts := randomPoints(300, 7)
	tree := kdtree.Build(pts)

	for trial := 0; trial < 50; trial++ {
		q := geom.NewPoint(rnd.Float64()*200-100, rnd.Float64()*200-100)
		got, err := tree.NearestIndex(q)
		require.NoError(t, err)
		assert.Equal(t, bruteForceNearest(pts, q), got)
	}
}

func TestNNearestMatchesSortedBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	pts := randomPoints(150, 11)
	tree := kdtree.Build(pts)

	for trial := 0; trial < 20; trial++ {
		q := geom.NewPoint(rnd.Float64()*200-100, rnd.Float64()*200-100)
		k := 1 + trial%10
		got, err := tree.NNearestIndices(k, q)
		require.NoError(t, err)
		assert.Equal(t, bruteForceKNearest(pts, q, k), got)

		again, err := tree.NNearestIndices(k, q)
		require.NoError(t, err)
		assert.Equal(t, got, again)
	}
}

func TestNNearestMonotonicInK(t *testing.T) {
	pts := randomPoints(80, 3)
	tree := kdtree.Build(pts)
	q := geom.NewPoint(1, 2)

	small, err := tree.NNearestIndices(3, q)
	require.NoError(t, err)
	large, err := tree.NNearestIndices(8, q)
	require.NoError(t, err)

	assert.Equal(t, small, large[:3])
}

func TestNNearestBeyondLenReturnsAll(t *testing.T) {
	pts := randomPoints(5, 2)
	tree := kdtree.Build(pts)
	got, err := tree.NNearestIndices(100, geom.NewPoint(0, 0))
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestFindBoxSoundAndComplete(t *testing.T) {
	pts := randomPoints(200, 13)
	tree := kdtree.Build(pts)
	box, err := geom.NewBox(-10, 10, -10, 10)
	require.NoError(t, err)

	got, err := tree.FindBoxIndices(box)
	require.NoError(t, err)

	var want []int
	for i, p := range pts {
		if box.ContainsPoint(p) {
			want = append(want, i)
		}
	}
	sort.Ints(got)
	sort.Ints(want)
	assert.Equal(t, want, got)
	assert.Equal(t, len(unique(got)), len(got))
}

func TestBuildDeterministic(t *testing.T) {
	pts := randomPoints(100, 42)
	t1 := kdtree.Build(pts)
	t2 := kdtree.Build(pts)

	for i := 0; i < 20; i++ {
		q := pts[i]
		i1, err1 := t1.NNearestIndices(5, q)
		i2, err2 := t2.NNearestIndices(5, q)
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, i1, i2)
	}
}

func TestLargeTreeStaysCorrect(t *testing.T) {
	pts := randomPoints(2000, 99)
	tree := kdtree.Build(pts)
	idx, err := tree.NearestIndex(pts[500])
	require.NoError(t, err)
	assert.Equal(t, 500, idx)
}

func randomPoints(n int, seed uint64) []geom.Point {
	rnd := rand.New(rand.NewSource(seed))
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = geom.NewPoint(rnd.Float64()*200-100, rnd.Float64()*200-100)
	}
	return pts
}

func bruteForceNearest(pts []geom.Point, q geom.Point) int {
	best := 0
	bestDist := math.Inf(1)
	for i, p := range pts {
		d := geom.DistPointPoint(p, q)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func bruteForceKNearest(pts []geom.Point, q geom.Point, k int) []int {
	type cand struct {
		dist float64
		idx  int
	}
	cands := make([]cand, len(pts))
	for i, p := range pts {
		cands[i] = cand{geom.DistPointPoint(p, q), i}
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].idx < cands[j].idx
	})
	if k > len(cands) {
		k = len(cands)
	}
	out := make([]int, k)
	for i := 0; i < k; i++ {
		out[i] = cands[i].idx
	}
	return out
}

func unique(xs []int) []int {
	seen := make(map[int]struct{}, len(xs))
	var out []int
	for _, x := range xs {
		if _, ok := seen[x]; !ok {
			seen[x] = struct{}{}
			out = append(out, x)
		}
	}
	return out
}
