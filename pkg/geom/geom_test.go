package geom_test

import (
	"testing"

	"github.com/lintang-b-s/locusgo/pkg/geom"
	"github.com/stretchr/testify/assert"
)

func TestNewBoxRejectsInvertedBounds(t *testing.T) {
	_, err := geom.NewBox(10, 0, 0, 10)
	assert.ErrorIs(t, err, geom.ErrInvalidBox)

	_, err = geom.NewBox(0, 10, 10, 0)
	assert.ErrorIs(t, err, geom.ErrInvalidBox)
}

func TestNewBoxAllowsDegenerateBounds(t *testing.T) {
	b, err := geom.NewBox(5, 5, 5, 5)
	assert.NoError(t, err)
	assert.Equal(t, 5.0, b.CenterX())
	assert.Equal(t, 5.0, b.CenterY())
}

func TestDistPointPoint(t *testing.T) {
	p := geom.NewPoint(0, 0)
	q := geom.NewPoint(3, 4)
	assert.Equal(t, 25.0, geom.DistPointPoint(p, q))
}

func TestDistPointBoxInsideIsZero(t *testing.T) {
	b, err := geom.NewBox(-1, 1, -1, 1)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, geom.DistPointBox(geom.NewPoint(0, 0), b))
}

func TestDistPointBoxOutside(t *testing.T) {
	b, err := geom.NewBox(0, 10, 0, 10)
	assert.NoError(t, err)
	// Closest point is (0, 0); distance from (-3, -4) is 3^2+4^2 = 25.
	assert.Equal(t, 25.0, geom.DistPointBox(geom.NewPoint(-3, -4), b))
}

func TestBoxContainsAndIntersects(t *testing.T) {
	outer, _ := geom.NewBox(0, 10, 0, 10)
	inner, _ := geom.NewBox(1, 2, 1, 2)
	disjoint, _ := geom.NewBox(20, 30, 20, 30)
	overlapping, _ := geom.NewBox(5, 15, 5, 15)

	assert.True(t, outer.ContainsBox(inner))
	assert.False(t, inner.ContainsBox(outer))
	assert.True(t, outer.IntersectsBox(overlapping))
	assert.False(t, outer.IntersectsBox(disjoint))
	assert.True(t, outer.ContainsPoint(geom.NewPoint(0, 0)))
	assert.False(t, outer.ContainsPoint(geom.NewPoint(-1, 0)))
}

func TestBoxUnion(t *testing.T) {
	a, _ := geom.NewBox(0, 1, 0, 1)
	b, _ := geom.NewBox(5, 6, -2, -1)
	u := a.Union(b)
	assert.Equal(t, geom.Box{MinX: 0, MaxX: 6, MinY: -2, MaxY: 1}, u)
}
