package geom

import (
	"errors"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

var ErrInvalidBox = errors.New("geom: invalid box, min must be <= max on each axis")

type Point struct {
	X, Y float64
}

func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) r2() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

// Box is an axis-aligned rectangle; zero width/height is legal.
type Box struct {
	MinX, MaxX, MinY, MaxY float64
}

func NewBox(minX, maxX, minY, maxY float64) (Box, error) {
	if minX > maxX || minY > maxY {
		return Box{}, ErrInvalidBox
	}
	return Box{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY}, nil
}

func (b Box) rect() r2.Rect {
	return r2.Rect{
		X: r1.Interval{Lo: b.MinX, Hi: b.MaxX},
		Y: r1.Interval{Lo: b.MinY, Hi: b.MaxY},
	}
}

func (b Box) CenterX() float64 { return (b.MinX + b.MaxX) / 2 }
func (b Box) CenterY() float64 { return (b.MinY + b.MaxY) / 2 }

// Union returns the smallest box containing both b and other.
func (b Box) Union(other Box) Box {
	u := b.rect().Union(other.rect())
	return fromRect(u)
}

func (b Box) ContainsBox(inner Box) bool {
	return b.rect().Contains(inner.rect())
}

func (b Box) IntersectsBox(other Box) bool {
	return b.rect().Intersects(other.rect())
}

func (b Box) ContainsPoint(p Point) bool {
	return b.rect().ContainsPoint(p.r2())
}

// DistPointPoint returns the squared Euclidean distance between p and q.
func DistPointPoint(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// DistPointBox returns the squared distance from p to the closest point of b.
func DistPointBox(p Point, b Box) float64 {
	closest := b.rect().ClampPoint(p.r2())
	return DistPointPoint(p, Point{X: closest.X, Y: closest.Y})
}

func fromRect(r r2.Rect) Box {
	return Box{MinX: r.X.Lo, MaxX: r.X.Hi, MinY: r.Y.Lo, MaxY: r.Y.Hi}
}
