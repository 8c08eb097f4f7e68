package planner

import (
	"github.com/jbeda/geom"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Point is a position on the planning plane
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) coord() geom.Coord { return geom.Coord{X: p.X, Y: p.Y} }

func fromCoord(c geom.Coord) Point { return Point{X: c.X, Y: c.Y} }

// Orb converts the point for use with orb geometries
func (p Point) Orb() orb.Point { return orb.Point{p.X, p.Y} }

// PointFromOrb converts an orb point
func PointFromOrb(p orb.Point) Point { return Point{X: p.X(), Y: p.Y()} }

// Sub returns the vector p - q
func (p Point) Sub(q Point) Point { return fromCoord(p.coord().Minus(q.coord())) }

// Add returns the vector p + q
func (p Point) Add(q Point) Point { return fromCoord(p.coord().Plus(q.coord())) }

// Scale multiplies the vector by s
func (p Point) Scale(s float64) Point { return fromCoord(p.coord().Times(s)) }

// Norm is the Euclidean length of the vector
func (p Point) Norm() float64 { return p.coord().Magnitude() }

// Unit returns the normalized vector. The zero vector is returned unchanged.
func (p Point) Unit() Point {
	if p.IsZero() {
		return p
	}
	return fromCoord(p.coord().Unit())
}

// IsZero reports whether both components are exactly zero
func (p Point) IsZero() bool { return p.X == 0 && p.Y == 0 }

// Distance calculates Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	return p.coord().DistanceFrom(other.coord())
}

// Perpendicular rotates the vector by 90 degrees: counterclockwise for a
// positive sign, clockwise for a negative one.
func (p Point) Perpendicular(sign float64) Point {
	return fromCoord(geom.Coord{X: -sign * p.Y, Y: sign * p.X})
}

// Lerp returns the point at parameter t along p→q
func (p Point) Lerp(q Point, t float64) Point {
	return p.Add(q.Sub(p).Scale(t))
}

// LineSegment represents a line segment between two points
type LineSegment struct {
	P1, P2 Point
}

// DistanceTo returns the shortest distance from point to the segment
func (s LineSegment) DistanceTo(point Point) float64 {
	return planar.DistanceFromSegment(s.P1.Orb(), s.P2.Orb(), point.Orb())
}

// Bound returns the axis-aligned bounding box of the segment
func (s LineSegment) Bound() orb.Bound {
	return orb.Bound{Min: s.P1.Orb(), Max: s.P1.Orb()}.Extend(s.P2.Orb())
}
