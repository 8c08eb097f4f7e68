package planner

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestPointVectorOps(t *testing.T) {
	a := Point{X: 3, Y: 4}
	b := Point{X: 1, Y: 1}

	assert.Equal(t, Point{X: 2, Y: 3}, a.Sub(b))
	assert.Equal(t, Point{X: 4, Y: 5}, a.Add(b))
	assert.Equal(t, Point{X: 6, Y: 8}, a.Scale(2))
	assert.InDelta(t, 5.0, a.Norm(), 1e-12)
	assert.InDelta(t, 5.0, a.Distance(Point{}), 1e-12)

	u := a.Unit()
	assert.InDelta(t, 0.6, u.X, 1e-12)
	assert.InDelta(t, 0.8, u.Y, 1e-12)

	assert.Equal(t, Point{}, Point{}.Unit(), "zero vector stays zero")
	assert.Equal(t, Point{X: 2, Y: 2.5}, a.Lerp(b, 0.5))
}

func TestPointPerpendicular(t *testing.T) {
	v := Point{X: 1, Y: 0}

	ccw := v.Perpendicular(1)
	assert.InDelta(t, 0.0, ccw.X, 1e-12)
	assert.InDelta(t, 1.0, ccw.Y, 1e-12)

	cw := v.Perpendicular(-1)
	assert.InDelta(t, 0.0, cw.X, 1e-12)
	assert.InDelta(t, -1.0, cw.Y, 1e-12)

	// rotation keeps the length
	w := Point{X: 3, Y: -7}
	assert.InDelta(t, w.Norm(), w.Perpendicular(1).Norm(), 1e-12)
}

func TestLineSegment(t *testing.T) {
	seg := LineSegment{P1: Point{X: 0, Y: 0}, P2: Point{X: 10, Y: 0}}

	assert.InDelta(t, 5.0, seg.DistanceTo(Point{X: 5, Y: 5}), 1e-12)
	assert.InDelta(t, 5.0, seg.DistanceTo(Point{X: 15, Y: 0}), 1e-12, "beyond the end uses the endpoint")

	b := LineSegment{P1: Point{X: 4, Y: -2}, P2: Point{X: -1, Y: 3}}.Bound()
	assert.Equal(t, orb.Bound{Min: orb.Point{-1, -2}, Max: orb.Point{4, 3}}, b)
}

func TestTrajectory(t *testing.T) {
	tr := Trajectory{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 10}}

	assert.Equal(t, Point{X: 0, Y: 0}, tr.Start())
	assert.Equal(t, Point{X: 3, Y: 10}, tr.Goal())
	assert.InDelta(t, 11.0, tr.Length(), 1e-12)
	assert.Len(t, tr.Segments(), 2)
	assert.Equal(t, orb.LineString{{0, 0}, {3, 4}, {3, 10}}, tr.LineString())

	clone := tr.Clone()
	clone[1].X = 99
	assert.Equal(t, 3.0, tr[1].X, "clone must not share storage")

	assert.Zero(t, Trajectory{{X: 1, Y: 1}}.Length())
	assert.Nil(t, Trajectory{{X: 1, Y: 1}}.Segments())
}

func TestJoin(t *testing.T) {
	a := Trajectory{{X: 0, Y: 0}, {X: 1, Y: 1}}
	b := Trajectory{{X: 1, Y: 1}, {X: 2, Y: 0}}
	assert.Equal(t, Trajectory{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}, join(a, b))

	// degenerate legs collapse instead of repeating a waypoint
	c := Trajectory{{X: 2, Y: 0}, {X: 2, Y: 0}}
	assert.Equal(t, Trajectory{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}, join(join(a, b), c))
}

func TestBias(t *testing.T) {
	assert.Equal(t, 1.0, BiasLeft.Sign())
	assert.Equal(t, -1.0, BiasRight.Sign())
	assert.Equal(t, "left", BiasLeft.String())
	assert.Equal(t, "right", BiasRight.String())

	var b Bias
	assert.NoError(t, b.UnmarshalText([]byte("right")))
	assert.Equal(t, BiasRight, b)
	assert.Error(t, b.UnmarshalText([]byte("up")))
}
