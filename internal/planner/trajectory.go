package planner

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Trajectory is an ordered polyline from start (first point) to goal (last point).
// Interior points are detour waypoints.
type Trajectory []Point

// Straight builds the 2-point trajectory from a to b
func Straight(a, b Point) Trajectory {
	return Trajectory{a, b}
}

// Start returns the first point. The trajectory must not be empty.
func (t Trajectory) Start() Point { return t[0] }

// Goal returns the last point. The trajectory must not be empty.
func (t Trajectory) Goal() Point { return t[len(t)-1] }

// Clone returns a copy that shares no backing array with t
func (t Trajectory) Clone() Trajectory {
	if t == nil {
		return nil
	}
	out := make(Trajectory, len(t))
	copy(out, t)
	return out
}

// Segments returns the consecutive point pairs of the trajectory
func (t Trajectory) Segments() []LineSegment {
	if len(t) < 2 {
		return nil
	}
	segs := make([]LineSegment, 0, len(t)-1)
	for i := 0; i < len(t)-1; i++ {
		segs = append(segs, LineSegment{P1: t[i], P2: t[i+1]})
	}
	return segs
}

// LineString converts the trajectory to an orb line string
func (t Trajectory) LineString() orb.LineString {
	ls := make(orb.LineString, len(t))
	for i, p := range t {
		ls[i] = p.Orb()
	}
	return ls
}

// Length is the sum of Euclidean distances between consecutive points
func (t Trajectory) Length() float64 {
	if len(t) < 2 {
		return 0
	}
	return planar.Length(t.LineString())
}

// Bound returns the bounding box of all points
func (t Trajectory) Bound() orb.Bound {
	return t.LineString().Bound()
}

// Equal reports whether both trajectories hold exactly the same points
func (t Trajectory) Equal(other Trajectory) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i] != other[i] {
			return false
		}
	}
	return true
}

// join concatenates two trajectories where b starts at the point a ends on.
// Consecutive duplicate points are dropped.
func join(a, b Trajectory) Trajectory {
	result := make(Trajectory, 0, len(a)+len(b))
	for _, p := range a {
		result = appendDistinct(result, p)
	}
	for _, p := range b {
		result = appendDistinct(result, p)
	}
	return result
}

func appendDistinct(t Trajectory, p Point) Trajectory {
	if len(t) > 0 && t[len(t)-1] == p {
		return t
	}
	return append(t, p)
}
