package planner

import (
	"math"
)

// DefaultSampleSteps is the number of subdivisions per segment used by the
// sampled detector.
const DefaultSampleSteps = 100

// Detector finds the first obstacle a trajectory runs into. Segments are scanned
// in trajectory order and each segment from its first point to its second;
// obstacles hit at the same position are reported in declaration order.
type Detector interface {
	FirstCollision(env *Environment, t Trajectory) (Obstacle, bool)
}

// SampledDetector discretizes every segment into Steps equal parts and tests
// the Steps+1 sample points, both endpoints included.
type SampledDetector struct {
	Steps int
}

// FirstCollision implements Detector
func (d SampledDetector) FirstCollision(env *Environment, t Trajectory) (Obstacle, bool) {
	steps := d.Steps
	if steps <= 0 {
		steps = DefaultSampleSteps
	}

	for _, seg := range t.Segments() {
		candidates := env.candidates(seg)
		if len(candidates) == 0 {
			continue
		}
		for i := 0; i <= steps; i++ {
			p := seg.P1.Lerp(seg.P2, float64(i)/float64(steps))
			if o, hit := obstacleAt(env, p, candidates); hit {
				return o, true
			}
		}
	}
	return Obstacle{}, false
}

// AnalyticDetector solves the segment-circle intersection exactly and orders
// hits by the parameter at which the segment enters each circle.
type AnalyticDetector struct{}

// FirstCollision implements Detector
func (AnalyticDetector) FirstCollision(env *Environment, t Trajectory) (Obstacle, bool) {
	for _, seg := range t.Segments() {
		var (
			first  Obstacle
			firstT = math.Inf(1)
		)
		for _, o := range env.candidates(seg) {
			if seg.DistanceTo(o.Center) >= env.radius {
				continue
			}
			// candidates are in declaration order, so strict < keeps the earliest on ties
			if entry := entryParam(seg, o.Center, env.radius); entry < firstT {
				first, firstT = o, entry
			}
		}
		if !math.IsInf(firstT, 1) {
			return first, true
		}
	}
	return Obstacle{}, false
}

// entryParam returns the smallest t in [0,1] where P1 + t(P2-P1) is within
// radius of center. The caller guarantees the segment reaches the circle.
func entryParam(seg LineSegment, center Point, radius float64) float64 {
	d := seg.P2.Sub(seg.P1)
	f := seg.P1.Sub(center)

	a := d.X*d.X + d.Y*d.Y
	if a == 0 {
		return 0
	}
	b := 2 * (f.X*d.X + f.Y*d.Y)
	c := f.X*f.X + f.Y*f.Y - radius*radius

	// already inside at the start of the segment
	if c < 0 {
		return 0
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		disc = 0
	}
	t0 := (-b - math.Sqrt(disc)) / (2 * a)
	return math.Min(math.Max(t0, 0), 1)
}
