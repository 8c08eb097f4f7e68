package planner

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Obstacle is a circular exclusion zone. All obstacles of an Environment share
// its radius.
type Obstacle struct {
	Index  int   `json:"index"` // declaration order within the environment
	Center Point `json:"center"`
}

// Bound returns the box enclosing the exclusion circle
func (o Obstacle) Bound(radius float64) orb.Bound {
	c := o.Center.Orb()
	return orb.Bound{Min: c, Max: c}.Pad(radius)
}

// Environment is the read-only obstacle set for one planning session
type Environment struct {
	obstacles    []Obstacle
	radius       float64
	field        orb.Bound
	hasField     bool
	enforceField bool
	index        *SpatialIndex
}

// NewEnvironment builds an environment from obstacle centers sharing one radius.
// The centers slice is copied.
func NewEnvironment(centers []Point, radius float64) *Environment {
	obstacles := make([]Obstacle, len(centers))
	for i, c := range centers {
		obstacles[i] = Obstacle{Index: i, Center: c}
	}
	return &Environment{
		obstacles: obstacles,
		radius:    radius,
		index:     NewSpatialIndex(obstacles, radius),
	}
}

// WithField returns a copy of the environment carrying the navigable field.
// When enforce is set, points outside the field count as blocked by
// IsInsideObstacle.
func (e *Environment) WithField(field orb.Bound, enforce bool) *Environment {
	out := *e
	out.field = field
	out.hasField = true
	out.enforceField = enforce
	return &out
}

// ValidateField checks that a navigable field has positive width and height.
// An empty field would block every point once enforced.
func ValidateField(field orb.Bound) error {
	if field.Max.X() <= field.Min.X() || field.Max.Y() <= field.Min.Y() {
		return fmt.Errorf("%w: field must have max greater than min, got (%g, %g)-(%g, %g)",
			ErrInvalidField, field.Min.X(), field.Min.Y(), field.Max.X(), field.Max.Y())
	}
	return nil
}

// Obstacles returns a copy of the obstacle list in declaration order
func (e *Environment) Obstacles() []Obstacle {
	out := make([]Obstacle, len(e.obstacles))
	copy(out, e.obstacles)
	return out
}

// Radius is the shared exclusion radius
func (e *Environment) Radius() float64 { return e.radius }

// Field returns the navigable field and whether one was set
func (e *Environment) Field() (orb.Bound, bool) { return e.field, e.hasField }

// EnforcesField reports whether the point test rejects points outside the field
func (e *Environment) EnforcesField() bool { return e.hasField && e.enforceField }

// candidates returns the obstacles that may come within radius of the segment
func (e *Environment) candidates(seg LineSegment) []Obstacle {
	if len(e.obstacles) == 0 {
		return nil
	}
	return e.index.QueryRegion(seg.Bound().Pad(e.radius))
}

// IsInsideObstacle reports whether point lies strictly within the radius of any
// obstacle center, or outside an enforced field.
func IsInsideObstacle(env *Environment, point Point) bool {
	if env.EnforcesField() && !env.field.Contains(point.Orb()) {
		return true
	}
	_, hit := obstacleAt(env, point, env.candidates(LineSegment{P1: point, P2: point}))
	return hit
}

// obstacleAt returns the first obstacle in the list containing point
func obstacleAt(env *Environment, point Point, obstacles []Obstacle) (Obstacle, bool) {
	for _, o := range obstacles {
		if point.Distance(o.Center) < env.radius {
			return o, true
		}
	}
	return Obstacle{}, false
}
