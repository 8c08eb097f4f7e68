// Package planner computes collision-free polylines between two points on a
// plane with circular obstacles.
//
// A straight start→goal segment is checked for obstacles. When one is in the
// way, a waypoint is placed beside it, perpendicular to the approach, and the
// two halves start→waypoint and waypoint→goal are planned recursively. The
// recursion is bounded by Options.MaxDepth; a route that still collides at the
// bound is returned with Unsafe set. PlanPaths runs the recursion once with a
// counterclockwise and once with a clockwise bias and orders the results by
// length.
//
// All functions are pure over their Environment and Trajectory arguments.
package planner
