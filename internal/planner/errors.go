package planner

import "errors"

var (
	// ErrDegenerateInput is returned when a detour is requested from a point
	// that coincides with the obstacle center, leaving no perpendicular.
	ErrDegenerateInput = errors.New("degenerate input: segment start coincides with obstacle center")

	// ErrDetourUnresolved is returned when no clear waypoint was found within
	// the retry bound.
	ErrDetourUnresolved = errors.New("detour unresolved: no clear waypoint within retry bound")

	// ErrDepthExceeded marks a route that still collides because recursion hit
	// the depth bound.
	ErrDepthExceeded = errors.New("depth exceeded: route still collides at the recursion bound")

	// ErrInvalidField is returned for a navigable field without area
	ErrInvalidField = errors.New("invalid field")
)
