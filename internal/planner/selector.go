package planner

import (
	"errors"

	"gonum.org/v1/gonum/floats/scalar"
)

// Result holds the routes found by PlanPaths, shortest first
type Result struct {
	Routes []Route `json:"routes"`
	// Failures holds the errors of biases that produced no route
	Failures []error `json:"-"`
}

// Best returns the shortest route
func (r Result) Best() (Route, bool) {
	if len(r.Routes) == 0 {
		return Route{}, false
	}
	return r.Routes[0], true
}

// Unsafe reports whether any returned route may still collide
func (r Result) Unsafe() bool {
	for _, route := range r.Routes {
		if route.Unsafe {
			return true
		}
	}
	return false
}

// PlanPaths plans start→goal once per bias and returns the routes ordered by
// length. When both lengths agree within LengthTolerance only the first bias's
// route is kept. An error is returned only when no bias produced a route; it
// joins the per-bias errors.
func (p *Planner) PlanPaths(env *Environment, start, goal Point) (Result, error) {
	var result Result

	for _, bias := range Biases {
		route, err := p.Plan(env, Straight(start, goal), bias)
		if err != nil {
			result.Failures = append(result.Failures, err)
			continue
		}
		result.Routes = append(result.Routes, route)
	}

	if len(result.Routes) == 0 {
		return result, errors.Join(result.Failures...)
	}

	result.Routes = p.rank(result.Routes)
	return result, nil
}

// rank orders two routes by length, collapsing ties
func (p *Planner) rank(routes []Route) []Route {
	if len(routes) < 2 {
		return routes
	}

	a, b := routes[0], routes[1]
	tol := p.opts.LengthTolerance
	if scalar.EqualWithinAbsOrRel(a.Length, b.Length, tol, tol) {
		return []Route{a}
	}
	if b.Length < a.Length {
		return []Route{b, a}
	}
	return []Route{a, b}
}
