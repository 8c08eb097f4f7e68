package planner

import (
	"fmt"
)

// Planner turns straight start→goal trajectories into polylines that route
// around circular obstacles. It holds no per-call state and is safe for
// concurrent use.
type Planner struct {
	opts Options
}

// New creates a planner. Zero-valued option fields take their defaults,
// except DetourMargin: zero is a valid margin and only a negative one falls
// back to DefaultDetourMargin. Start from DefaultOptions() to get the usual
// 15 unit margin.
func New(opts Options) *Planner {
	return &Planner{opts: opts.withDefaults()}
}

// Options returns the effective options
func (p *Planner) Options() Options {
	return p.opts
}

// Route is one planned trajectory together with its bookkeeping
type Route struct {
	Bias    Bias       `json:"bias"`
	Points  Trajectory `json:"path"`
	Length  float64    `json:"length"`
	Unsafe  bool       `json:"unsafe"`
	Detours int        `json:"detours"`
	// Depth is the deepest recursion level visited
	Depth int `json:"depth"`
}

// Err returns ErrDepthExceeded for a route that may still collide
func (r Route) Err() error {
	if r.Unsafe {
		return ErrDepthExceeded
	}
	return nil
}

type planState struct {
	detours int
	deepest int
	unsafe  bool
}

// Plan routes the trajectory around the environment's obstacles using one
// detour bias. A trajectory that is already clear, or has fewer than two
// points, is returned unchanged. Longer inputs are planned leg by leg, so every
// recursion works on a single start→goal pair; the first and last input points
// are always kept.
func (p *Planner) Plan(env *Environment, t Trajectory, bias Bias) (Route, error) {
	route := Route{Bias: bias}

	if len(t) < 2 {
		route.Points = t.Clone()
		return route, nil
	}
	if _, hit := p.opts.Detector.FirstCollision(env, t); !hit {
		route.Points = t.Clone()
		route.Length = route.Points.Length()
		return route, nil
	}

	st := &planState{}
	var out Trajectory
	for i, seg := range t.Segments() {
		leg, err := p.plan(env, seg.P1, seg.P2, 0, bias, st)
		if err != nil {
			if len(t) > 2 {
				return Route{}, fmt.Errorf("%s bias, leg %d: %w", bias, i, err)
			}
			return Route{}, fmt.Errorf("%s bias: %w", bias, err)
		}
		out = join(out, leg)
	}

	route.Points = out
	route.Length = out.Length()
	route.Unsafe = st.unsafe
	route.Detours = st.detours
	route.Depth = st.deepest

	if route.Unsafe && p.opts.FailOnDepthExceeded {
		return route, fmt.Errorf("%s bias: %w", bias, ErrDepthExceeded)
	}
	return route, nil
}

// plan recursively splits start→goal at detour waypoints until every piece is
// clear or the depth bound is reached.
func (p *Planner) plan(env *Environment, start, goal Point, depth int, bias Bias, st *planState) (Trajectory, error) {
	if depth > st.deepest {
		st.deepest = depth
	}

	straight := Straight(start, goal)
	obstacle, hit := p.opts.Detector.FirstCollision(env, straight)
	if !hit {
		return straight, nil
	}
	if depth >= p.opts.MaxDepth {
		st.unsafe = true
		return straight, nil
	}

	waypoint, err := p.Detour(env, start, obstacle.Center, bias)
	if err != nil {
		return nil, fmt.Errorf("depth %d: %w", depth, err)
	}
	st.detours++

	first, err := p.plan(env, start, waypoint, depth+1, bias, st)
	if err != nil {
		return nil, err
	}
	second, err := p.plan(env, waypoint, goal, depth+1, bias, st)
	if err != nil {
		return nil, err
	}

	return join(first, second), nil
}
