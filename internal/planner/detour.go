package planner

import (
	"fmt"
)

// Detour synthesizes a waypoint that routes around obstacle when travelling
// from start. The waypoint sits diameter+margin away from the obstacle center,
// perpendicular to the start→obstacle direction on the side chosen by bias.
// A waypoint that lands inside another obstacle is pushed further around in the
// same rotational sense, up to MaxDetourRetries times.
func (p *Planner) Detour(env *Environment, start, obstacle Point, bias Bias) (Point, error) {
	offset := 2*env.Radius() + p.opts.DetourMargin

	candidate, err := searchPoint(start, obstacle, bias.Sign(), offset)
	if err != nil {
		return Point{}, err
	}

	for retry := 0; IsInsideObstacle(env, candidate); retry++ {
		if retry >= p.opts.MaxDetourRetries {
			return Point{}, fmt.Errorf("around (%.2f, %.2f) after %d retries: %w",
				obstacle.X, obstacle.Y, retry, ErrDetourUnresolved)
		}
		candidate, err = searchPoint(start, candidate, bias.Sign(), offset)
		if err != nil {
			return Point{}, err
		}
	}

	return candidate, nil
}

// searchPoint offsets ref perpendicular to the from→ref direction
func searchPoint(from, ref Point, sign, offset float64) (Point, error) {
	direction := ref.Sub(from)
	if direction.IsZero() {
		return Point{}, fmt.Errorf("at (%.2f, %.2f): %w", ref.X, ref.Y, ErrDegenerateInput)
	}

	perp := direction.Perpendicular(sign).Unit()
	return ref.Add(perp.Scale(offset)), nil
}
