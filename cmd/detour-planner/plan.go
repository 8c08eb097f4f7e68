package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"

	"detour-planner/internal/config"
	"detour-planner/internal/monitoring"
	"detour-planner/internal/planner"
	"detour-planner/internal/render"
	"detour-planner/internal/scene"
)

type runOptions struct {
	scene  string
	scenes string
	out    string
	plot   string
}

// sceneResult is the JSON printed for every planned scene
type sceneResult struct {
	Scene   string          `json:"scene"`
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Unsafe  bool            `json:"unsafe"`
	Routes  []planner.Route `json:"routes"`
}

// run plans the scenes named in opts and prints one JSON result per scene.
// Planning failures are reported in the output; only I/O failures stop the run.
func run(cfg *config.PlannerConfig, opts runOptions, w io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	var scenes []*scene.Scene
	batch := opts.scenes != ""
	if batch {
		loaded, err := scene.LoadScenesFromDir(opts.scenes)
		if err != nil {
			return fmt.Errorf("failed to load scenes: %w", err)
		}
		scenes = loaded
		for _, dir := range []string{opts.out, opts.plot} {
			if dir == "" {
				continue
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
	}
	if opts.scene != "" {
		s, err := scene.LoadScene(opts.scene)
		if err != nil {
			return err
		}
		scenes = append(scenes, s)
	}

	p := planner.New(cfg.PlannerOptions())
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	var field *orb.Bound
	if cfg.Field != nil {
		b := cfg.Field.Bound()
		field = &b
	}

	for _, s := range scenes {
		monitoring.Banner()
		monitoring.Logf("📍 Planning scene %s (%d obstacles)\n", s.Name, len(s.Obstacles))

		env := s.Environment(cfg.GetRadius(), field, cfg.GetEnforceFieldBounds())
		res := planScene(p, env, s)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}

		if opts.out != "" {
			path := opts.out
			if batch {
				path = filepath.Join(opts.out, s.Name+".routes.geojson")
			}
			if err := scene.WriteRoutes(path, s, cfg.GetRadius(), res.Routes); err != nil {
				return err
			}
		}
		if opts.plot != "" {
			path := opts.plot
			if batch {
				path = filepath.Join(opts.plot, s.Name+".png")
			}
			if err := render.Save(path, s, cfg.GetRadius(), res.Routes); err != nil {
				return err
			}
		}
	}
	monitoring.Banner()
	return nil
}

func planScene(p *planner.Planner, env *planner.Environment, s *scene.Scene) sceneResult {
	res := sceneResult{Scene: s.Name, Routes: []planner.Route{}}

	result, err := p.PlanPaths(env, s.Start, s.Goal)
	if err != nil {
		monitoring.Logf("❌ Planning failed: %v\n", err)
		res.Message = err.Error()
		return res
	}

	res.Success = true
	res.Routes = result.Routes
	res.Unsafe = result.Unsafe()
	if res.Unsafe {
		res.Message = planner.ErrDepthExceeded.Error()
	}
	for i, route := range result.Routes {
		monitoring.Logf("✅ Route %d: %s bias, %d waypoints, length %.2f\n", i, route.Bias, len(route.Points), route.Length)
	}
	for _, f := range result.Failures {
		monitoring.Logf("   ⚠️  %v\n", f)
	}
	return res
}
