package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"detour-planner/internal/monitoring"
	"detour-planner/internal/planner"
)

// Feature roles in scene files
const (
	RoleStart    = "start"
	RoleGoal     = "goal"
	RoleObstacle = "obstacle"
	RoleField    = "field"
	RoleRoute    = "route"
)

// Scene is the input of one planning session
type Scene struct {
	Name      string
	Start     planner.Point
	Goal      planner.Point
	Obstacles []planner.Point
	Field     *orb.Bound
}

// ParseScene reads a GeoJSON FeatureCollection. Point features carry a "role"
// property of start, goal or obstacle; an optional feature with role field
// gives the navigable field as its bounding box.
func ParseScene(data []byte) (*Scene, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	s := &Scene{}
	var hasStart, hasGoal bool

	for i, feature := range fc.Features {
		if feature.Geometry == nil {
			continue
		}
		role := feature.Properties.MustString("role", "")

		if role == RoleField {
			b := feature.Geometry.Bound()
			if err := planner.ValidateField(b); err != nil {
				return nil, fmt.Errorf("feature %d: %w", i, err)
			}
			s.Field = &b
			continue
		}
		if role == RoleRoute {
			continue
		}

		point, ok := feature.Geometry.(orb.Point)
		if !ok {
			monitoring.Logf("⚠️  Skipping feature %d: %s geometry for role %q\n", i, feature.Geometry.GeoJSONType(), role)
			continue
		}
		p := planner.PointFromOrb(point)

		switch role {
		case RoleStart:
			if hasStart {
				return nil, fmt.Errorf("feature %d: duplicate start", i)
			}
			s.Start, hasStart = p, true
		case RoleGoal:
			if hasGoal {
				return nil, fmt.Errorf("feature %d: duplicate goal", i)
			}
			s.Goal, hasGoal = p, true
		case RoleObstacle:
			s.Obstacles = append(s.Obstacles, p)
		default:
			monitoring.Logf("⚠️  Skipping feature %d: unknown role %q\n", i, role)
		}
	}

	if !hasStart || !hasGoal {
		return nil, errors.New("scene needs one start and one goal point")
	}
	return s, nil
}

// LoadScene reads a scene file; the scene is named after the file
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	s, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return s, nil
}

// LoadScenesFromDir loads every *.geojson file in dir. Files that fail to load
// are logged and skipped.
func LoadScenesFromDir(dir string) ([]*Scene, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.geojson"))
	if err != nil {
		return nil, err
	}

	monitoring.Logf("Loading scenes from %d GeoJSON files...\n", len(files))

	var scenes []*Scene
	for _, file := range files {
		s, err := LoadScene(file)
		if err != nil {
			monitoring.Logf("⚠️  Failed to load %s: %v\n", file, err)
			continue
		}
		monitoring.Logf("   ✅ Loaded %s: %d obstacles\n", filepath.Base(file), len(s.Obstacles))
		scenes = append(scenes, s)
	}

	return scenes, nil
}

// Environment builds the planning environment for the scene. A field given in
// the scene overrides fieldOverride when both are present.
func (s *Scene) Environment(radius float64, fieldOverride *orb.Bound, enforce bool) *planner.Environment {
	env := planner.NewEnvironment(s.Obstacles, radius)
	field := s.Field
	if field == nil {
		field = fieldOverride
	}
	if field != nil {
		env = env.WithField(*field, enforce)
	}
	return env
}

// FeatureCollection encodes the scene, plus any routes, as GeoJSON
func (s *Scene) FeatureCollection(radius float64, routes []planner.Route) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	if s.Field != nil {
		f := geojson.NewFeature(s.Field.ToPolygon())
		f.Properties["role"] = RoleField
		fc.Append(f)
	}

	for i, o := range s.Obstacles {
		f := geojson.NewFeature(o.Orb())
		f.Properties["role"] = RoleObstacle
		f.Properties["index"] = i
		f.Properties["radius"] = radius
		fc.Append(f)
	}

	start := geojson.NewFeature(s.Start.Orb())
	start.Properties["role"] = RoleStart
	fc.Append(start)

	goal := geojson.NewFeature(s.Goal.Orb())
	goal.Properties["role"] = RoleGoal
	fc.Append(goal)

	for rank, r := range routes {
		f := geojson.NewFeature(r.Points.LineString())
		f.Properties["role"] = RoleRoute
		f.Properties["rank"] = rank
		f.Properties["bias"] = r.Bias.String()
		f.Properties["length"] = r.Length
		f.Properties["unsafe"] = r.Unsafe
		f.Properties["detours"] = r.Detours
		fc.Append(f)
	}

	return fc
}

// WriteRoutes saves the scene and routes as a GeoJSON file
func WriteRoutes(path string, s *Scene, radius float64, routes []planner.Route) error {
	data, err := s.FeatureCollection(radius, routes).MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal routes: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	monitoring.Logf("   ✅ Routes saved to %s (%d bytes)\n", path, len(data))
	return nil
}
