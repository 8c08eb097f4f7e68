package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"detour-planner/internal/monitoring"
	"detour-planner/internal/planner"
)

const sampleScene = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [0, 0]}, "properties": {"role": "start"}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [400, 0]}, "properties": {"role": "goal"}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [100, 0]}, "properties": {"role": "obstacle"}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [300, 0]}, "properties": {"role": "obstacle"}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [200, 300]}, "properties": {"role": "obstacle"}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [5, 5]}, "properties": {"role": "ball"}},
    {"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [[[-50, -200], [600, -200], [600, 400], [-50, 400], [-50, -200]]]}, "properties": {"role": "field"}}
  ]
}`

func muteLogs(t *testing.T) {
	original := monitoring.Logf
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.Logf = original })
}

func TestParseScene(t *testing.T) {
	muteLogs(t)

	s, err := ParseScene([]byte(sampleScene))
	require.NoError(t, err)

	assert.Equal(t, planner.Point{X: 0, Y: 0}, s.Start)
	assert.Equal(t, planner.Point{X: 400, Y: 0}, s.Goal)
	assert.Equal(t, []planner.Point{{X: 100, Y: 0}, {X: 300, Y: 0}, {X: 200, Y: 300}}, s.Obstacles)
	require.NotNil(t, s.Field)
	assert.Equal(t, orb.Bound{Min: orb.Point{-50, -200}, Max: orb.Point{600, 400}}, *s.Field)
}

func TestParseScene_Errors(t *testing.T) {
	muteLogs(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"missing goal", `{"type": "FeatureCollection", "features": [
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [0, 0]}, "properties": {"role": "start"}}]}`},
		{"duplicate start", `{"type": "FeatureCollection", "features": [
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [0, 0]}, "properties": {"role": "start"}},
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [1, 0]}, "properties": {"role": "start"}},
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [9, 0]}, "properties": {"role": "goal"}}]}`},
		{"flat field", `{"type": "FeatureCollection", "features": [
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [0, 0]}, "properties": {"role": "start"}},
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [9, 0]}, "properties": {"role": "goal"}},
			{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [10, 0], [20, 0], [0, 0]]]}, "properties": {"role": "field"}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestParseScene_FieldWithoutArea(t *testing.T) {
	muteLogs(t)

	body := `{"type": "FeatureCollection", "features": [
		{"type": "Feature", "geometry": {"type": "Point", "coordinates": [0, 0]}, "properties": {"role": "start"}},
		{"type": "Feature", "geometry": {"type": "Point", "coordinates": [9, 0]}, "properties": {"role": "goal"}},
		{"type": "Feature", "geometry": {"type": "Point", "coordinates": [5, 5]}, "properties": {"role": "field"}}]}`
	_, err := ParseScene([]byte(body))
	assert.ErrorIs(t, err, planner.ErrInvalidField)
}

func TestFeatureCollectionRoundTrip(t *testing.T) {
	muteLogs(t)

	s, err := ParseScene([]byte(sampleScene))
	require.NoError(t, err)

	p := planner.New(planner.DefaultOptions())
	res, err := p.PlanPaths(s.Environment(45, nil, false), s.Start, s.Goal)
	require.NoError(t, err)

	fc := s.FeatureCollection(45, res.Routes)
	data, err := fc.MarshalJSON()
	require.NoError(t, err)

	back, err := ParseScene(data)
	require.NoError(t, err)
	assert.Equal(t, s.Start, back.Start)
	assert.Equal(t, s.Goal, back.Goal)
	assert.Equal(t, s.Obstacles, back.Obstacles)
	assert.Equal(t, *s.Field, *back.Field)

	decoded, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	var routes []*geojson.Feature
	for _, f := range decoded.Features {
		if f.Properties.MustString("role", "") == RoleRoute {
			routes = append(routes, f)
		}
	}
	require.Len(t, routes, len(res.Routes))
	ls, ok := routes[0].Geometry.(orb.LineString)
	require.True(t, ok)
	assert.Equal(t, res.Routes[0].Points.LineString(), ls)
	assert.Equal(t, res.Routes[0].Bias.String(), routes[0].Properties.MustString("bias"))
	assert.InDelta(t, res.Routes[0].Length, routes[0].Properties.MustFloat64("length"), 1e-9)
}

func TestSceneEnvironment(t *testing.T) {
	s := &Scene{Obstacles: []planner.Point{{X: 10, Y: 10}}}
	override := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{100, 100}}

	env := s.Environment(5, nil, true)
	_, ok := env.Field()
	assert.False(t, ok)

	env = s.Environment(5, &override, true)
	assert.True(t, env.EnforcesField())
	assert.True(t, planner.IsInsideObstacle(env, planner.Point{X: 200, Y: 50}))

	own := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{500, 500}}
	s.Field = &own
	env = s.Environment(5, &override, true)
	field, _ := env.Field()
	assert.Equal(t, own, field)
}

func TestLoadScenesFromDir(t *testing.T) {
	muteLogs(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blocked.geojson"), []byte(sampleScene), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.geojson"), []byte(`{"type":`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`ignored`), 0644))

	scenes, err := LoadScenesFromDir(dir)
	require.NoError(t, err)
	require.Len(t, scenes, 1)
	assert.Equal(t, "blocked", scenes[0].Name)
	assert.Len(t, scenes[0].Obstacles, 3)
}

func TestWriteRoutes(t *testing.T) {
	muteLogs(t)

	s := &Scene{Start: planner.Point{X: 0, Y: 0}, Goal: planner.Point{X: 10, Y: 0}}
	route := planner.Route{Bias: planner.BiasLeft, Points: planner.Straight(s.Start, s.Goal), Length: 10}

	path := filepath.Join(t.TempDir(), "out.geojson")
	require.NoError(t, WriteRoutes(path, s, 45, []planner.Route{route}))

	back, err := LoadScene(path)
	require.NoError(t, err)
	assert.Equal(t, "out", back.Name)
	assert.Equal(t, s.Goal, back.Goal)
	assert.Empty(t, back.Obstacles)
}
