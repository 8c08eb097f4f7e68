package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"

	"detour-planner/internal/planner"
)

// DefaultConfigPath is the path to the canonical planner defaults file.
const DefaultConfigPath = "config/planner.defaults.json"

// Detector names accepted in the configuration
const (
	DetectorSampled  = "sampled"
	DetectorAnalytic = "analytic"
)

// Defaults applied by the Get* accessors
const (
	DefaultDiameter = 90.0
	DefaultListen   = ":8080"
)

// FieldConfig is the navigable field rectangle
type FieldConfig struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Bound converts the field to an orb bound
func (f FieldConfig) Bound() orb.Bound {
	return orb.Bound{Min: orb.Point{f.MinX, f.MinY}, Max: orb.Point{f.MaxX, f.MaxY}}
}

// Validate rejects a field without area
func (f FieldConfig) Validate() error {
	return planner.ValidateField(f.Bound())
}

// PlannerConfig is the root configuration. Every field is optional; omitted
// fields fall back to the defaults returned by the Get* methods.
type PlannerConfig struct {
	// Geometry
	Diameter     *float64 `json:"diameter,omitempty"`
	DetourMargin *float64 `json:"detour_margin,omitempty"`

	// Bounds on work
	MaxDepth         *int `json:"max_depth,omitempty"`
	MaxDetourRetries *int `json:"max_detour_retries,omitempty"`

	// Collision detection
	SampleSteps *int    `json:"sample_steps,omitempty"`
	Detector    *string `json:"detector,omitempty"` // "sampled" or "analytic"

	// Selection
	LengthTolerance     *float64 `json:"length_tolerance,omitempty"`
	FailOnDepthExceeded *bool    `json:"fail_on_depth_exceeded,omitempty"`

	// Field bounds
	Field              *FieldConfig `json:"field,omitempty"`
	EnforceFieldBounds *bool        `json:"enforce_field_bounds,omitempty"`

	// Service
	Listen *string `json:"listen,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyPlannerConfig returns a PlannerConfig with all fields set to nil.
func EmptyPlannerConfig() *PlannerConfig {
	return &PlannerConfig{}
}

// DefaultPlannerConfig returns a config with every field set to its default.
func DefaultPlannerConfig() *PlannerConfig {
	return &PlannerConfig{
		Diameter:            ptrFloat64(DefaultDiameter),
		DetourMargin:        ptrFloat64(planner.DefaultDetourMargin),
		MaxDepth:            ptrInt(planner.DefaultMaxDepth),
		MaxDetourRetries:    ptrInt(planner.DefaultMaxDetourRetries),
		SampleSteps:         ptrInt(planner.DefaultSampleSteps),
		Detector:            ptrString(DetectorSampled),
		LengthTolerance:     ptrFloat64(planner.DefaultLengthTolerance),
		FailOnDepthExceeded: ptrBool(false),
		EnforceFieldBounds:  ptrBool(false),
		Listen:              ptrString(DefaultListen),
	}
}

// LoadPlannerConfig loads a PlannerConfig from a JSON file.
// The file must have a .json extension and be at most 1MB. Fields omitted from
// the file keep their defaults, so partial configs are safe.
func LoadPlannerConfig(path string) (*PlannerConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyPlannerConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath from the current directory or
// one of its parents. Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *PlannerConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadPlannerConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *PlannerConfig) Validate() error {
	if c.Diameter != nil && *c.Diameter <= 0 {
		return fmt.Errorf("diameter must be positive, got %f", *c.Diameter)
	}
	if c.DetourMargin != nil && *c.DetourMargin < 0 {
		return fmt.Errorf("detour_margin must be non-negative, got %f", *c.DetourMargin)
	}
	if c.MaxDepth != nil && *c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", *c.MaxDepth)
	}
	if c.MaxDetourRetries != nil && *c.MaxDetourRetries < 1 {
		return fmt.Errorf("max_detour_retries must be at least 1, got %d", *c.MaxDetourRetries)
	}
	if c.SampleSteps != nil && *c.SampleSteps < 1 {
		return fmt.Errorf("sample_steps must be at least 1, got %d", *c.SampleSteps)
	}
	if c.Detector != nil {
		switch *c.Detector {
		case DetectorSampled, DetectorAnalytic:
		default:
			return fmt.Errorf("detector must be %q or %q, got %q", DetectorSampled, DetectorAnalytic, *c.Detector)
		}
	}
	if c.LengthTolerance != nil && *c.LengthTolerance <= 0 {
		return fmt.Errorf("length_tolerance must be positive, got %g", *c.LengthTolerance)
	}
	if c.Field != nil {
		if err := c.Field.Validate(); err != nil {
			return err
		}
	}
	if c.EnforceFieldBounds != nil && *c.EnforceFieldBounds && c.Field == nil {
		return fmt.Errorf("enforce_field_bounds requires field")
	}
	return nil
}

// GetDiameter returns the obstacle diameter or its default
func (c *PlannerConfig) GetDiameter() float64 {
	if c.Diameter == nil {
		return DefaultDiameter
	}
	return *c.Diameter
}

// GetRadius is half the obstacle diameter
func (c *PlannerConfig) GetRadius() float64 {
	return c.GetDiameter() / 2
}

// GetDetourMargin returns the detour margin or its default
func (c *PlannerConfig) GetDetourMargin() float64 {
	if c.DetourMargin == nil {
		return planner.DefaultDetourMargin
	}
	return *c.DetourMargin
}

// GetMaxDepth returns the recursion bound or its default
func (c *PlannerConfig) GetMaxDepth() int {
	if c.MaxDepth == nil {
		return planner.DefaultMaxDepth
	}
	return *c.MaxDepth
}

// GetMaxDetourRetries returns the retry bound or its default
func (c *PlannerConfig) GetMaxDetourRetries() int {
	if c.MaxDetourRetries == nil {
		return planner.DefaultMaxDetourRetries
	}
	return *c.MaxDetourRetries
}

// GetSampleSteps returns the per-segment subdivisions or the default
func (c *PlannerConfig) GetSampleSteps() int {
	if c.SampleSteps == nil {
		return planner.DefaultSampleSteps
	}
	return *c.SampleSteps
}

// GetDetector returns the detector name or the default
func (c *PlannerConfig) GetDetector() string {
	if c.Detector == nil {
		return DetectorSampled
	}
	return *c.Detector
}

// GetLengthTolerance returns the selector epsilon or its default
func (c *PlannerConfig) GetLengthTolerance() float64 {
	if c.LengthTolerance == nil {
		return planner.DefaultLengthTolerance
	}
	return *c.LengthTolerance
}

// GetFailOnDepthExceeded returns the strict-depth flag or false
func (c *PlannerConfig) GetFailOnDepthExceeded() bool {
	if c.FailOnDepthExceeded == nil {
		return false
	}
	return *c.FailOnDepthExceeded
}

// GetEnforceFieldBounds returns the field enforcement flag or false
func (c *PlannerConfig) GetEnforceFieldBounds() bool {
	if c.EnforceFieldBounds == nil {
		return false
	}
	return *c.EnforceFieldBounds
}

// GetListen returns the HTTP listen address or the default
func (c *PlannerConfig) GetListen() string {
	if c.Listen == nil || *c.Listen == "" {
		return DefaultListen
	}
	return *c.Listen
}

// PlannerOptions converts the configuration into planner options
func (c *PlannerConfig) PlannerOptions() planner.Options {
	var detector planner.Detector = planner.SampledDetector{Steps: c.GetSampleSteps()}
	if c.GetDetector() == DetectorAnalytic {
		detector = planner.AnalyticDetector{}
	}
	return planner.Options{
		DetourMargin:        c.GetDetourMargin(),
		MaxDepth:            c.GetMaxDepth(),
		MaxDetourRetries:    c.GetMaxDetourRetries(),
		Detector:            detector,
		LengthTolerance:     c.GetLengthTolerance(),
		FailOnDepthExceeded: c.GetFailOnDepthExceeded(),
	}
}

// Environment builds a planning environment for the obstacle centers using the
// configured radius and field.
func (c *PlannerConfig) Environment(obstacles []planner.Point) *planner.Environment {
	env := planner.NewEnvironment(obstacles, c.GetRadius())
	if c.Field != nil {
		env = env.WithField(c.Field.Bound(), c.GetEnforceFieldBounds())
	}
	return env
}
