package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"detour-planner/internal/config"
	"detour-planner/internal/monitoring"
	"detour-planner/internal/planner"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// FieldBounds is the navigable field in a request
type FieldBounds struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// SceneRequest is the obstacle part shared by all requests
type SceneRequest struct {
	Obstacles    []planner.Point `json:"obstacles"`
	Field        *FieldBounds    `json:"field,omitempty"`
	EnforceField *bool           `json:"enforceField,omitempty"` // overrides the configured toggle
}

// PlanRequest asks for routes from Start to Goal
type PlanRequest struct {
	SceneRequest
	Start planner.Point `json:"start"`
	Goal  planner.Point `json:"goal"`
}

// PlanResponse carries the routes, shortest first
type PlanResponse struct {
	PlanID  string          `json:"planId"`
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Routes  []planner.Route `json:"routes"`
	Unsafe  bool            `json:"unsafe"`
}

// InsideRequest asks whether Point is blocked
type InsideRequest struct {
	SceneRequest
	Point planner.Point `json:"point"`
}

// InsideResponse answers an InsideRequest
type InsideResponse struct {
	Inside bool `json:"inside"`
}

// Server exposes the planner over HTTP
type Server struct {
	cfg     *config.PlannerConfig
	planner *planner.Planner
}

// NewServer creates a server using cfg for the planner options, obstacle
// radius and default field.
func NewServer(cfg *config.PlannerConfig) *Server {
	return &Server{
		cfg:     cfg,
		planner: planner.New(cfg.PlannerOptions()),
	}
}

// Handler returns the routes of the service
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/plan", corsMiddleware(s.planHandler))
	mux.HandleFunc("/inside", corsMiddleware(s.insideHandler))
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	return mux
}

// environment builds the planning environment for a request. A field sent with
// the request must have positive area.
func (s *Server) environment(req SceneRequest) (*planner.Environment, error) {
	env := planner.NewEnvironment(req.Obstacles, s.cfg.GetRadius())

	enforce := s.cfg.GetEnforceFieldBounds()
	if req.EnforceField != nil {
		enforce = *req.EnforceField
	}

	switch {
	case req.Field != nil:
		f := config.FieldConfig{MinX: req.Field.MinX, MinY: req.Field.MinY, MaxX: req.Field.MaxX, MaxY: req.Field.MaxY}
		if err := f.Validate(); err != nil {
			return nil, err
		}
		env = env.WithField(f.Bound(), enforce)
	case s.cfg.Field != nil:
		env = env.WithField(s.cfg.Field.Bound(), enforce)
	}
	return env, nil
}

// requestEnvironment writes a 400 response when the request scene is invalid
func (s *Server) requestEnvironment(w http.ResponseWriter, req SceneRequest) (*planner.Environment, bool) {
	env, err := s.environment(req)
	if err != nil {
		monitoring.Logf("❌ Invalid scene: %v\n", err)
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return env, true
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Method != http.MethodPost {
		monitoring.Logf("❌ Method not allowed: %s\n", r.Method)
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		monitoring.Logf("❌ Invalid request body: %v\n", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// POST /plan - plan both detour biases between start and goal
func (s *Server) planHandler(w http.ResponseWriter, r *http.Request) {
	monitoring.Banner()
	monitoring.Logf("📍 Plan request received")

	var req PlanRequest
	if !decode(w, r, &req) {
		return
	}

	env, ok := s.requestEnvironment(w, req.SceneRequest)
	if !ok {
		monitoring.Banner()
		return
	}

	planID := uuid.New().String()
	monitoring.Logf("   Plan:  %s\n", planID)
	monitoring.Logf("   Start: (%.2f, %.2f)\n", req.Start.X, req.Start.Y)
	monitoring.Logf("   Goal:  (%.2f, %.2f)\n", req.Goal.X, req.Goal.Y)
	monitoring.Logf("   Obstacles: %d\n", len(req.Obstacles))

	result, err := s.planner.PlanPaths(env, req.Start, req.Goal)
	if err != nil {
		monitoring.Logf("❌ Planning failed: %v\n", err)
		status := http.StatusUnprocessableEntity
		if !isPlanningFailure(err) {
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, PlanResponse{
			PlanID:  planID,
			Success: false,
			Message: err.Error(),
			Routes:  []planner.Route{},
		})
		monitoring.Banner()
		return
	}

	resp := PlanResponse{
		PlanID:  planID,
		Success: true,
		Routes:  result.Routes,
		Unsafe:  result.Unsafe(),
	}
	if resp.Unsafe {
		resp.Message = planner.ErrDepthExceeded.Error()
	}

	for i, route := range result.Routes {
		monitoring.Logf("✅ Route %d: %s bias, %d waypoints, length %.2f\n", i, route.Bias, len(route.Points), route.Length)
		if route.Unsafe {
			monitoring.Logf("   ⚠️  Route %d hit the depth bound and may still collide\n", i)
		}
	}
	for _, f := range result.Failures {
		monitoring.Logf("   ⚠️  %v\n", f)
	}

	writeJSON(w, http.StatusOK, resp)
	monitoring.Banner()
}

// POST /inside - check whether a point is blocked by an obstacle
func (s *Server) insideHandler(w http.ResponseWriter, r *http.Request) {
	var req InsideRequest
	if !decode(w, r, &req) {
		return
	}

	env, ok := s.requestEnvironment(w, req.SceneRequest)
	if !ok {
		return
	}

	inside := planner.IsInsideObstacle(env, req.Point)
	writeJSON(w, http.StatusOK, InsideResponse{Inside: inside})
}

// GET /health - Health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	opts := s.planner.Options()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ready",
		"diameter": s.cfg.GetDiameter(),
		"maxDepth": opts.MaxDepth,
		"detector": s.cfg.GetDetector(),
	})
}

func isPlanningFailure(err error) bool {
	return errors.Is(err, planner.ErrDegenerateInput) ||
		errors.Is(err, planner.ErrDetourUnresolved) ||
		errors.Is(err, planner.ErrDepthExceeded)
}
