package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"detour-planner/internal/api"
	"detour-planner/internal/config"
	"detour-planner/internal/monitoring"
)

var (
	configPath = flag.String("config", "", "Planner config JSON (defaults are used when empty)")
	scenePath  = flag.String("scene", "", "Plan a single GeoJSON scene and exit")
	scenesDir  = flag.String("scenes", "", "Plan every *.geojson scene in a directory and exit")
	outPath    = flag.String("out", "", "Write routes as GeoJSON (a directory when used with -scenes)")
	plotPath   = flag.String("plot", "", "Render scene and routes to PNG/SVG (a directory when used with -scenes)")
	listen     = flag.String("listen", "", "HTTP listen address (overrides the config)")
)

func loadConfig(path string) (*config.PlannerConfig, error) {
	if path == "" {
		return config.DefaultPlannerConfig(), nil
	}
	return config.LoadPlannerConfig(path)
}

func main() {
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *listen != "" {
		cfg.Listen = listen
	}

	if *scenePath != "" || *scenesDir != "" {
		opts := runOptions{
			scene:  *scenePath,
			scenes: *scenesDir,
			out:    *outPath,
			plot:   *plotPath,
		}
		if err := run(cfg, opts, os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	serve(cfg)
}

func serve(cfg *config.PlannerConfig) {
	monitoring.Banner()
	monitoring.Logf("🚀 Detour Planner Server")
	monitoring.Banner()
	monitoring.Logf("   Obstacle diameter: %.2f\n", cfg.GetDiameter())
	monitoring.Logf("   Detector: %s, max depth: %d\n", cfg.GetDetector(), cfg.GetMaxDepth())
	if cfg.Field != nil {
		monitoring.Logf("   Field: (%.2f, %.2f) to (%.2f, %.2f), enforced: %v\n",
			cfg.Field.MinX, cfg.Field.MinY, cfg.Field.MaxX, cfg.Field.MaxY, cfg.GetEnforceFieldBounds())
	}
	monitoring.Logf("")
	monitoring.Logf("Server starting on %s\n", cfg.GetListen())
	monitoring.Logf("")
	monitoring.Logf("Endpoints:")
	monitoring.Logf("  POST /plan     - Plan left and right detour routes")
	monitoring.Logf("  POST /inside   - Check whether a point is blocked")
	monitoring.Logf("  GET  /health   - Check server status")
	monitoring.Logf("")
	monitoring.Logf("CORS enabled for all origins")
	monitoring.Banner()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:    cfg.GetListen(),
		Handler: api.NewServer(cfg).Handler(),
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	monitoring.Logf("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		monitoring.Logf("HTTP server shutdown error: %v", err)
		if err := server.Close(); err != nil {
			monitoring.Logf("HTTP server force close error: %v", err)
		}
	}
	monitoring.Logf("Graceful shutdown complete")
}
