package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"detour-planner/internal/planner"
	"detour-planner/internal/scene"
)

// Default image size
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 6 * vg.Inch
)

// circleVertices is the number of vertices used to draw an obstacle
const circleVertices = 48

var (
	obstacleFill  = color.RGBA{R: 40, G: 90, B: 200, A: 140}
	obstacleEdge  = color.RGBA{R: 20, G: 50, B: 140, A: 255}
	endpointColor = color.RGBA{G: 160, A: 255}
	// first route is highlighted, the alternative drawn muted
	routeColors = []color.Color{
		color.RGBA{R: 210, G: 30, B: 30, A: 255},
		color.RGBA{R: 120, G: 120, B: 120, A: 255},
	}
)

// NewPlot draws the obstacles, endpoints and routes of a scene
func NewPlot(s *scene.Scene, radius float64, routes []planner.Route) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Detour plan"
	if s.Name != "" {
		p.Title.Text = fmt.Sprintf("Detour plan - %s", s.Name)
	}
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	for _, o := range s.Obstacles {
		poly, err := plotter.NewPolygon(circle(o, radius))
		if err != nil {
			return nil, err
		}
		poly.Color = obstacleFill
		poly.LineStyle.Color = obstacleEdge
		poly.LineStyle.Width = vg.Points(1)
		p.Add(poly)
	}

	for i, r := range routes {
		if len(r.Points) < 2 {
			continue
		}
		line, points, err := plotter.NewLinePoints(xys(r.Points))
		if err != nil {
			return nil, err
		}
		c := routeColors[min(i, len(routeColors)-1)]
		line.Color = c
		line.Width = vg.Points(2)
		if i > 0 {
			line.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		}
		if r.Unsafe {
			line.Width = vg.Points(1)
		}
		points.GlyphStyle = draw.GlyphStyle{Color: c, Radius: vg.Points(3), Shape: draw.CircleGlyph{}}
		p.Add(line, points)

		label := fmt.Sprintf("%s bias, %.1f", r.Bias, r.Length)
		if r.Unsafe {
			label += " (unsafe)"
		}
		p.Legend.Add(label, line)
	}

	ends, err := plotter.NewScatter(xys(planner.Trajectory{s.Start, s.Goal}))
	if err != nil {
		return nil, err
	}
	ends.GlyphStyle = draw.GlyphStyle{Color: endpointColor, Radius: vg.Points(5), Shape: draw.CircleGlyph{}}
	p.Add(ends)

	return p, nil
}

// Write renders the plot to w in the given format ("png", "svg", "pdf", ...)
func Write(w io.Writer, format string, s *scene.Scene, radius float64, routes []planner.Route) error {
	p, err := NewPlot(s, radius, routes)
	if err != nil {
		return fmt.Errorf("failed to build plot: %w", err)
	}
	wt, err := p.WriterTo(DefaultWidth, DefaultHeight, format)
	if err != nil {
		return fmt.Errorf("failed to render plot: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}

// Save renders the plot to a file; the format follows the extension
func Save(path string, s *scene.Scene, radius float64, routes []planner.Route) error {
	p, err := NewPlot(s, radius, routes)
	if err != nil {
		return fmt.Errorf("failed to build plot: %w", err)
	}
	if err := p.Save(DefaultWidth, DefaultHeight, path); err != nil {
		return fmt.Errorf("failed to save %s plot: %w", strings.TrimPrefix(filepath.Ext(path), "."), err)
	}
	return nil
}

func xys(t planner.Trajectory) plotter.XYs {
	pts := make(plotter.XYs, len(t))
	for i, p := range t {
		pts[i] = plotter.XY{X: p.X, Y: p.Y}
	}
	return pts
}

// circle approximates the exclusion zone around center
func circle(center planner.Point, radius float64) plotter.XYs {
	pts := make(plotter.XYs, circleVertices)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleVertices
		pts[i] = plotter.XY{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
	}
	return pts
}
