package planner

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// obstacleEntry wraps an obstacle for R-tree storage
type obstacleEntry struct {
	Obstacle Obstacle
	BBox     rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *obstacleEntry) Bounds() rtreego.Rect {
	return e.BBox
}

// SpatialIndex answers which obstacles can possibly touch a region
type SpatialIndex struct {
	tree *rtreego.Rtree
}

// NewSpatialIndex creates a new spatial index over the obstacle exclusion boxes
func NewSpatialIndex(obstacles []Obstacle, radius float64) *SpatialIndex {
	tree := rtreego.NewTree(2, 2, 8) // 2D, small fan-out for a handful of obstacles

	for _, o := range obstacles {
		bbox, err := rectFromBound(o.Bound(radius))
		if err == nil {
			tree.Insert(&obstacleEntry{Obstacle: o, BBox: bbox})
		}
	}

	return &SpatialIndex{tree: tree}
}

// Size returns the number of indexed obstacles
func (si *SpatialIndex) Size() int {
	return si.tree.Size()
}

// QueryRegion returns the obstacles whose boxes intersect the bound, in
// declaration order.
func (si *SpatialIndex) QueryRegion(b orb.Bound) []Obstacle {
	bbox, err := rectFromBound(b)
	if err != nil {
		return nil
	}

	results := si.tree.SearchIntersect(bbox)
	obstacles := make([]Obstacle, 0, len(results))
	for _, item := range results {
		obstacles = append(obstacles, item.(*obstacleEntry).Obstacle)
	}

	// the tree does not preserve insertion order; detection relies on it
	sort.Slice(obstacles, func(i, j int) bool {
		return obstacles[i].Index < obstacles[j].Index
	})
	return obstacles
}

// rectFromBound converts an orb bound. Degenerate extents are widened so the
// R-tree accepts them.
func rectFromBound(b orb.Bound) (rtreego.Rect, error) {
	const minExtent = 1e-9
	w := b.Max.X() - b.Min.X()
	h := b.Max.Y() - b.Min.Y()
	if w < minExtent {
		w = minExtent
	}
	if h < minExtent {
		h = minExtent
	}
	return rtreego.NewRect(rtreego.Point{b.Min.X(), b.Min.Y()}, []float64{w, h})
}
