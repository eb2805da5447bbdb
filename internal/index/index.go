// Package index provides bounding-box queries over dataset features using an
// R-tree spatial index.
package index

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/twpayne/go-geom"
)

// epsilon is the relative padding applied to indexed rectangles
const epsilon = 1e-9

// Index answers "which features touch this box" for one dataset.
//
// Features without geometry are not indexed and never match.
//
// Example:
//
//	idx := index.New(geometries)
//	hits := idx.Query(index.Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10})
type Index struct {
	entries []entry
	rtree   *rtreego.Rtree
	bounds  Bounds
}

// entry is one indexed feature
type entry struct {
	Position int    // Position in the slice passed to New
	Box      Bounds // Feature extent
}

// Bounds method for rtreego.Spatial interface.
func (e entry) Bounds() rtreego.Rect {
	return toRect(e.Box)
}

// New indexes the given geometries. Query results refer to positions in
// geometries.
func New(geometries []geom.T) *Index {
	// Create R-tree (2D, min=25 children, max=50 children)
	rtree := rtreego.NewTree(2, 25, 50)
	idx := &Index{rtree: rtree}

	for i, g := range geometries {
		b, ok := BoundsOf(g)
		if !ok {
			continue
		}
		e := entry{Position: i, Box: b}
		if len(idx.entries) == 0 {
			idx.bounds = b
		} else {
			idx.bounds = idx.bounds.Union(b)
		}
		idx.entries = append(idx.entries, e)
		rtree.Insert(e)
	}

	return idx
}

// Query returns positions of geometries whose extent intersects b, in
// ascending order.
func (idx *Index) Query(b Bounds) []int {
	spatials := idx.rtree.SearchIntersect(toRect(b))

	result := make([]int, 0, len(spatials))
	for _, s := range spatials {
		e := s.(entry)
		// Padded rectangles overlap slightly more than the true extents
		if !b.Intersects(e.Box) {
			continue
		}
		result = append(result, e.Position)
	}

	sort.Ints(result)
	return result
}

// Count returns the number of indexed geometries.
func (idx *Index) Count() int {
	return len(idx.entries)
}

// Bounds returns the union of all indexed extents.
func (idx *Index) Bounds() Bounds {
	return idx.bounds
}

// toRect converts bounds to an R-tree rectangle. rtreego rejects zero-length
// sides and treats touching rectangles as disjoint, so every side is padded
// in proportion to its coordinate magnitude.
func toRect(b Bounds) rtreego.Rect {
	minX, minY := b.MinX-pad(b.MinX), b.MinY-pad(b.MinY)
	maxX, maxY := b.MaxX+pad(b.MaxX), b.MaxY+pad(b.MaxY)

	point := rtreego.Point{minX, minY}
	lengths := []float64{maxX - minX, maxY - minY}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

func pad(v float64) float64 {
	return epsilon * math.Max(1, math.Abs(v))
}
