package index

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"
)

// Bounds is an axis-aligned bounding box in dataset coordinates.
//
// MIF datasets may be projected, so the axes are X and Y rather than
// longitude and latitude.
type Bounds struct {
	MinX float64 // Western edge
	MinY float64 // Southern edge
	MaxX float64 // Eastern edge
	MaxY float64 // Northern edge
}

// Intersects returns true if the given bounds intersects with this bounds.
// Touching edges count as intersecting.
func (b Bounds) Intersects(other Bounds) bool {
	return !(other.MaxX < b.MinX ||
		other.MinX > b.MaxX ||
		other.MaxY < b.MinY ||
		other.MinY > b.MaxY)
}

// Union returns the smallest bounds covering both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		MinX: min(b.MinX, other.MinX),
		MinY: min(b.MinY, other.MinY),
		MaxX: max(b.MaxX, other.MaxX),
		MaxY: max(b.MaxY, other.MaxY),
	}
}

// Valid reports whether the minimum corner is not past the maximum corner.
func (b Bounds) Valid() bool {
	return b.MinX <= b.MaxX && b.MinY <= b.MaxY
}

func (b Bounds) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

// BoundsOf returns the bounds of a go-geom geometry, and false for nil or
// empty geometry.
func BoundsOf(g geom.T) (Bounds, bool) {
	if g == nil || len(g.FlatCoords()) == 0 {
		return Bounds{}, false
	}
	gb := g.Bounds()
	if gb.IsEmpty() {
		return Bounds{}, false
	}
	return Bounds{
		MinX: gb.Min(0),
		MinY: gb.Min(1),
		MaxX: gb.Max(0),
		MaxY: gb.Max(1),
	}, true
}

// ParseBounds reads "minx,miny,maxx,maxy". Corners given in the wrong order
// are swapped.
func ParseBounds(s string) (Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Bounds{}, fmt.Errorf("bounds %q: expected minx,miny,maxx,maxy", s)
	}

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Bounds{}, fmt.Errorf("bounds %q: %w", s, err)
		}
		v[i] = f
	}

	return Bounds{
		MinX: min(v[0], v[2]),
		MinY: min(v[1], v[3]),
		MaxX: max(v[0], v[2]),
		MaxY: max(v[1], v[3]),
	}, nil
}
