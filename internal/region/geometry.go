// Package region encodes polygon geometry as MapInfo Interchange Format
// Region blocks.
//
// A Region block is the MIF text form of an area object:
//
//	Region <ring count>
//	<point count of ring 1>
//	<x> <y>
//	...
//	<point count of ring 2>
//	<x> <y>
//	...
//
// Only two geometry kinds can be encoded, Polygon and MultiPolygon. They are
// the sole implementations of the sealed Geometry interface, so the encoder
// switches over a closed set of types instead of inspecting arbitrary values.
package region

// Point is a planar coordinate pair.
type Point struct {
	X float64
	Y float64
}

// Ring is an ordered sequence of points describing one contour.
//
// Rings are conventionally closed (first point equals last) but closure is
// not enforced: the encoder writes whatever sequence it receives.
type Ring []Point

// Geometry is a value the Region encoder accepts.
//
// Implemented only by Polygon and MultiPolygon.
type Geometry interface {
	// Polygons returns the member polygons in output order.
	Polygons() []Polygon

	sealed()
}

// Polygon is one exterior ring plus zero or more interior rings (holes).
type Polygon struct {
	Exterior  Ring
	Interiors []Ring
}

// Polygons returns p as a single-element list.
func (p Polygon) Polygons() []Polygon {
	return []Polygon{p}
}

func (Polygon) sealed() {}

// MultiPolygon is an ordered collection of polygons.
//
// Member order is preserved in output and members are never deduplicated.
type MultiPolygon struct {
	Members []Polygon
}

// Polygons returns the members as-is.
func (m MultiPolygon) Polygons() []Polygon {
	return m.Members
}

func (MultiPolygon) sealed() {}

// Merge combines geometries into one MultiPolygon, keeping input order.
//
// Nil entries are ignored. Returns nil when no polygon remains.
func Merge(geometries ...Geometry) Geometry {
	var members []Polygon
	for _, g := range geometries {
		if g == nil {
			continue
		}
		members = append(members, g.Polygons()...)
	}
	if len(members) == 0 {
		return nil
	}
	return MultiPolygon{Members: members}
}
