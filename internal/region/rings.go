package region

// Exterior returns the exterior ring of p.
func Exterior(p Polygon) Ring {
	return p.Exterior
}

// Interiors returns the interior rings of p in input order.
func Interiors(p Polygon) []Ring {
	return p.Interiors
}

// Rings returns every ring of p, exterior first, then each interior ring in
// input order.
func Rings(p Polygon) []Ring {
	rings := make([]Ring, 0, 1+len(p.Interiors))
	rings = append(rings, p.Exterior)
	rings = append(rings, p.Interiors...)
	return rings
}

// ContourCount returns the number of rings in g, summed across member
// polygons: 1 for each exterior plus 1 for each hole.
//
// A nil geometry has no contours.
func ContourCount(g Geometry) int {
	switch g := g.(type) {
	case Polygon:
		return 1 + len(g.Interiors)
	case MultiPolygon:
		n := 0
		for _, member := range g.Members {
			n += 1 + len(member.Interiors)
		}
		return n
	default:
		return 0
	}
}
