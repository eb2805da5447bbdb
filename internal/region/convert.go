package region

import (
	"github.com/twpayne/go-geom"
)

// FromGeom converts a go-geom geometry into an encodable Geometry.
//
// Polygons and multi-polygons convert; every other kind (points, lines,
// collections, nil) returns false. Empty polygons carry no exterior ring and
// are treated as unsupported; empty members of a multi-polygon are dropped.
// Only X and Y are kept from layouts carrying Z or M.
func FromGeom(t geom.T) (Geometry, bool) {
	switch t := t.(type) {
	case *geom.Polygon:
		if t == nil {
			return nil, false
		}
		p, ok := polygonFromGeom(t)
		if !ok {
			return nil, false
		}
		return p, true

	case *geom.MultiPolygon:
		if t == nil {
			return nil, false
		}
		members := make([]Polygon, 0, t.NumPolygons())
		for i := 0; i < t.NumPolygons(); i++ {
			if p, ok := polygonFromGeom(t.Polygon(i)); ok {
				members = append(members, p)
			}
		}
		if len(members) == 0 {
			return nil, false
		}
		return MultiPolygon{Members: members}, true

	default:
		return nil, false
	}
}

// EncodeGeom converts t and encodes it as a Region block.
//
// Unsupported kinds return ("", false).
func EncodeGeom(t geom.T) (string, bool) {
	g, ok := FromGeom(t)
	if !ok {
		return "", false
	}
	return Encode(g)
}

func polygonFromGeom(p *geom.Polygon) (Polygon, bool) {
	if p == nil || p.NumLinearRings() == 0 {
		return Polygon{}, false
	}
	exterior := ringFromCoords(p.LinearRing(0).Coords())
	if len(exterior) == 0 {
		return Polygon{}, false
	}

	var interiors []Ring
	for i := 1; i < p.NumLinearRings(); i++ {
		interiors = append(interiors, ringFromCoords(p.LinearRing(i).Coords()))
	}

	return Polygon{Exterior: exterior, Interiors: interiors}, true
}

func ringFromCoords(coords []geom.Coord) Ring {
	ring := make(Ring, len(coords))
	for i, c := range coords {
		ring[i] = Point{X: c.X(), Y: c.Y()}
	}
	return ring
}
