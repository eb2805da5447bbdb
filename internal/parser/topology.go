package parser

// topology.go - assigns Region rings to polygons
//
// A MIF Region lists its rings without saying which are holes. Rings are
// nested by containment: a ring inside an odd number of other rings is a hole
// of the smallest ring containing it, otherwise it starts a new polygon.

import (
	"math"
	"sort"

	"github.com/twpayne/go-geom"
)

// ringInfo caches per-ring values used while nesting
type ringInfo struct {
	index  int          // Position in the Region
	coords []geom.Coord // Ring points as read
	area   float64      // Absolute shoelace area
	parent int          // Index of the smallest containing ring, -1 for none
	depth  int          // Number of rings containing this one
}

// organizeRings builds a Polygon (one shell) or MultiPolygon (several shells)
// from the rings of a Region. Returns nil for a Region with no usable rings.
//
// Shells keep their Region order, and each shell's holes keep theirs.
func organizeRings(rings [][]geom.Coord) (geom.T, error) {
	infos := make([]*ringInfo, 0, len(rings))
	for i, coords := range rings {
		if len(coords) == 0 {
			continue
		}
		infos = append(infos, &ringInfo{
			index:  i,
			coords: coords,
			area:   math.Abs(signedArea(coords)),
			parent: -1,
		})
	}
	if len(infos) == 0 {
		return nil, nil
	}

	// Larger rings first so every candidate container is nested before its contents
	byArea := make([]*ringInfo, len(infos))
	copy(byArea, infos)
	sort.SliceStable(byArea, func(i, j int) bool {
		return byArea[i].area > byArea[j].area
	})

	for i, ring := range byArea {
		probe := ring.coords[0]
		for j := i - 1; j >= 0; j-- {
			candidate := byArea[j]
			if candidate.area <= ring.area {
				continue
			}
			if pointInRing(probe, candidate.coords) {
				ring.parent = candidate.index
				ring.depth = candidate.depth + 1
				break
			}
		}
	}

	byIndex := make(map[int]*ringInfo, len(infos))
	for _, ring := range infos {
		byIndex[ring.index] = ring
	}

	shells := make([]int, 0)
	holes := make(map[int][][]geom.Coord)
	for _, ring := range infos {
		if ring.depth%2 == 0 {
			shells = append(shells, ring.index)
			continue
		}
		holes[ring.parent] = append(holes[ring.parent], ring.coords)
	}

	polygons := make([][][]geom.Coord, 0, len(shells))
	for _, shell := range shells {
		p := [][]geom.Coord{byIndex[shell].coords}
		p = append(p, holes[shell]...)
		polygons = append(polygons, p)
	}

	if len(polygons) == 1 {
		return geom.NewPolygon(geom.XY).SetCoords(polygons[0])
	}
	return geom.NewMultiPolygon(geom.XY).SetCoords(polygons)
}

// signedArea returns the shoelace area of a ring, positive when
// counter-clockwise. The ring need not be closed.
func signedArea(coords []geom.Coord) float64 {
	if len(coords) < 3 {
		return 0
	}
	sum := 0.0
	for i := range coords {
		j := (i + 1) % len(coords)
		sum += coords[i].X()*coords[j].Y() - coords[j].X()*coords[i].Y()
	}
	return sum / 2
}

// pointInRing reports whether p lies inside ring using the even-odd rule.
func pointInRing(p geom.Coord, ring []geom.Coord) bool {
	x, y := p.X(), p.Y()
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		xi, yi := ring[i].X(), ring[i].Y()
		xj, yj := ring[j].X(), ring[j].Y()
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}
