package parser

import (
	"errors"
	"math"
	"testing"

	"github.com/twpayne/go-geom"
)

func square(x, y, size float64) []geom.Coord {
	return []geom.Coord{
		{x, y}, {x, y + size}, {x + size, y + size}, {x + size, y}, {x, y},
	}
}

// TestOrganizeRings tests shell and hole assignment by containment
func TestOrganizeRings(t *testing.T) {
	tests := []struct {
		name          string
		rings         [][]geom.Coord
		wantPolygons  int
		wantRingCount []int // rings per polygon, in order
	}{
		{
			name:          "single ring",
			rings:         [][]geom.Coord{square(0, 0, 1)},
			wantPolygons:  1,
			wantRingCount: []int{1},
		},
		{
			name:          "shell with hole",
			rings:         [][]geom.Coord{square(0, 0, 10), square(2, 2, 2)},
			wantPolygons:  1,
			wantRingCount: []int{2},
		},
		{
			name:          "hole listed before shell",
			rings:         [][]geom.Coord{square(2, 2, 2), square(0, 0, 10)},
			wantPolygons:  1,
			wantRingCount: []int{2},
		},
		{
			name:          "disjoint shells",
			rings:         [][]geom.Coord{square(0, 0, 1), square(5, 5, 1)},
			wantPolygons:  2,
			wantRingCount: []int{1, 1},
		},
		{
			name:          "island inside hole",
			rings:         [][]geom.Coord{square(0, 0, 10), square(2, 2, 6), square(4, 4, 2)},
			wantPolygons:  2,
			wantRingCount: []int{2, 1},
		},
		{
			name:          "two holes",
			rings:         [][]geom.Coord{square(0, 0, 10), square(1, 1, 2), square(6, 6, 2)},
			wantPolygons:  1,
			wantRingCount: []int{3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := organizeRings(tt.rings)
			if err != nil {
				t.Fatalf("organizeRings failed: %v", err)
			}

			var polygons []*geom.Polygon
			switch v := g.(type) {
			case *geom.Polygon:
				polygons = []*geom.Polygon{v}
			case *geom.MultiPolygon:
				for i := 0; i < v.NumPolygons(); i++ {
					polygons = append(polygons, v.Polygon(i))
				}
			default:
				t.Fatalf("Expected polygon geometry, got %T", g)
			}

			if len(polygons) != tt.wantPolygons {
				t.Fatalf("Expected %d polygons, got %d", tt.wantPolygons, len(polygons))
			}
			for i, p := range polygons {
				if p.NumLinearRings() != tt.wantRingCount[i] {
					t.Errorf("Polygon %d: expected %d rings, got %d", i, tt.wantRingCount[i], p.NumLinearRings())
				}
			}
		})
	}
}

// TestOrganizeRingsKeepsOrder tests that the hole-first listing still yields
// the large ring as exterior
func TestOrganizeRingsKeepsOrder(t *testing.T) {
	g, err := organizeRings([][]geom.Coord{square(2, 2, 2), square(0, 0, 10)})
	if err != nil {
		t.Fatalf("organizeRings failed: %v", err)
	}
	p := g.(*geom.Polygon)
	exterior := p.LinearRing(0).Coord(1)
	if exterior.X() != 0 || exterior.Y() != 10 {
		t.Errorf("Expected exterior to be the 10x10 ring, got vertex %v", exterior)
	}
}

// TestOrganizeRingsEmpty tests regions without usable rings
func TestOrganizeRingsEmpty(t *testing.T) {
	for _, rings := range [][][]geom.Coord{nil, {{}}} {
		g, err := organizeRings(rings)
		if err != nil {
			t.Fatalf("organizeRings failed: %v", err)
		}
		if g != nil {
			t.Errorf("Expected nil geometry, got %T", g)
		}
	}
}

// TestSignedArea tests ring orientation
func TestSignedArea(t *testing.T) {
	ccw := []geom.Coord{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	if a := signedArea(ccw); a != 1 {
		t.Errorf("Expected area 1, got %v", a)
	}
	if a := signedArea(square(0, 0, 1)); a != -1 {
		t.Errorf("Expected area -1 for clockwise ring, got %v", a)
	}
	if a := signedArea([]geom.Coord{{0, 0}, {1, 1}}); a != 0 {
		t.Errorf("Expected area 0 for degenerate ring, got %v", a)
	}
}

// TestValidateGeometry tests geometry validation
func TestValidateGeometry(t *testing.T) {
	tests := []struct {
		name    string
		kind    ObjectKind
		g       geom.T
		wantErr bool
	}{
		{"none", KindNone, nil, false},
		{"nil region", KindRegion, nil, true},
		{"point", KindPoint, geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{1, 2}), false},
		{"nan point", KindPoint, geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{math.NaN(), 2}), true},
		{"inf line", KindLine, geom.NewLineString(geom.XY).MustSetCoords([]geom.Coord{{0, 0}, {math.Inf(1), 1}}), true},
		{"polygon", KindRegion, geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{square(0, 0, 1)}), false},
		{"empty ring", KindRegion, geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{}}), true},
		{"projected coordinates", KindPoint, geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{500000, 4649776}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGeometry(tt.kind, tt.g)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGeometry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var geomErr *ErrInvalidGeometry
				if !errors.As(err, &geomErr) {
					t.Errorf("Expected ErrInvalidGeometry, got %T", err)
				}
			}
		})
	}
}
