package index

import (
	"testing"

	"github.com/twpayne/go-geom"
)

func box(minX, minY, maxX, maxY float64) *geom.Polygon {
	return geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{minX, minY}, {minX, maxY}, {maxX, maxY}, {maxX, minY}, {minX, minY},
	}})
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestQuery tests bounding-box queries over mixed geometries
func TestQuery(t *testing.T) {
	geometries := []geom.T{
		box(0, 0, 1, 1),
		nil,
		box(10, 10, 12, 12),
		geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{5, 5}),
		geom.NewLineString(geom.XY).MustSetCoords([]geom.Coord{{0, 20}, {30, 20}}),
		box(500000, 4649000, 500100, 4649100),
	}
	idx := New(geometries)

	if idx.Count() != 5 {
		t.Errorf("Expected 5 indexed geometries, got %d", idx.Count())
	}

	tests := []struct {
		name     string
		query    Bounds
		expected []int
	}{
		{"first box", Bounds{MinX: 0.5, MinY: 0.5, MaxX: 0.6, MaxY: 0.6}, []int{0}},
		{"covers small boxes", Bounds{MinX: -1, MinY: -1, MaxX: 11, MaxY: 11}, []int{0, 2, 3}},
		{"point inside", Bounds{MinX: 4, MinY: 4, MaxX: 6, MaxY: 6}, []int{3}},
		{"touching edge", Bounds{MinX: 1, MinY: 1, MaxX: 2, MaxY: 2}, []int{0}},
		{"horizontal line", Bounds{MinX: 15, MinY: 19, MaxX: 16, MaxY: 21}, []int{4}},
		{"projected", Bounds{MinX: 500050, MinY: 4649050, MaxX: 600000, MaxY: 4700000}, []int{5}},
		{"nothing", Bounds{MinX: 100, MinY: 100, MaxX: 200, MaxY: 200}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := idx.Query(tt.query)
			if !equalInts(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// TestIndexBounds tests the union of indexed extents
func TestIndexBounds(t *testing.T) {
	idx := New([]geom.T{box(0, 0, 1, 1), nil, box(-5, 2, 3, 4)})
	want := Bounds{MinX: -5, MinY: 0, MaxX: 3, MaxY: 4}
	if idx.Bounds() != want {
		t.Errorf("Expected %v, got %v", want, idx.Bounds())
	}

	empty := New(nil)
	if empty.Count() != 0 || len(empty.Query(want)) != 0 {
		t.Error("Expected empty index to match nothing")
	}
}

// TestBoundsIntersects tests intersection including shared edges
func TestBoundsIntersects(t *testing.T) {
	a := Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}

	tests := []struct {
		name     string
		other    Bounds
		expected bool
	}{
		{"inside", Bounds{MinX: 2, MinY: 2, MaxX: 3, MaxY: 3}, true},
		{"overlapping", Bounds{MinX: 5, MinY: 5, MaxX: 15, MaxY: 15}, true},
		{"shared edge", Bounds{MinX: 10, MinY: 0, MaxX: 20, MaxY: 10}, true},
		{"east", Bounds{MinX: 11, MinY: 0, MaxX: 20, MaxY: 10}, false},
		{"north", Bounds{MinX: 0, MinY: 11, MaxX: 10, MaxY: 20}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.other); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// TestParseBounds tests the command-line bounds syntax
func TestParseBounds(t *testing.T) {
	tests := []struct {
		input    string
		expected Bounds
		wantErr  bool
	}{
		{"0,0,10,10", Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}, false},
		{" -1.5, 2 ,3,4.25", Bounds{MinX: -1.5, MinY: 2, MaxX: 3, MaxY: 4.25}, false},
		{"10,10,0,0", Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}, false},
		{"1,2,3", Bounds{}, true},
		{"a,b,c,d", Bounds{}, true},
		{"", Bounds{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBounds(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBounds() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
			if !tt.wantErr && !got.Valid() {
				t.Errorf("Expected valid bounds, got %v", got)
			}
		})
	}
}

// TestBoundsOf tests extents of go-geom values
func TestBoundsOf(t *testing.T) {
	if _, ok := BoundsOf(nil); ok {
		t.Error("Expected no bounds for nil")
	}
	if _, ok := BoundsOf(geom.NewPolygon(geom.XY)); ok {
		t.Error("Expected no bounds for empty polygon")
	}
	b, ok := BoundsOf(box(1, 2, 3, 4))
	if !ok || b != (Bounds{MinX: 1, MinY: 2, MaxX: 3, MaxY: 4}) {
		t.Errorf("Unexpected bounds %v", b)
	}
}

// BenchmarkQuery benchmarks R-tree queries over a grid of boxes
func BenchmarkQuery(b *testing.B) {
	var geometries []geom.T
	for x := 0; x < 100; x++ {
		for y := 0; y < 100; y++ {
			fx, fy := float64(x), float64(y)
			geometries = append(geometries, box(fx, fy, fx+0.5, fy+0.5))
		}
	}
	idx := New(geometries)
	query := Bounds{MinX: 40, MinY: 40, MaxX: 45, MaxY: 45}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = idx.Query(query)
	}
}
