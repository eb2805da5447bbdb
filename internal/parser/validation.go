package parser

import (
	"fmt"
	"math"

	"github.com/twpayne/go-geom"
)

// ValidateCoordinate checks that a coordinate pair is finite.
// MIF coordinates may be projected, so no range check is applied.
func ValidateCoordinate(x, y float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return fmt.Errorf("coordinate (%v, %v) is not finite", x, y)
	}
	return nil
}

// ValidateGeometry checks geometry read from a MIF object.
//
// A nil geometry is valid for "none" objects. Polygon rings must be non-empty
// and every coordinate must be finite.
func ValidateGeometry(kind ObjectKind, g geom.T) error {
	if g == nil {
		if kind == KindNone || kind == KindUnsupported {
			return nil
		}
		return &ErrInvalidGeometry{Kind: kind, Reason: "geometry is nil"}
	}

	switch t := g.(type) {
	case *geom.Polygon:
		if err := validatePolygon(t); err != nil {
			return &ErrInvalidGeometry{Kind: kind, Reason: err.Error()}
		}
	case *geom.MultiPolygon:
		for i := 0; i < t.NumPolygons(); i++ {
			if err := validatePolygon(t.Polygon(i)); err != nil {
				return &ErrInvalidGeometry{Kind: kind, Reason: fmt.Sprintf("polygon %d: %v", i, err)}
			}
		}
	}

	flat := g.FlatCoords()
	stride := g.Stride()
	if stride < 2 {
		return nil
	}
	for i := 0; i+1 < len(flat); i += stride {
		if err := ValidateCoordinate(flat[i], flat[i+1]); err != nil {
			return &ErrInvalidGeometry{
				Kind:   kind,
				Reason: fmt.Sprintf("coordinate %d invalid: %v", i/stride, err),
			}
		}
	}

	return nil
}

func validatePolygon(p *geom.Polygon) error {
	if p.NumLinearRings() == 0 {
		return fmt.Errorf("polygon has no rings")
	}
	for i := 0; i < p.NumLinearRings(); i++ {
		if p.LinearRing(i).NumCoords() == 0 {
			return fmt.Errorf("ring %d is empty", i)
		}
	}
	return nil
}
