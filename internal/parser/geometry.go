package parser

import (
	"strings"

	"github.com/twpayne/go-geom"
)

// objectKeywords maps MIF object keywords to kinds
var objectKeywords = map[string]ObjectKind{
	"none":       KindNone,
	"point":      KindPoint,
	"line":       KindLine,
	"pline":      KindPline,
	"region":     KindRegion,
	"multipoint": KindMultipoint,
	"rect":       KindRect,
	"roundrect":  KindRoundRect,
	"text":       KindText,
	"arc":        KindUnsupported,
	"ellipse":    KindUnsupported,
	"collection": KindUnsupported,
}

// styleKeywords are clauses that decorate the preceding object
var styleKeywords = map[string]bool{
	"pen":     true,
	"brush":   true,
	"symbol":  true,
	"center":  true,
	"smooth":  true,
	"font":    true,
	"angle":   true,
	"spacing": true,
	"justify": true,
	"label":   true,
}

// parseObjects reads the Data section, one Feature per graphic object.
//
// Attribute values are attached by the caller.
func parseObjects(s *lineScanner, opts ParseOptions) ([]Feature, error) {
	features := make([]Feature, 0)

	for {
		line, ok := s.next()
		if !ok {
			if s.err != nil {
				return nil, s.err
			}
			return features, nil
		}

		kw, rest := keyword(line)
		if styleKeywords[kw] {
			continue
		}

		kind, known := objectKeywords[kw]
		if !known {
			return nil, &ErrInvalidObject{Line: s.line, Object: kw, Reason: "unknown object keyword"}
		}

		if kind == KindUnsupported {
			if !opts.SkipUnknownObjects {
				return nil, &ErrUnsupportedObject{Line: s.line, Object: kw}
			}
			skipObjectBody(s)
			features = append(features, Feature{Index: len(features), Kind: kind})
			continue
		}

		g, err := constructGeometry(s, kind, splitTokens(rest))
		if err != nil {
			return nil, err
		}

		if opts.ValidateGeometry && g != nil {
			if err := ValidateGeometry(kind, g); err != nil {
				return nil, &ErrInvalidObject{Line: s.line, Object: kind.String(), Reason: err.Error()}
			}
		}

		features = append(features, Feature{Index: len(features), Kind: kind, Geometry: g})
	}
}

func isObjectKeyword(kw string) bool {
	_, ok := objectKeywords[kw]
	return ok
}

// skipObjectBody discards lines until the next object keyword.
func skipObjectBody(s *lineScanner) {
	for {
		line, ok := s.next()
		if !ok {
			return
		}
		if kw, _ := keyword(line); isObjectKeyword(kw) {
			s.unread(line)
			return
		}
	}
}

// constructGeometry builds a go-geom value for one object.
//
// tokens holds whatever followed the keyword on its line.
func constructGeometry(s *lineScanner, kind ObjectKind, tokens []string) (geom.T, error) {
	name := kind.String()

	switch kind {
	case KindNone:
		return nil, nil

	case KindPoint:
		xy, err := s.numbers(tokens, 2, name)
		if err != nil {
			return nil, err
		}
		return geom.NewPoint(geom.XY).SetCoords(geom.Coord{xy[0], xy[1]})

	case KindLine:
		xy, err := s.numbers(tokens, 4, name)
		if err != nil {
			return nil, err
		}
		return geom.NewLineString(geom.XY).SetCoords([]geom.Coord{{xy[0], xy[1]}, {xy[2], xy[3]}})

	case KindPline:
		return constructPline(s, tokens)

	case KindRegion:
		n, err := s.count(tokens, name)
		if err != nil {
			return nil, err
		}
		rings := make([][]geom.Coord, 0, min(n, maxPrealloc))
		for i := 0; i < n; i++ {
			ring, err := readCoords(s, nil, name)
			if err != nil {
				return nil, err
			}
			rings = append(rings, ring)
		}
		return organizeRings(rings)

	case KindMultipoint:
		n, err := s.count(tokens, name)
		if err != nil {
			return nil, err
		}
		coords, err := readPoints(s, nil, n, name)
		if err != nil {
			return nil, err
		}
		return geom.NewMultiPoint(geom.XY).SetCoords(coords)

	case KindRect, KindRoundRect:
		xy, err := s.numbers(tokens, 4, name)
		if err != nil {
			return nil, err
		}
		if kind == KindRoundRect {
			// Corner rounding is not representable, consume and drop it
			if _, err := s.numbers(nil, 1, name); err != nil {
				return nil, err
			}
		}
		return rectangle(xy[0], xy[1], xy[2], xy[3])

	case KindText:
		if len(tokens) == 0 {
			// The quoted string is on its own line
			if _, ok := s.next(); !ok {
				return nil, &ErrInvalidObject{Line: s.line, Object: name, Reason: "missing text string"}
			}
		}
		xy, err := s.numbers(nil, 4, name)
		if err != nil {
			return nil, err
		}
		return geom.NewPoint(geom.XY).SetCoords(geom.Coord{(xy[0] + xy[2]) / 2, (xy[1] + xy[3]) / 2})
	}

	return nil, &ErrUnsupportedObject{Line: s.line, Object: name}
}

// constructPline handles "Pline n", "Pline" with the count on the next line,
// and "Pline Multiple k".
func constructPline(s *lineScanner, tokens []string) (geom.T, error) {
	const name = "Pline"

	if len(tokens) > 0 && strings.EqualFold(tokens[0], "multiple") {
		k, err := s.count(tokens[1:], name)
		if err != nil {
			return nil, err
		}
		sections := make([][]geom.Coord, 0, min(k, maxPrealloc))
		for i := 0; i < k; i++ {
			coords, err := readCoords(s, nil, name)
			if err != nil {
				return nil, err
			}
			sections = append(sections, coords)
		}
		return geom.NewMultiLineString(geom.XY).SetCoords(sections)
	}

	coords, err := readCoords(s, tokens, name)
	if err != nil {
		return nil, err
	}
	return geom.NewLineString(geom.XY).SetCoords(coords)
}

// readCoords reads a point count followed by that many coordinate pairs.
func readCoords(s *lineScanner, tokens []string, object string) ([]geom.Coord, error) {
	n, err := s.count(tokens, object)
	if err != nil {
		return nil, err
	}
	return readPoints(s, nil, n, object)
}

// readPoints reads n coordinate pairs.
func readPoints(s *lineScanner, tokens []string, n int, object string) ([]geom.Coord, error) {
	values, err := s.numbers(tokens, 2*n, object)
	if err != nil {
		return nil, err
	}
	coords := make([]geom.Coord, n)
	for i := 0; i < n; i++ {
		coords[i] = geom.Coord{values[2*i], values[2*i+1]}
	}
	return coords, nil
}

// rectangle returns the closed polygon spanning two opposite corners.
func rectangle(x1, y1, x2, y2 float64) (geom.T, error) {
	return geom.NewPolygon(geom.XY).SetCoords([][]geom.Coord{{
		{x1, y1}, {x1, y2}, {x2, y2}, {x2, y1}, {x1, y1},
	}})
}
