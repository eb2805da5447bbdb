package region

import (
	"strconv"
	"strings"
)

// Header is the keyword that opens a Region block.
const Header = "Region"

// Encode returns the Region block for g.
//
// The second result is false when g is nil, which callers treat as "no
// geometry text available" rather than an error. The returned text ends with
// exactly one newline.
//
// Example:
//
//	square := region.Polygon{Exterior: region.Ring{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}}
//	text, _ := region.Encode(square)
//	// Region 1
//	// 5
//	// 0 0
//	// ...
func Encode(g Geometry) (string, bool) {
	if g == nil {
		return "", false
	}

	var b strings.Builder
	b.Grow(estimateSize(g))

	b.WriteString(Header)
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(ContourCount(g)))
	b.WriteByte('\n')

	for _, polygon := range g.Polygons() {
		for _, ring := range Rings(polygon) {
			writeRing(&b, ring)
		}
	}

	return b.String(), true
}

// writeRing writes the point count line followed by one line per point.
func writeRing(b *strings.Builder, ring Ring) {
	b.WriteString(strconv.Itoa(len(ring)))
	b.WriteByte('\n')
	for _, pt := range ring {
		b.WriteString(FormatCoordinate(pt.X))
		b.WriteByte(' ')
		b.WriteString(FormatCoordinate(pt.Y))
		b.WriteByte('\n')
	}
}

// FormatCoordinate renders v in its shortest round-trip decimal form, with no
// exponent, no grouping and '.' as the decimal separator.
//
// Commas are stripped: downstream consumers split on commas.
func FormatCoordinate(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if strings.IndexByte(s, ',') >= 0 {
		s = strings.ReplaceAll(s, ",", "")
	}
	return s
}

// estimateSize guesses the encoded length so the builder grows once.
func estimateSize(g Geometry) int {
	n := len(Header) + 8
	for _, polygon := range g.Polygons() {
		n += 8 + len(polygon.Exterior)*24
		for _, hole := range polygon.Interiors {
			n += 8 + len(hole)*24
		}
	}
	return n
}
