// Package group derives grouping keys from attribute values and aggregates
// encoded Region text per key.
package group

import (
	"strings"

	"github.com/twpayne/go-geom"

	"github.com/beetlebugorg/mif/internal/region"
)

// Record is one source row with its derived fields.
//
// Records are values. The With* functions return a modified copy and leave
// the receiver untouched.
type Record struct {
	Index    int      // 0-based position in the source dataset
	Values   []string // Attribute values aligned with the schema columns
	Geometry geom.T   // Source geometry, nil for rows without one
	Origin   string   // Grouping key derived from the key column

	encoded    string
	hasEncoded bool
}

// NewRecord creates a record with no derived fields.
func NewRecord(index int, values []string, g geom.T) Record {
	return Record{Index: index, Values: values, Geometry: g}
}

// Encoded returns the Region text and whether the geometry was encodable.
func (r Record) Encoded() (string, bool) {
	return r.encoded, r.hasEncoded
}

// Value returns the attribute at column position i, or "" when out of range.
func (r Record) Value(i int) string {
	if i < 0 || i >= len(r.Values) {
		return ""
	}
	return r.Values[i]
}

// WithOrigin returns a copy of r with Origin set.
func (r Record) WithOrigin(origin string) Record {
	r.Origin = origin
	return r
}

// WithEncoding returns a copy of r carrying the given encoding. An absent
// encoding clears any text.
func (r Record) WithEncoding(text string, ok bool) Record {
	if !ok {
		text = ""
	}
	r.encoded = text
	r.hasEncoded = ok
	return r
}

// Annotate derives Origin from the value at keyColumn and encodes the
// geometry. A negative keyColumn leaves Origin empty.
func Annotate(r Record, keyColumn int) Record {
	text, ok := region.EncodeGeom(r.Geometry)
	return r.WithOrigin(DeriveKey(r.Value(keyColumn))).WithEncoding(text, ok)
}

// DeriveKey returns the part of s before the first "(", trimmed of
// surrounding whitespace. Without "(" the whole string is trimmed.
//
//	DeriveKey("ROAD (A1)") == "ROAD"
//	DeriveKey("XYZ") == "XYZ"
func DeriveKey(s string) string {
	before, _, _ := strings.Cut(s, "(")
	return strings.TrimSpace(before)
}
