package parser

import (
	"strings"
)

// Column is one attribute column declared in the MIF header
type Column struct {
	Name string // Column name as declared (e.g., "MARKING")
	Type string // Declared type as written (e.g., "Char(254)", "Integer", "Decimal(10,2)")
}

// Header holds the MIF header section, everything before the Data keyword
//
// Reference: MapInfo Interchange File Format, "The MIF Header".
type Header struct {
	Version   int      // File format version (300, 450, ...)
	Charset   string   // Character set name (e.g., "WindowsLatin1")
	Delimiter rune     // MID field delimiter, default '\t'
	Unique    []int    // 1-based column numbers from the Unique clause
	Index     []int    // 1-based column numbers from the Index clause
	CoordSys  string   // Coordinate system clause without the keyword
	Transform string   // Transform clause without the keyword
	Columns   []Column // Declared attribute columns in order
}

// defaultHeader returns header values assumed when clauses are absent
func defaultHeader() Header {
	return Header{
		Version:   300,
		Charset:   "Neutral",
		Delimiter: '\t',
	}
}

// Dataset is a parsed MIF/MID pair: header metadata plus one Feature per object
type Dataset struct {
	Header   Header
	Features []Feature
}

// ColumnNames returns the declared column names in order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Header.Columns))
	for i, col := range d.Header.Columns {
		names[i] = col.Name
	}
	return names
}

// ColumnIndex returns the position of a column, matched case-insensitively,
// or -1 if the column is not declared.
func (d *Dataset) ColumnIndex(name string) int {
	for i, col := range d.Header.Columns {
		if strings.EqualFold(col.Name, name) {
			return i
		}
	}
	return -1
}

// CoordSys returns the coordinate system clause.
func (d *Dataset) CoordSys() string {
	return d.Header.CoordSys
}

// Charset returns the declared character set.
func (d *Dataset) Charset() string {
	return d.Header.Charset
}

// FeatureCount returns the number of objects in the dataset.
func (d *Dataset) FeatureCount() int {
	return len(d.Features)
}

// KindCounts returns how many objects of each kind the dataset holds.
func (d *Dataset) KindCounts() map[ObjectKind]int {
	counts := make(map[ObjectKind]int)
	for _, f := range d.Features {
		counts[f.Kind]++
	}
	return counts
}
