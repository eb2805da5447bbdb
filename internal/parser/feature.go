package parser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/twpayne/go-geom"
)

// Feature is one MIF graphic object paired with its MID attribute row
type Feature struct {
	// Index is the 0-based position of the object in the Data section
	Index int
	// Kind is the MIF object keyword the geometry was read from
	Kind ObjectKind
	// Geometry is nil for "none" objects and skipped unsupported objects
	Geometry geom.T
	// Values holds the MID row, aligned with Header.Columns
	Values []string
}

// ObjectKind names the MIF graphic object type
type ObjectKind int

const (
	// KindNone is an object written as "none": a row without geometry
	KindNone ObjectKind = iota
	KindPoint
	KindLine
	KindPline
	KindRegion
	KindMultipoint
	KindRect
	KindRoundRect
	KindText
	// KindUnsupported marks Arc, Ellipse and Collection objects
	KindUnsupported
)

// String returns the MIF keyword for the kind.
func (k ObjectKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindPoint:
		return "Point"
	case KindLine:
		return "Line"
	case KindPline:
		return "Pline"
	case KindRegion:
		return "Region"
	case KindMultipoint:
		return "Multipoint"
	case KindRect:
		return "Rect"
	case KindRoundRect:
		return "RoundRect"
	case KindText:
		return "Text"
	default:
		return "Unsupported"
	}
}

// parseAttributes reads MID rows with the header's delimiter, one row per
// line.
//
// Quoted fields may contain the delimiter. An empty line is a row whose single
// value is empty. Each row must carry exactly one value per declared column.
func parseAttributes(r io.Reader, header Header) ([][]string, error) {
	if len(header.Columns) == 0 {
		return nil, nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var rows [][]string
	for sc.Scan() {
		record, err := parseAttributeLine(strings.TrimSuffix(sc.Text(), "\r"), header.Delimiter)
		if err != nil {
			return nil, fmt.Errorf("read MID row %d: %w", len(rows)+1, err)
		}
		if len(record) != len(header.Columns) {
			return nil, &ErrColumnMismatch{
				Row:      len(rows) + 1,
				Expected: len(header.Columns),
				Got:      len(record),
			}
		}
		rows = append(rows, record)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read MID row %d: %w", len(rows)+1, err)
	}
	return rows, nil
}

// parseAttributeLine splits one MID line into its values.
func parseAttributeLine(line string, delimiter rune) ([]string, error) {
	if strings.TrimSpace(line) == "" {
		return []string{""}, nil
	}

	reader := csv.NewReader(strings.NewReader(line))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	record, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []string{""}, nil
	}
	return record, err
}
