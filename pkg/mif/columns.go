package mif

import (
	"fmt"

	"github.com/beetlebugorg/mif/internal/parser"
)

// projection maps output columns to positions in the source schema
type projection struct {
	names   []string
	indices []int
}

// resolveColumns matches each configured output column to a source column.
// An empty list selects every source column in order.
func resolveColumns(ds *parser.Dataset, names []string) (projection, error) {
	if len(names) == 0 {
		names = ds.ColumnNames()
	}

	p := projection{names: names, indices: make([]int, len(names))}
	for i, name := range names {
		idx := ds.ColumnIndex(name)
		if idx < 0 {
			return projection{}, fmt.Errorf("output column %q is not a column of the input (columns: %v)",
				name, ds.ColumnNames())
		}
		p.indices[i] = idx
	}
	return p, nil
}

// project returns the values of the output columns taken from a source row.
func (p projection) project(values []string) []string {
	out := make([]string, len(p.indices))
	for i, idx := range p.indices {
		if idx < len(values) {
			out[i] = values[idx]
		}
	}
	return out
}
