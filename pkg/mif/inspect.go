package mif

import (
	"fmt"
	"sort"

	"github.com/twpayne/go-geom"

	"github.com/beetlebugorg/mif/internal/index"
	"github.com/beetlebugorg/mif/internal/parser"
	"github.com/beetlebugorg/mif/internal/region"
)

// DatasetInfo describes a MIF dataset without writing anything
type DatasetInfo struct {
	File      string         // Path of the MIF file
	Version   int            // Declared format version
	Charset   string         // Declared character set
	CoordSys  string         // Coordinate system clause
	Columns   []string       // Column names in order
	Features  int            // Number of objects
	Kinds     map[string]int // Object count per MIF keyword
	Encodable int            // Objects with a Region encoding
	Bounds    index.Bounds   // Extent of all geometries
	HasBounds bool           // False when no object has coordinates
}

// Inspect parses path with default options and summarizes it.
func Inspect(path string) (*DatasetInfo, error) {
	ds, err := parser.NewParser().Parse(path)
	if err != nil {
		return nil, err
	}
	return Describe(path, ds), nil
}

// Describe summarizes an already parsed dataset.
func Describe(path string, ds *parser.Dataset) *DatasetInfo {
	info := &DatasetInfo{
		File:     path,
		Version:  ds.Header.Version,
		Charset:  ds.Charset(),
		CoordSys: ds.CoordSys(),
		Columns:  ds.ColumnNames(),
		Features: ds.FeatureCount(),
		Kinds:    make(map[string]int),
	}

	for kind, n := range ds.KindCounts() {
		info.Kinds[kind.String()] += n
	}

	geometries := make([]geom.T, 0, len(ds.Features))
	for _, f := range ds.Features {
		if _, ok := region.FromGeom(f.Geometry); ok {
			info.Encodable++
		}
		geometries = append(geometries, f.Geometry)
	}
	if idx := index.New(geometries); idx.Count() > 0 {
		info.Bounds = idx.Bounds()
		info.HasBounds = true
	}

	return info
}

// KindNames returns the object kinds present, sorted.
func (i *DatasetInfo) KindNames() []string {
	names := make([]string, 0, len(i.Kinds))
	for name := range i.Kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String returns a one-line description of the dataset.
func (i *DatasetInfo) String() string {
	return fmt.Sprintf("%s: %d objects, %d encodable, %d columns", i.File, i.Features, i.Encodable, len(i.Columns))
}
