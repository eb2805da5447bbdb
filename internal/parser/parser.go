package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Parser reads MapInfo Interchange Format datasets.
//
// A dataset is a .mif file holding the header and graphic objects, plus an
// optional .mid file holding one attribute row per object.
//
// Reference: MapInfo Professional User Guide, Appendix J "MapInfo
// Interchange File (MIF) Format Specification".
type Parser interface {
	// Parse reads a .mif file and its sibling .mid file
	Parse(filename string) (*Dataset, error)

	// ParseWithOptions parses with custom options
	ParseWithOptions(filename string, opts ParseOptions) (*Dataset, error)

	// ParseReader parses from readers. mid may be nil.
	ParseReader(mif, mid io.Reader, opts ParseOptions) (*Dataset, error)
}

// ParseOptions configures parsing behavior
type ParseOptions struct {
	// SkipUnknownObjects: if true, Arc, Ellipse and Collection objects are kept
	// as features with nil geometry instead of failing the parse.
	// Default: true
	SkipUnknownObjects bool

	// ValidateGeometry: if true, reject non-finite coordinates and empty rings
	// Default: true
	ValidateGeometry bool

	// RequireMID: if true, a missing .mid file is an error
	// Default: false (features get empty Values)
	RequireMID bool
}

// DefaultParseOptions returns parse options with defaults
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		SkipUnknownObjects: true,
		ValidateGeometry:   true,
		RequireMID:         false,
	}
}

// defaultParser implements the Parser interface
type defaultParser struct {
}

// NewParser creates a new MIF parser
func NewParser() Parser {
	return &defaultParser{}
}

// Parse reads a MIF file and returns the dataset
func (p *defaultParser) Parse(filename string) (*Dataset, error) {
	return p.ParseWithOptions(filename, DefaultParseOptions())
}

// ParseWithOptions parses with custom options
func (p *defaultParser) ParseWithOptions(filename string, opts ParseOptions) (*Dataset, error) {
	mif, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer mif.Close()

	var mid io.Reader
	midPath, err := findMIDFile(filename)
	if err != nil {
		return nil, err
	}
	if midPath != "" {
		f, err := os.Open(midPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open MID file: %w", err)
		}
		defer f.Close()
		mid = f
	}

	ds, err := p.ParseReader(mif, mid, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(filename), err)
	}
	return ds, nil
}

// ParseReader parses a MIF stream and an optional MID stream
func (p *defaultParser) ParseReader(mif, mid io.Reader, opts ParseOptions) (*Dataset, error) {
	s := newLineScanner(mif)

	// 1. Header up to and including Data
	header, err := parseHeader(s)
	if err != nil {
		return nil, err
	}

	// 2. Graphic objects
	features, err := parseObjects(s, opts)
	if err != nil {
		return nil, err
	}

	// 3. Attribute rows
	if mid == nil {
		if opts.RequireMID {
			return nil, fmt.Errorf("MID file is required but was not found")
		}
		for i := range features {
			features[i].Values = make([]string, len(header.Columns))
		}
		return &Dataset{Header: header, Features: features}, nil
	}

	rows, err := parseAttributes(decodeReader(mid, header.Charset), header)
	if err != nil {
		return nil, err
	}
	if len(header.Columns) > 0 && len(rows) != len(features) {
		return nil, &ErrRowCountMismatch{Objects: len(features), Rows: len(rows)}
	}
	for i := range features {
		if i < len(rows) {
			features[i].Values = rows[i]
		} else {
			features[i].Values = []string{}
		}
	}

	return &Dataset{Header: header, Features: features}, nil
}

// findMIDFile locates the attribute file next to a MIF file
//
// Given "roads.mif", looks for "roads.mid" then "roads.MID".
// Returns "" when neither exists.
func findMIDFile(mifFilename string) (string, error) {
	base := strings.TrimSuffix(mifFilename, filepath.Ext(mifFilename))

	for _, ext := range []string{".mid", ".MID"} {
		candidate := base + ext
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("error checking for MID file %s: %w", candidate, err)
		}
	}

	return "", nil
}
