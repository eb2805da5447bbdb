package parser

import (
	"fmt"
)

// ErrMalformedHeader indicates the MIF header section cannot be interpreted
type ErrMalformedHeader struct {
	Line   int
	Reason string
}

func (e *ErrMalformedHeader) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed MIF header (line %d): %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed MIF header: %s", e.Reason)
}

// ErrInvalidObject indicates a graphic object in the Data section is malformed
type ErrInvalidObject struct {
	Line   int
	Object string
	Reason string
}

func (e *ErrInvalidObject) Error() string {
	return fmt.Sprintf("invalid %s object at line %d: %s", e.Object, e.Line, e.Reason)
}

// ErrUnsupportedObject indicates a graphic object kind this parser cannot convert
type ErrUnsupportedObject struct {
	Line   int
	Object string
}

func (e *ErrUnsupportedObject) Error() string {
	return fmt.Sprintf("unsupported MIF object %q at line %d", e.Object, e.Line)
}

// ErrInvalidGeometry indicates geometry with unusable coordinates
type ErrInvalidGeometry struct {
	Kind   ObjectKind
	Reason string
}

func (e *ErrInvalidGeometry) Error() string {
	if e.Kind != KindNone {
		return fmt.Sprintf("invalid geometry (%v): %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("invalid geometry: %s", e.Reason)
}

// ErrColumnMismatch indicates a MID row does not match the declared column count
type ErrColumnMismatch struct {
	Row      int
	Expected int
	Got      int
}

func (e *ErrColumnMismatch) Error() string {
	return fmt.Sprintf("MID row %d has %d values, header declares %d columns",
		e.Row, e.Got, e.Expected)
}

// ErrRowCountMismatch indicates the MID table and MIF object list differ in length
type ErrRowCountMismatch struct {
	Objects int
	Rows    int
}

func (e *ErrRowCountMismatch) Error() string {
	return fmt.Sprintf("MIF has %d objects but MID has %d rows", e.Objects, e.Rows)
}
