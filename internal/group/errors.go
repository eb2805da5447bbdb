package group

import (
	"fmt"
)

// ErrMissingKey indicates a record whose key column yields an empty origin
type ErrMissingKey struct {
	Index int // 0-based position of the record or output row
}

func (e *ErrMissingKey) Error() string {
	return fmt.Sprintf("record %d has an empty grouping key", e.Index)
}

// ErrUnknownMergeMode indicates a merge mode name that is not recognized
type ErrUnknownMergeMode struct {
	Mode string
}

func (e *ErrUnknownMergeMode) Error() string {
	return fmt.Sprintf("unknown merge mode %q (expected %q or %q)", e.Mode, MergeConcat, MergeRegion)
}
