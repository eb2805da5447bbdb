package group

import (
	"sort"
	"strings"

	"github.com/beetlebugorg/mif/internal/region"
)

// Separator joins member encodings in concat mode.
const Separator = ", "

// MergeMode selects how a group's member geometries become output text
type MergeMode string

const (
	// MergeConcat joins member Region blocks with Separator. The result is
	// not a single valid Region block when a group has several members.
	MergeConcat MergeMode = "concat"
	// MergeRegion encodes all member polygons as one multi-polygon block.
	MergeRegion MergeMode = "region"
)

// ParseMergeMode validates a merge mode name. Empty selects MergeConcat.
func ParseMergeMode(s string) (MergeMode, error) {
	switch MergeMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MergeConcat:
		return MergeConcat, nil
	case MergeRegion:
		return MergeRegion, nil
	}
	return "", &ErrUnknownMergeMode{Mode: s}
}

// Group collects the records sharing one Origin
type Group struct {
	Key     string   // Shared Origin
	Count   int      // Number of member records
	Members []Record // Members in source order
}

// Text returns the group's output text for mode, and false when no member
// carries an encodable geometry.
func (g Group) Text(mode MergeMode) (string, bool) {
	if mode == MergeRegion {
		return g.merged()
	}
	return g.concatenated()
}

func (g Group) concatenated() (string, bool) {
	parts := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		if text, ok := m.Encoded(); ok {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, Separator), true
}

func (g Group) merged() (string, bool) {
	geometries := make([]region.Geometry, 0, len(g.Members))
	for _, m := range g.Members {
		if rg, ok := region.FromGeom(m.Geometry); ok {
			geometries = append(geometries, rg)
		}
	}
	return region.Encode(region.Merge(geometries...))
}

// Values returns the attribute values of the first member, or nil for an
// empty group.
func (g Group) Values() []string {
	if len(g.Members) == 0 {
		return nil
	}
	return g.Members[0].Values
}

// Aggregate groups records by Origin.
//
// Groups are ordered by key ascending and members keep source order. Records
// with an empty Origin belong to no group; each is reported as an
// *ErrMissingKey in missing.
func Aggregate(records []Record) (groups []Group, missing []error) {
	byKey := make(map[string]int)

	for _, r := range records {
		if r.Origin == "" {
			missing = append(missing, &ErrMissingKey{Index: r.Index})
			continue
		}
		i, ok := byKey[r.Origin]
		if !ok {
			i = len(groups)
			byKey[r.Origin] = i
			groups = append(groups, Group{Key: r.Origin})
		}
		groups[i].Members = append(groups[i].Members, r)
		groups[i].Count++
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})
	return groups, missing
}
