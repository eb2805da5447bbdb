package group

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

const unitSquareRegion = "Region 1\n5\n0 0\n0 1\n1 1\n1 0\n0 0\n"

func square(x, y float64) *geom.Polygon {
	return geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{x, y}, {x, y + 1}, {x + 1, y + 1}, {x + 1, y}, {x, y},
	}})
}

func TestDeriveKey(t *testing.T) {
	tests := map[string]string{
		"ABC (123)":        "ABC",
		"XYZ":              "XYZ",
		"  ROAD  (A1)":     "ROAD",
		"(leading)":        "",
		"":                 "",
		"A (1) (2)":        "A",
		"padded   ":        "padded",
		"Route: 66 (east)": "Route: 66",
	}
	for in, want := range tests {
		assert.Equal(t, want, DeriveKey(in), "DeriveKey(%q)", in)
	}
}

func TestRecordImmutable(t *testing.T) {
	r := NewRecord(3, []string{"ROAD (A1)"}, square(0, 0))

	annotated := Annotate(r, 0)

	assert.Equal(t, "", r.Origin)
	_, ok := r.Encoded()
	assert.False(t, ok)

	assert.Equal(t, "ROAD", annotated.Origin)
	assert.Equal(t, 3, annotated.Index)
	text, ok := annotated.Encoded()
	require.True(t, ok)
	assert.Equal(t, unitSquareRegion, text)
}

func TestAnnotateUnsupportedGeometry(t *testing.T) {
	point := geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{1, 2})

	for _, g := range []geom.T{nil, point} {
		r := Annotate(NewRecord(0, []string{"X"}, g), 0)
		assert.Equal(t, "X", r.Origin)
		text, ok := r.Encoded()
		assert.False(t, ok)
		assert.Empty(t, text)
	}
}

func TestAnnotateMissingColumn(t *testing.T) {
	r := Annotate(NewRecord(0, []string{"X"}, square(0, 0)), -1)
	assert.Equal(t, "", r.Origin)

	r = Annotate(NewRecord(0, []string{"X"}, square(0, 0)), 4)
	assert.Equal(t, "", r.Origin)
}

func TestWithEncodingAbsentClearsText(t *testing.T) {
	r := NewRecord(0, nil, nil).WithEncoding("Region 1\n", true).WithEncoding("stale", false)
	text, ok := r.Encoded()
	assert.False(t, ok)
	assert.Empty(t, text)
}

func TestAggregate(t *testing.T) {
	records := []Record{
		Annotate(NewRecord(0, []string{"ROAD (A1)"}, square(0, 0)), 0),
		Annotate(NewRecord(1, []string{"RIVER"}, square(5, 5)), 0),
		Annotate(NewRecord(2, []string{"ROAD (B2)"}, square(0, 0)), 0),
	}

	groups, missing := Aggregate(records)
	require.Empty(t, missing)
	require.Len(t, groups, 2)

	assert.Equal(t, "RIVER", groups[0].Key)
	assert.Equal(t, 1, groups[0].Count)

	road := groups[1]
	assert.Equal(t, "ROAD", road.Key)
	assert.Equal(t, 2, road.Count)
	assert.Equal(t, 0, road.Members[0].Index)
	assert.Equal(t, 2, road.Members[1].Index)
	assert.Equal(t, []string{"ROAD (A1)"}, road.Values())

	text, ok := road.Text(MergeConcat)
	require.True(t, ok)
	assert.Equal(t, unitSquareRegion+", "+unitSquareRegion, text)
}

func TestAggregateMissingKey(t *testing.T) {
	records := []Record{
		Annotate(NewRecord(0, []string{"(none)"}, square(0, 0)), 0),
		Annotate(NewRecord(1, []string{"A"}, square(0, 0)), 0),
		Annotate(NewRecord(2, []string{"   (abc)"}, square(0, 0)), 0),
	}

	groups, missing := Aggregate(records)
	require.Len(t, groups, 1)
	require.Len(t, missing, 2)

	var keyErr *ErrMissingKey
	require.True(t, errors.As(missing[0], &keyErr))
	assert.Equal(t, 0, keyErr.Index)
	require.True(t, errors.As(missing[1], &keyErr))
	assert.Equal(t, 2, keyErr.Index)
}

func TestGroupTextWithoutEncodings(t *testing.T) {
	line := geom.NewLineString(geom.XY).MustSetCoords([]geom.Coord{{0, 0}, {1, 1}})
	records := []Record{
		Annotate(NewRecord(0, []string{"A"}, line), 0),
		Annotate(NewRecord(1, []string{"A"}, nil), 0),
	}

	groups, _ := Aggregate(records)
	require.Len(t, groups, 1)
	assert.Equal(t, 2, groups[0].Count)

	for _, mode := range []MergeMode{MergeConcat, MergeRegion} {
		_, ok := groups[0].Text(mode)
		assert.False(t, ok, "mode %s", mode)
	}
}

func TestGroupTextConcatSkipsAbsent(t *testing.T) {
	records := []Record{
		Annotate(NewRecord(0, []string{"A"}, nil), 0),
		Annotate(NewRecord(1, []string{"A"}, square(0, 0)), 0),
	}
	groups, _ := Aggregate(records)
	text, ok := groups[0].Text(MergeConcat)
	require.True(t, ok)
	assert.Equal(t, unitSquareRegion, text)
}

func TestGroupTextMergeRegion(t *testing.T) {
	records := []Record{
		Annotate(NewRecord(0, []string{"ROAD (A1)"}, square(0, 0)), 0),
		Annotate(NewRecord(1, []string{"ROAD (B2)"}, square(2, 0)), 0),
	}
	groups, _ := Aggregate(records)

	text, ok := groups[0].Text(MergeRegion)
	require.True(t, ok)
	expected := "Region 2\n" +
		"5\n0 0\n0 1\n1 1\n1 0\n0 0\n" +
		"5\n2 0\n2 1\n3 1\n3 0\n2 0\n"
	assert.Equal(t, expected, text)
}

func TestParseMergeMode(t *testing.T) {
	mode, err := ParseMergeMode("")
	require.NoError(t, err)
	assert.Equal(t, MergeConcat, mode)

	mode, err = ParseMergeMode(" Region ")
	require.NoError(t, err)
	assert.Equal(t, MergeRegion, mode)

	_, err = ParseMergeMode("union")
	var modeErr *ErrUnknownMergeMode
	assert.True(t, errors.As(err, &modeErr))
}
