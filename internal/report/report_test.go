package report

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAllParquet[T any](t *testing.T, b []byte) []T {
	t.Helper()

	r := parquet.NewGenericReader[T](bytes.NewReader(b))
	defer r.Close()

	buf := make([]T, 16)
	var out []T
	for {
		n, err := r.Read(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
	}
	return out
}

func TestWriteHTML(t *testing.T) {
	table := Table{
		Columns: []string{"origin", "region", "count"},
		Rows: [][]string{
			{"RIVER", "Region 1\n5\n0 0\n", "1"},
			{"A<B>", "", "2"},
			{"short"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, table, DefaultHTMLOptions()))
	html := buf.String()

	assert.True(t, strings.HasPrefix(html, `<table border="1" class="dataframe table table-striped">`))
	assert.Contains(t, html, "<th>origin</th>")
	assert.Contains(t, html, "<th>0</th>\n      <td>RIVER</td>")
	assert.Contains(t, html, "<th>2</th>\n      <td>short</td>\n      <td></td>\n      <td></td>")
	assert.Contains(t, html, "A&lt;B&gt;")
	assert.NotContains(t, html, "<style>")
	assert.NotContains(t, html, "<caption>")
	assert.Equal(t, 3, strings.Count(html, "<tr>"))
}

func TestWriteHTMLStyled(t *testing.T) {
	var buf bytes.Buffer
	opts := HTMLOptions{Caption: "Regions", Styled: true, Classes: "grid"}
	require.NoError(t, WriteHTML(&buf, Table{Columns: []string{"a"}}, opts))
	html := buf.String()

	assert.True(t, strings.HasPrefix(html, "<style>"))
	assert.Contains(t, html, "background-color: lightgrey")
	assert.Contains(t, html, "border: 1px solid black")
	assert.Contains(t, html, `class="dataframe grid"`)
	assert.Contains(t, html, "<caption>Regions</caption>")
}

func TestWriteParquetGroups(t *testing.T) {
	rows := []GroupRow{
		{Index: 0, Origin: "RIVER", Region: OptionalText("Region 1\n", true), Count: 1, File: "1_RIVER.mif"},
		{Index: 1, Origin: "ROAD", Region: OptionalText("", false), Count: 2},
	}

	for _, compression := range []string{"", "snappy", "gzip", "zstd"} {
		t.Run("compression="+compression, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteParquet(&buf, rows, compression))

			got := readAllParquet[GroupRow](t, buf.Bytes())
			require.Len(t, got, 2)
			assert.Equal(t, "RIVER", got[0].Origin)
			require.NotNil(t, got[0].Region)
			assert.Equal(t, "Region 1\n", *got[0].Region)
			assert.Nil(t, got[1].Region)
			assert.Equal(t, int64(2), got[1].Count)
		})
	}
}

func TestWriteParquetRecords(t *testing.T) {
	rows := []RecordRow{
		{Index: 0, Kind: "Region", Origin: "ROAD", Region: OptionalText("Region 1\n", true), Values: []string{"ROAD (A1)", "1"}},
		{Index: 1, Kind: "Point", Origin: "ROAD", Values: []string{"ROAD (B2)", "2"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteParquet(&buf, rows, "snappy"))

	got := readAllParquet[RecordRow](t, buf.Bytes())
	require.Len(t, got, 2)
	assert.Equal(t, []string{"ROAD (B2)", "2"}, got[1].Values)
	assert.Equal(t, "Point", got[1].Kind)
	assert.Nil(t, got[1].Region)
}

func TestUnsupportedCompression(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteParquet(&buf, []GroupRow{{}}, "brotli"))
	assert.Error(t, ValidateCompression("lz4"))
	assert.NoError(t, ValidateCompression("ZSTD"))
}
