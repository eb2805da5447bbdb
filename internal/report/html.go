// Package report renders the output table as HTML and Parquet.
package report

import (
	"html/template"
	"io"
	"strconv"
	"strings"
)

// DefaultClasses are the CSS classes of the rendered table.
const DefaultClasses = "table table-striped"

// Table is a rectangular text table with a positional index
type Table struct {
	Columns []string
	Rows    [][]string
}

// HTMLOptions configures WriteHTML
type HTMLOptions struct {
	// Classes are added after "dataframe" on the table element
	// Default: DefaultClasses
	Classes string

	// Caption is shown above the table when non-empty
	Caption string

	// Styled: if true, a style block greys and bolds the header and borders
	// every body cell
	Styled bool
}

// DefaultHTMLOptions returns options with defaults
func DefaultHTMLOptions() HTMLOptions {
	return HTMLOptions{
		Classes: DefaultClasses,
	}
}

var tableTemplate = template.Must(template.New("table").Parse(`
{{- if .Styled}}<style>
  table.dataframe thead th { background-color: lightgrey; font-weight: bold; }
  table.dataframe tbody td { border: 1px solid black; }
</style>
{{end -}}
<table border="1" class="{{.Classes}}">
{{- if .Caption}}
  <caption>{{.Caption}}</caption>
{{- end}}
  <thead>
    <tr style="text-align: right;">
      <th></th>
{{- range .Columns}}
      <th>{{.}}</th>
{{- end}}
    </tr>
  </thead>
  <tbody>
{{- range .Rows}}
    <tr>
      <th>{{.Index}}</th>
{{- range .Cells}}
      <td>{{.}}</td>
{{- end}}
    </tr>
{{- end}}
  </tbody>
</table>
`))

type htmlRow struct {
	Index string
	Cells []string
}

// WriteHTML renders t as an HTML table with a 0-based index column. Cell
// text is escaped. Rows shorter than the header are padded with empty cells.
func WriteHTML(w io.Writer, t Table, opts HTMLOptions) error {
	classes := strings.TrimSpace(opts.Classes)
	if classes == "" {
		classes = DefaultClasses
	}

	rows := make([]htmlRow, len(t.Rows))
	for i, r := range t.Rows {
		cells := make([]string, len(t.Columns))
		copy(cells, r)
		rows[i] = htmlRow{Index: strconv.Itoa(i), Cells: cells}
	}

	return tableTemplate.Execute(w, struct {
		Classes string
		Caption string
		Styled  bool
		Columns []string
		Rows    []htmlRow
	}{
		Classes: "dataframe " + classes,
		Caption: opts.Caption,
		Styled:  opts.Styled,
		Columns: t.Columns,
		Rows:    rows,
	})
}
