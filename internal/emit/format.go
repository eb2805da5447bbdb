// Package emit writes one MIF file per output row, each holding a fixed
// header and the row's Region text.
package emit

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beetlebugorg/mif/internal/parser"
)

// Output header values
const (
	HeaderVersion  = 300
	HeaderCharset  = parser.CharsetWindowsLatin1
	HeaderCoordSys = `Nonearth Units "m" Bounds`
	ColumnType     = "Char(254)"
	Delimiter      = ','
)

// DefaultExtension is appended to output file names.
const DefaultExtension = ".mif"

// keyReplacer maps characters that cannot appear in file names
var keyReplacer = strings.NewReplacer(":", "_", "/", "_", `\`, "_")

// SanitizeKey makes a grouping key safe for use in a file name.
func SanitizeKey(key string) string {
	return keyReplacer.Replace(key)
}

// Filename returns "<index>_<sanitized key><ext>". index is 1-based. An empty
// ext selects DefaultExtension.
func Filename(index int, key, ext string) string {
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return strconv.Itoa(index) + "_" + SanitizeKey(key) + ext
}

// MIDFilename returns the companion attribute file name for a MIF file name.
func MIDFilename(mifName string) string {
	i := strings.LastIndexByte(mifName, '.')
	if i < 0 {
		return mifName + ".mid"
	}
	return mifName[:i] + ".mid"
}

// WriteHeader writes the MIF header, declaring every column as Char(254).
func WriteHeader(w io.Writer, columns []string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Version %d\n", HeaderVersion)
	fmt.Fprintf(&b, "Charset %q\n", HeaderCharset)
	fmt.Fprintf(&b, "Delimiter \"%c\"\n", Delimiter)
	fmt.Fprintf(&b, "CoordSys %s\n", HeaderCoordSys)
	fmt.Fprintf(&b, "Columns %d\n", len(columns))
	for _, col := range columns {
		fmt.Fprintf(&b, "  %s %s\n", col, ColumnType)
	}
	b.WriteString("Data\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// FormatMIDRow renders one attribute row: n quoted values joined by
// Delimiter. Missing values are written empty and extra values dropped.
func FormatMIDRow(values []string, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteRune(Delimiter)
		}
		v := ""
		if i < len(values) {
			v = values[i]
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(v, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
	return b.String()
}
