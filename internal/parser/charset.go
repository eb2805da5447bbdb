package parser

import (
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// CharsetWindowsLatin1 is the MapInfo name for Windows code page 1252.
const CharsetWindowsLatin1 = "WindowsLatin1"

// charsetEncodings maps MapInfo Charset names to single-byte code pages.
// Charsets not listed here ("Neutral", "UTF-8", unknown names) pass through.
var charsetEncodings = map[string]encoding.Encoding{
	"windowslatin1":   charmap.Windows1252,
	"windowslatin2":   charmap.Windows1250,
	"windowscyrillic": charmap.Windows1251,
	"windowsgreek":    charmap.Windows1253,
	"windowsturkish":  charmap.Windows1254,
	"windowsbaltic":   charmap.Windows1257,
	"iso8859_1":       charmap.ISO8859_1,
	"iso8859_2":       charmap.ISO8859_2,
	"iso8859_5":       charmap.ISO8859_5,
	"codepage437":     charmap.CodePage437,
	"codepage850":     charmap.CodePage850,
	"codepage866":     charmap.CodePage866,
}

// CharsetEncoding returns the text encoding for a MapInfo charset name, or
// nil when text should be used as-is.
func CharsetEncoding(name string) encoding.Encoding {
	return charsetEncodings[strings.ToLower(strings.TrimSpace(name))]
}

// lineDecoder returns a decode function for the scanner, or nil
func lineDecoder(charset string) func(string) (string, error) {
	enc := CharsetEncoding(charset)
	if enc == nil {
		return nil
	}
	dec := enc.NewDecoder()
	return dec.String
}

// decodeReader wraps r so that it yields UTF-8 text
func decodeReader(r io.Reader, charset string) io.Reader {
	enc := CharsetEncoding(charset)
	if enc == nil {
		return r
	}
	return enc.NewDecoder().Reader(r)
}
