package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// parseHeader reads header clauses up to and including the Data keyword.
//
// Clause keywords are case-insensitive. Unknown clauses are ignored, but a
// header without Columns or Data is malformed.
func parseHeader(s *lineScanner) (Header, error) {
	header := defaultHeader()
	sawColumns := false

	for {
		line, ok := s.next()
		if !ok {
			if s.err != nil {
				return header, s.err
			}
			return header, &ErrMalformedHeader{Line: s.line, Reason: "missing Data section"}
		}

		kw, rest := keyword(line)
		switch kw {
		case "version":
			v, err := strconv.Atoi(rest)
			if err != nil {
				return header, &ErrMalformedHeader{Line: s.line, Reason: "invalid Version " + strconv.Quote(rest)}
			}
			header.Version = v

		case "charset":
			header.Charset = unquote(rest)
			s.decode = lineDecoder(header.Charset)

		case "delimiter":
			d, err := parseDelimiter(rest)
			if err != nil {
				return header, &ErrMalformedHeader{Line: s.line, Reason: err.Error()}
			}
			header.Delimiter = d

		case "unique":
			cols, err := parseColumnList(rest)
			if err != nil {
				return header, &ErrMalformedHeader{Line: s.line, Reason: "invalid Unique clause: " + err.Error()}
			}
			header.Unique = cols

		case "index":
			cols, err := parseColumnList(rest)
			if err != nil {
				return header, &ErrMalformedHeader{Line: s.line, Reason: "invalid Index clause: " + err.Error()}
			}
			header.Index = cols

		case "coordsys":
			if rest == "" {
				return header, &ErrMalformedHeader{Line: s.line, Reason: "empty CoordSys clause"}
			}
			header.CoordSys = rest
			// Bounds may be written on its own line
			if next, ok := s.next(); ok {
				if nk, _ := keyword(next); nk == "bounds" {
					header.CoordSys += " " + next
				} else {
					s.unread(next)
				}
			}

		case "transform":
			header.Transform = rest

		case "columns":
			n, err := strconv.Atoi(rest)
			if err != nil || n < 0 {
				return header, &ErrMalformedHeader{Line: s.line, Reason: "invalid Columns count " + strconv.Quote(rest)}
			}
			cols, err := parseColumns(s, n)
			if err != nil {
				return header, err
			}
			header.Columns = cols
			sawColumns = true

		case "data":
			if !sawColumns {
				return header, &ErrMalformedHeader{Line: s.line, Reason: "missing Columns clause"}
			}
			return header, nil
		}
	}
}

// parseColumns reads n column declarations of the form "<name> <type>".
func parseColumns(s *lineScanner, n int) ([]Column, error) {
	cols := make([]Column, 0, n)
	for i := 0; i < n; i++ {
		line, ok := s.next()
		if !ok {
			return nil, &ErrMalformedHeader{Line: s.line, Reason: "header declares more columns than it lists"}
		}
		if kw, _ := keyword(line); kw == "data" {
			return nil, &ErrMalformedHeader{Line: s.line, Reason: "header declares more columns than it lists"}
		}
		name, typ := splitColumn(line)
		if name == "" || typ == "" {
			return nil, &ErrMalformedHeader{Line: s.line, Reason: "invalid column declaration " + strconv.Quote(line)}
		}
		cols = append(cols, Column{Name: name, Type: typ})
	}
	return cols, nil
}

func splitColumn(line string) (string, string) {
	if strings.HasPrefix(line, `"`) {
		if end := strings.Index(line[1:], `"`); end >= 0 {
			return line[1 : end+1], strings.TrimSpace(line[end+2:])
		}
	}
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i+1:])
}

// parseDelimiter reads the quoted single-character delimiter.
func parseDelimiter(rest string) (rune, error) {
	d := unquote(rest)
	if d == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(d) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", d)
	}
	r, _ := utf8.DecodeRuneInString(d)
	return r, nil
}

// parseColumnList reads a comma-separated list of 1-based column numbers.
func parseColumnList(rest string) ([]int, error) {
	var cols []int
	for _, tok := range splitTokens(rest) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, err
		}
		cols = append(cols, n)
	}
	return cols, nil
}
