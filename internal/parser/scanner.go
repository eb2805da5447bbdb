package parser

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

const (
	// maxCount bounds point, ring and section counts
	maxCount = 1 << 28
	// maxPrealloc bounds slice capacity reserved up front from a count
	maxPrealloc = 4096
)

// lineScanner reads MIF text one logical line at a time.
//
// Blank lines are skipped. A line can be pushed back once with unread, and
// numeric tokens can be pulled across line boundaries with numbers.
type lineScanner struct {
	sc      *bufio.Scanner
	decode  func(string) (string, error)
	line    int
	pending *string
	err     error
}

func newLineScanner(r io.Reader) *lineScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &lineScanner{sc: sc}
}

// next returns the next non-blank line with surrounding whitespace removed.
func (s *lineScanner) next() (string, bool) {
	if s.pending != nil {
		line := *s.pending
		s.pending = nil
		return line, true
	}
	for s.sc.Scan() {
		s.line++
		line := strings.TrimSpace(s.sc.Text())
		if line == "" {
			continue
		}
		if s.decode != nil {
			decoded, err := s.decode(line)
			if err != nil {
				s.err = err
				return "", false
			}
			line = decoded
		}
		return line, true
	}
	if err := s.sc.Err(); err != nil {
		s.err = err
	}
	return "", false
}

// unread pushes line back so the following call to next returns it.
func (s *lineScanner) unread(line string) {
	s.pending = &line
}

// numbers collects n numeric values, starting with the tokens already split
// from the current line and continuing onto following lines.
//
// Tokens left over on the last line consumed are pushed back.
func (s *lineScanner) numbers(tokens []string, n int, object string) ([]float64, error) {
	values := make([]float64, 0, min(n, maxPrealloc))
	for len(values) < n {
		if len(tokens) == 0 {
			line, ok := s.next()
			if !ok {
				if s.err != nil {
					return nil, s.err
				}
				return nil, &ErrInvalidObject{Line: s.line, Object: object,
					Reason: "unexpected end of file while reading coordinates"}
			}
			tokens = splitTokens(line)
			continue
		}
		v, err := strconv.ParseFloat(tokens[0], 64)
		if err != nil {
			return nil, &ErrInvalidObject{Line: s.line, Object: object,
				Reason: "expected a number, got " + strconv.Quote(tokens[0])}
		}
		values = append(values, v)
		tokens = tokens[1:]
	}
	if len(tokens) > 0 {
		s.unread(strings.Join(tokens, " "))
	}
	return values, nil
}

// count reads a single non-negative integer, used for point and ring counts.
func (s *lineScanner) count(tokens []string, object string) (int, error) {
	values, err := s.numbers(tokens, 1, object)
	if err != nil {
		return 0, err
	}
	v := values[0]
	if v > maxCount {
		return 0, &ErrInvalidObject{Line: s.line, Object: object,
			Reason: "count " + strconv.FormatFloat(v, 'f', -1, 64) + " exceeds " + strconv.Itoa(maxCount)}
	}
	n := int(v)
	if n < 0 || float64(n) != v {
		return 0, &ErrInvalidObject{Line: s.line, Object: object,
			Reason: "invalid count " + strconv.FormatFloat(v, 'f', -1, 64)}
	}
	return n, nil
}

// splitTokens splits a line on whitespace and commas.
func splitTokens(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
}

// keyword splits a line into a lower-cased leading keyword and the rest.
func keyword(line string) (string, string) {
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return strings.ToLower(line), ""
	}
	return strings.ToLower(line[:i]), strings.TrimSpace(line[i+1:])
}

// unquote strips one pair of surrounding double quotes.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
