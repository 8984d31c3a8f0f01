package grdecl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// sectionKeywords carry no data and no terminating slash.
var sectionKeywords = map[string]bool{
	"RUNSPEC":  true,
	"GRID":     true,
	"EDIT":     true,
	"PROPS":    true,
	"REGIONS":  true,
	"SOLUTION": true,
	"SUMMARY":  true,
	"SCHEDULE": true,
	"ECHO":     true,
	"NOECHO":   true,
	"END":      true,
}

// textKeywords hold quoted strings and are read but not stored.
var textKeywords = map[string]bool{
	"GRIDUNIT": true,
	"MAPUNITS": true,
	"GDORIENT": true,
}

const maxLineBytes = 16 << 20

// Read parses a deck. SPECGRID or DIMENS must be present. A keyword given
// twice keeps its last value.
func Read(r io.Reader) (*Deck, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	d := NewDeck(0, 0, 0)
	haveDims := false

	var (
		keyword string
		start   int
		tokens  []string
	)
	finish := func() error {
		if err := d.store(keyword, tokens, &haveDims); err != nil {
			return &ParseError{Line: start, Keyword: keyword, Msg: "bad data", Err: err}
		}
		keyword, tokens = "", nil
		return nil
	}

	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(stripComment(sc.Text()))
		if len(fields) == 0 {
			continue
		}

		if keyword == "" {
			name := strings.ToUpper(fields[0])
			if !isKeyword(name) {
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("expected keyword, found %q", fields[0])}
			}
			if sectionKeywords[name] {
				continue
			}
			if name == "INCLUDE" {
				return nil, &ParseError{Line: lineNo, Keyword: name, Msg: "include files are not supported"}
			}
			keyword, start = name, lineNo
			fields = fields[1:]
		}

		for _, f := range fields {
			slash := strings.IndexByte(f, '/')
			if slash < 0 {
				tokens = append(tokens, f)
				continue
			}
			if slash > 0 {
				tokens = append(tokens, f[:slash])
			}
			if err := finish(); err != nil {
				return nil, err
			}
			// Anything after the terminator on the same line is ignored.
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{Line: lineNo, Msg: "read failed", Err: err}
	}
	if keyword != "" {
		return nil, &ParseError{Line: start, Keyword: keyword, Msg: "missing terminating /"}
	}
	if !haveDims {
		return nil, &ParseError{Msg: "no SPECGRID or DIMENS keyword"}
	}
	return d, nil
}

// stripComment cuts line at the first "--" outside a quoted string.
func stripComment(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '-' && i+1 < len(line) && line[i+1] == '-':
			return line[:i]
		}
	}
	return line
}

func isKeyword(s string) bool {
	if s == "" || len(s) > 8 || s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}
	return true
}

func (d *Deck) store(keyword string, tokens []string, haveDims *bool) error {
	switch {
	case keyword == KeywordSpecGrid || keyword == KeywordDimens:
		if len(tokens) < 3 {
			return fmt.Errorf("need 3 dimensions, got %d values", len(tokens))
		}
		var dims [3]int
		for i := range dims {
			n, err := strconv.Atoi(tokens[i])
			if err != nil {
				return fmt.Errorf("dimension %d: %w", i, err)
			}
			dims[i] = n
		}
		d.SetDimensions(dims[0], dims[1], dims[2])
		*haveDims = true
	case textKeywords[keyword]:
	case IsIntegerKeyword(keyword):
		v, err := ExpandInts(tokens)
		if err != nil {
			return err
		}
		d.SetIntField(keyword, v)
	default:
		v, err := ExpandFloats(tokens)
		if err != nil {
			return err
		}
		d.SetFloatField(keyword, v)
	}
	return nil
}
