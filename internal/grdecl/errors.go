package grdecl

import "fmt"

// ParseError reports a malformed deck. Line is 1-based; zero means the
// problem was detected after the whole input had been read.
type ParseError struct {
	Line    int
	Keyword string
	Msg     string
	Err     error
}

func (e *ParseError) Error() string {
	where := "end of input"
	if e.Line > 0 {
		where = fmt.Sprintf("line %d", e.Line)
	}
	msg := e.Msg
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Keyword == "" {
		return fmt.Sprintf("grdecl: %s: %s", where, msg)
	}
	return fmt.Sprintf("grdecl: %s: %s: %s", where, e.Keyword, msg)
}

func (e *ParseError) Unwrap() error { return e.Err }
