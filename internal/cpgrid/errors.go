package cpgrid

import (
	"errors"
	"fmt"
)

// ErrNoSubGrid is returned by Chopper.WriteDeck before a successful Chop.
var ErrNoSubGrid = errors.New("cpgrid: no sub-grid has been chopped")

// FormatError reports an array whose length disagrees with the grid dimensions.
type FormatError struct {
	Field    string
	Expected int
	Actual   int
	Detail   string
}

func (e *FormatError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("cpgrid: %s: %s", e.Field, e.Detail)
	}
	return fmt.Sprintf("cpgrid: %s has %d values, expected %d", e.Field, e.Actual, e.Expected)
}

// RangeError reports a selection bound that cannot be satisfied.
type RangeError struct {
	Bound  string
	Value  float64
	Detail string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("cpgrid: %s = %g: %s", e.Bound, e.Value, e.Detail)
}

// IOError reports a failure writing the output deck.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("cpgrid: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func checkLen(field string, n, want int) error {
	if n != want {
		return &FormatError{Field: field, Expected: want, Actual: n}
	}
	return nil
}
