package grdecl

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Scalar is the element type of a per-cell property array.
type Scalar interface {
	int | float64
}

// Run is a maximal stretch of identical consecutive values.
type Run[T Scalar] struct {
	Count int
	Value T
}

// Runs collapses values into maximal runs. Floats compare by bit pattern, so
// 0 and -0 start separate runs and equal NaN payloads share one.
func Runs[T Scalar](values []T) []Run[T] {
	var runs []Run[T]
	for _, v := range values {
		if n := len(runs); n > 0 && sameBits(runs[n-1].Value, v) {
			runs[n-1].Count++
			continue
		}
		runs = append(runs, Run[T]{Count: 1, Value: v})
	}
	return runs
}

func sameBits[T Scalar](a, b T) bool {
	switch x := any(a).(type) {
	case float64:
		return math.Float64bits(x) == math.Float64bits(any(b).(float64))
	default:
		return a == b
	}
}

// formatScalar renders v with the shortest text that parses back to the same value.
func formatScalar[T Scalar](v T) string {
	switch x := any(v).(type) {
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case int:
		return strconv.Itoa(x)
	}
	panic("unreachable")
}

// String renders the run as it appears in a deck.
func (r Run[T]) String() string {
	if r.Count == 1 {
		return formatScalar(r.Value)
	}
	return strconv.Itoa(r.Count) + "*" + formatScalar(r.Value)
}

var errDefaulted = errors.New("defaulted values are not supported")

// splitRepeat splits "n*v" into its count and value text. A token without
// '*' is a single value.
func splitRepeat(tok string) (int, string, error) {
	star := strings.IndexByte(tok, '*')
	if star < 0 {
		return 1, tok, nil
	}
	n, err := strconv.Atoi(tok[:star])
	if err != nil || n <= 0 {
		return 0, "", fmt.Errorf("invalid repeat count in %q", tok)
	}
	if star == len(tok)-1 {
		return 0, "", fmt.Errorf("%q: %w", tok, errDefaulted)
	}
	return n, tok[star+1:], nil
}

// ExpandFloats decodes deck tokens, expanding "n*v" runs.
func ExpandFloats(tokens []string) ([]float64, error) {
	return expand(tokens, func(s string) (float64, error) {
		// Fortran-style exponents show up in decks written by older tools.
		s = strings.Map(func(r rune) rune {
			if r == 'd' || r == 'D' {
				return 'e'
			}
			return r
		}, s)
		return strconv.ParseFloat(s, 64)
	})
}

// ExpandInts decodes deck tokens, expanding "n*v" runs.
func ExpandInts(tokens []string) ([]int, error) {
	return expand(tokens, strconv.Atoi)
}

// maxExpandedValues bounds the decoded length of a single keyword.
const maxExpandedValues = 1 << 30

var errTooManyValues = fmt.Errorf("keyword expands to more than %d values", maxExpandedValues)

func expand[T Scalar](tokens []string, parse func(string) (T, error)) ([]T, error) {
	out := make([]T, 0, len(tokens))
	for _, tok := range tokens {
		n, text, err := splitRepeat(tok)
		if err != nil {
			return nil, err
		}
		if n > maxExpandedValues-len(out) {
			return nil, fmt.Errorf("%q: %w", tok, errTooManyValues)
		}
		v, err := parse(text)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", tok, err)
		}
		for i := 0; i < n; i++ {
			out = append(out, v)
		}
	}
	return out, nil
}
