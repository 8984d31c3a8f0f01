package grdecl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Row arity of the dense geometry blocks.
const (
	CoordArity = 6
	ZcornArity = 8
)

// Encoder writes deck blocks. The first write error is latched; later calls
// become no-ops and Flush reports it.
type Encoder struct {
	w   *bufio.Writer
	err error
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

func (e *Encoder) writeString(s string) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.WriteString(s)
}

// Err returns the first error encountered.
func (e *Encoder) Err() error { return e.err }

// Flush writes any buffered data and returns the first error encountered.
func (e *Encoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	e.err = e.w.Flush()
	return e.err
}

// WriteSpecGrid writes the grid dimensions block.
func (e *Encoder) WriteSpecGrid(nx, ny, nz int) error {
	e.writeString(fmt.Sprintf("%s\n%d %d %d 1 F\n/\n\n", KeywordSpecGrid, nx, ny, nz))
	return e.err
}

// WriteRows writes values as dense rows of arity numbers, one record per line.
// Nothing is written for an empty array.
func (e *Encoder) WriteRows(name string, values []float64, arity int) error {
	if e.err != nil {
		return e.err
	}
	if arity <= 0 || len(values)%arity != 0 {
		e.err = fmt.Errorf("grdecl: %s: %d values do not form rows of %d", name, len(values), arity)
		return e.err
	}
	if len(values) == 0 {
		return nil
	}
	e.writeString(name + "\n")
	var line strings.Builder
	for r := 0; r < len(values); r += arity {
		line.Reset()
		for c, v := range values[r : r+arity] {
			if c > 0 {
				line.WriteByte(' ')
			}
			line.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		line.WriteByte('\n')
		e.writeString(line.String())
	}
	e.writeString("/\n\n")
	return e.err
}

// EncodeRunLength writes a per-cell property block, one run per line.
// Nothing is written for an empty array.
func EncodeRunLength[T Scalar](e *Encoder, name string, values []T) error {
	if e.err != nil || len(values) == 0 {
		return e.err
	}
	e.writeString(name + "\n")
	for _, r := range Runs(values) {
		e.writeString(r.String() + "\n")
	}
	e.writeString("/\n\n")
	return e.err
}

// EncodeDeck writes the SPECGRID, COORD and ZCORN blocks of d followed by the
// listed property keywords in order. Properties absent from d are skipped.
func EncodeDeck(w io.Writer, d *Deck, properties []string) error {
	enc := NewEncoder(w)
	nx, ny, nz := d.Dimensions()
	enc.WriteSpecGrid(nx, ny, nz)
	enc.WriteRows(KeywordCoord, d.FloatField(KeywordCoord), CoordArity)
	enc.WriteRows(KeywordZcorn, d.FloatField(KeywordZcorn), ZcornArity)
	for _, name := range properties {
		if v := d.IntField(name); v != nil {
			EncodeRunLength(enc, name, v)
		} else if v := d.FloatField(name); v != nil {
			EncodeRunLength(enc, name, v)
		}
	}
	return enc.Flush()
}
