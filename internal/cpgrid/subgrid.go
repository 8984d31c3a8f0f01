package cpgrid

import (
	"bytes"
	"fmt"
	"io"

	"github.com/banshee-data/gridchop/internal/fsutil"
	"github.com/banshee-data/gridchop/internal/grdecl"
)

// SubGrid is a chopped grid. Its arrays are owned by the caller and share no
// storage with the source.
type SubGrid struct {
	Dims    Dimensions
	Region  Region // I/J selection with the clamped z-limits
	Layers  LayerBounds
	Coord   []float64
	Zcorn   []float64
	CellMap CellIndexMap

	// Fields lists the carried-over properties in write order.
	Fields      []string
	IntFields   map[string][]int
	FloatFields map[string][]float64
}

// Deck returns the sub-grid as a deck. The deck is itself a valid Source,
// so a sub-grid can be chopped again.
func (s *SubGrid) Deck() *grdecl.Deck {
	d := grdecl.NewDeck(s.Dims.NX, s.Dims.NY, s.Dims.NZ)
	d.SetFloatField(grdecl.KeywordCoord, s.Coord)
	d.SetFloatField(grdecl.KeywordZcorn, s.Zcorn)
	for _, name := range s.Fields {
		if v, ok := s.IntFields[name]; ok {
			d.SetIntField(name, v)
		} else if v, ok := s.FloatFields[name]; ok {
			d.SetFloatField(name, v)
		}
	}
	return d
}

// Encode writes the sub-grid as a text deck.
func (s *SubGrid) Encode(w io.Writer) error {
	return grdecl.EncodeDeck(w, s.Deck(), s.Fields)
}

// WriteDeck encodes the sub-grid and writes it to path. Encoding happens in
// memory first so a failed encode never leaves a partial file behind.
func (s *SubGrid) WriteDeck(fsys fsutil.FileSystem, path string) (err error) {
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}

	f, err := fsys.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Path: path, Err: cerr}
		}
	}()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// ActiveCells counts cells with a non-zero ACTNUM, or all cells when the
// sub-grid carries no ACTNUM.
func (s *SubGrid) ActiveCells() int {
	act, ok := s.IntFields[grdecl.KeywordActnum]
	if !ok {
		return s.CellMap.Len()
	}
	n := 0
	for _, a := range act {
		if a != 0 {
			n++
		}
	}
	return n
}
