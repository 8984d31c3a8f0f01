package cpgrid

import (
	"fmt"
	"math"

	"github.com/banshee-data/gridchop/internal/grdecl"
)

// Unset fills output slots before they are written. A value of Unset left in
// a result means a stage failed to cover its output.
const Unset = 1e100

// Source is a read-only grid deck. grdecl.Deck satisfies it.
type Source interface {
	Dimensions() (nx, ny, nz int)
	HasField(name string) bool
	FloatField(name string) []float64
	IntField(name string) []int
}

// Dimensions holds the cell counts along I, J and K.
type Dimensions struct {
	NX, NY, NZ int
}

// DimensionsOf reads and validates the dimensions of src.
func DimensionsOf(src Source) (Dimensions, error) {
	nx, ny, nz := src.Dimensions()
	d := Dimensions{NX: nx, NY: ny, NZ: nz}
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return d, &FormatError{Field: grdecl.KeywordSpecGrid, Detail: fmt.Sprintf("dimensions %s must be positive", d)}
	}
	if !productFits(8, nx, ny, nz) || !productFits(6, nx+1, ny+1) {
		return d, &FormatError{Field: grdecl.KeywordSpecGrid, Detail: fmt.Sprintf("dimensions %s are too large to address", d)}
	}
	return d, nil
}

// productFits reports whether the product of positive factors stays within
// an int.
func productFits(factors ...int) bool {
	p := 1
	for _, f := range factors {
		if f <= 0 || p > math.MaxInt/f {
			return false
		}
		p *= f
	}
	return true
}

func (d Dimensions) String() string {
	return fmt.Sprintf("(%d, %d, %d)", d.NX, d.NY, d.NZ)
}

// Cells is the number of cells.
func (d Dimensions) Cells() int { return d.NX * d.NY * d.NZ }

// CoordLen is the expected COORD length.
func (d Dimensions) CoordLen() int { return 6 * (d.NX + 1) * (d.NY + 1) }

// ZcornLen is the expected ZCORN length.
func (d Dimensions) ZcornLen() int { return 8 * d.Cells() }

// layerLen is the number of ZCORN entries per K layer.
func (d Dimensions) layerLen() int { return 8 * d.NX * d.NY }

// CellIndex is the linear index of cell (i, j, k), I fastest.
func (d Dimensions) CellIndex(i, j, k int) int {
	return i + d.NX*j + d.NX*d.NY*k
}

// Region is a requested selection. I and J ranges are half-open cell ranges
// [IMin, IMax) and [JMin, JMax). ZMin and ZMax are advisory; they are clamped
// to what the grid can offer without extrapolation.
type Region struct {
	IMin, IMax int
	JMin, JMax int
	ZMin, ZMax float64
}

// FullRegion selects every column and the whole depth range of d.
func FullRegion(d Dimensions) Region {
	return Region{IMax: d.NX, JMax: d.NY, ZMin: math.Inf(-1), ZMax: math.Inf(1)}
}

func (r Region) String() string {
	return fmt.Sprintf("i=[%d,%d) j=[%d,%d) z=[%g,%g]", r.IMin, r.IMax, r.JMin, r.JMax, r.ZMin, r.ZMax)
}

// Check verifies the I/J ranges lie within d and the z-limits are numbers.
func (r Region) Check(d Dimensions) error {
	switch {
	case r.IMin < 0:
		return &RangeError{Bound: "imin", Value: float64(r.IMin), Detail: "must not be negative"}
	case r.IMax > d.NX:
		return &RangeError{Bound: "imax", Value: float64(r.IMax), Detail: fmt.Sprintf("exceeds nx = %d", d.NX)}
	case r.IMin >= r.IMax:
		return &RangeError{Bound: "imin", Value: float64(r.IMin), Detail: fmt.Sprintf("must be below imax = %d", r.IMax)}
	case r.JMin < 0:
		return &RangeError{Bound: "jmin", Value: float64(r.JMin), Detail: "must not be negative"}
	case r.JMax > d.NY:
		return &RangeError{Bound: "jmax", Value: float64(r.JMax), Detail: fmt.Sprintf("exceeds ny = %d", d.NY)}
	case r.JMin >= r.JMax:
		return &RangeError{Bound: "jmin", Value: float64(r.JMin), Detail: fmt.Sprintf("must be below jmax = %d", r.JMax)}
	case math.IsNaN(r.ZMin):
		return &RangeError{Bound: "zmin", Value: r.ZMin, Detail: "not a number"}
	case math.IsNaN(r.ZMax):
		return &RangeError{Bound: "zmax", Value: r.ZMax, Detail: "not a number"}
	}
	return nil
}

// LayerBounds is a resolved depth window: the half-open layer range
// [KMin, KMax) and the clamped depths every retained corner is forced into.
type LayerBounds struct {
	KMin, KMax int
	ZMin, ZMax float64
}

// Layers is the number of retained layers.
func (b LayerBounds) Layers() int { return b.KMax - b.KMin }
