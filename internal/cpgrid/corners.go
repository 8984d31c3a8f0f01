package cpgrid

import (
	"math"

	"github.com/banshee-data/gridchop/internal/grdecl"
)

// CornerIndices returns the ZCORN positions of the eight corners of cell
// (i, j, k). Consecutive entries alternate across I fastest, then J, then K;
// every pillar carries two depths per cell in each direction, hence the
// doubled strides. Order: the four top corners (I varying fastest, then J)
// followed by the four bottom corners in the same order.
func CornerIndices(i, j, k int, d Dimensions) [8]int {
	d0, d1, d2 := 1, 2*d.NX, 4*d.NX*d.NY
	base := 2 * (i*d0 + j*d1 + k*d2)
	return [8]int{
		base, base + d0,
		base + d1, base + d1 + d0,
		base + d2, base + d2 + d0,
		base + d2 + d1, base + d2 + d1 + d0,
	}
}

// ClipCorners copies the corner depths of the cells selected by r and b,
// clamping every value into [b.ZMin, b.ZMax]. It also returns the map from
// new cell to source cell. The (k, j, i) loop order defines the new cell
// numbering.
func ClipCorners(zcorn []float64, d Dimensions, r Region, b LayerBounds) ([]float64, CellIndexMap, error) {
	if err := checkLen(grdecl.KeywordZcorn, len(zcorn), d.ZcornLen()); err != nil {
		return nil, nil, err
	}
	if err := r.Check(d); err != nil {
		return nil, nil, err
	}
	if b.KMin < 0 || b.KMax > d.NZ || b.KMin >= b.KMax {
		return nil, nil, &RangeError{Bound: "kmin", Value: float64(b.KMin), Detail: "layer range outside the grid or empty"}
	}

	nd := Dimensions{NX: r.IMax - r.IMin, NY: r.JMax - r.JMin, NZ: b.Layers()}
	out := make([]float64, nd.ZcornLen())
	for n := range out {
		out[n] = Unset
	}
	cells := make(CellIndexMap, 0, nd.Cells())

	for k := b.KMin; k < b.KMax; k++ {
		for j := r.JMin; j < r.JMax; j++ {
			for i := r.IMin; i < r.IMax; i++ {
				cells = append(cells, d.CellIndex(i, j, k))
				src := CornerIndices(i, j, k, d)
				dst := CornerIndices(i-r.IMin, j-r.JMin, k-b.KMin, nd)
				for c := range src {
					out[dst[c]] = math.Min(b.ZMax, math.Max(b.ZMin, zcorn[src[c]]))
				}
			}
		}
	}
	return out, cells, nil
}
