package cpgrid

import "github.com/banshee-data/gridchop/internal/grdecl"

// ColumnTopDepths returns, for every (i, j) column, the mean depth of the
// four top corners of its first layer. The result is indexed i + nx*j.
func ColumnTopDepths(zcorn []float64, d Dimensions) ([]float64, error) {
	if err := checkLen(grdecl.KeywordZcorn, len(zcorn), d.ZcornLen()); err != nil {
		return nil, err
	}
	out := make([]float64, d.NX*d.NY)
	for j := 0; j < d.NY; j++ {
		for i := 0; i < d.NX; i++ {
			idx := CornerIndices(i, j, 0, d)
			sum := 0.0
			for _, c := range idx[:4] {
				sum += zcorn[c]
			}
			out[i+d.NX*j] = sum / 4
		}
	}
	return out, nil
}
