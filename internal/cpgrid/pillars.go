package cpgrid

import "github.com/banshee-data/gridchop/internal/grdecl"

// ProjectPillars copies the pillars bounding the I/J rectangle of r. Pillars
// are shared between neighbouring cells, so the result spans one more pillar
// than cells in each direction.
func ProjectPillars(coord []float64, d Dimensions, r Region) ([]float64, error) {
	if err := checkLen(grdecl.KeywordCoord, len(coord), d.CoordLen()); err != nil {
		return nil, err
	}
	if err := r.Check(d); err != nil {
		return nil, err
	}

	nd := Dimensions{NX: r.IMax - r.IMin, NY: r.JMax - r.JMin}
	out := make([]float64, nd.CoordLen())
	for n := range out {
		out[n] = Unset
	}
	for j := r.JMin; j <= r.JMax; j++ {
		for i := r.IMin; i <= r.IMax; i++ {
			pos := (d.NX+1)*j + i
			newPos := (nd.NX+1)*(j-r.JMin) + (i - r.IMin)
			copy(out[6*newPos:6*(newPos+1)], coord[6*pos:6*(pos+1)])
		}
	}
	return out, nil
}
