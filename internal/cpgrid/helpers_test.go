package cpgrid

import (
	"testing"

	"github.com/banshee-data/gridchop/internal/grdecl"
	"github.com/banshee-data/gridchop/internal/monitoring"
)

func init() {
	monitoring.SetLogger(nil)
}

// horizonFunc gives the depth of horizon k (0..nz) at pillar (pi, pj).
type horizonFunc func(pi, pj, k int) float64

// flatHorizons places horizon k at top + k*dz everywhere.
func flatHorizons(top, dz float64) horizonFunc {
	return func(_, _, k int) float64 { return top + float64(k)*dz }
}

// tiltedHorizons adds slope metres of depth per pillar step in I.
func tiltedHorizons(top, dz, slope float64) horizonFunc {
	return func(pi, _, k int) float64 { return top + float64(k)*dz + float64(pi)*slope }
}

// makeTestDeck builds a vertical-pillar grid whose corners follow h, with
// distinguishable values in every property field.
func makeTestDeck(t testing.TB, nx, ny, nz int, h horizonFunc) *grdecl.Deck {
	t.Helper()
	d := Dimensions{NX: nx, NY: ny, NZ: nz}
	deck := grdecl.NewDeck(nx, ny, nz)

	coord := make([]float64, 0, d.CoordLen())
	for pj := 0; pj <= ny; pj++ {
		for pi := 0; pi <= nx; pi++ {
			x, y := float64(pi)*100, float64(pj)*100
			coord = append(coord, x, y, h(pi, pj, 0), x, y, h(pi, pj, nz))
		}
	}
	deck.SetFloatField(grdecl.KeywordCoord, coord)

	zcorn := make([]float64, d.ZcornLen())
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				idx := CornerIndices(i, j, k, d)
				pillars := [4][2]int{{i, j}, {i + 1, j}, {i, j + 1}, {i + 1, j + 1}}
				for c, p := range pillars {
					zcorn[idx[c]] = h(p[0], p[1], k)
					zcorn[idx[c+4]] = h(p[0], p[1], k+1)
				}
			}
		}
	}
	deck.SetFloatField(grdecl.KeywordZcorn, zcorn)

	n := d.Cells()
	actnum := make([]int, n)
	satnum := make([]int, n)
	poro := make([]float64, n)
	permx := make([]float64, n)
	permz := make([]float64, n)
	for c := 0; c < n; c++ {
		if c%3 != 0 {
			actnum[c] = 1
		}
		satnum[c] = 1 + c/(nx*ny)
		poro[c] = 0.1 + 0.001*float64(c)
		permx[c] = 100 + float64(c)
		permz[c] = 10
	}
	deck.SetIntField(grdecl.KeywordActnum, actnum)
	deck.SetFloatField(grdecl.KeywordPoro, poro)
	deck.SetFloatField(grdecl.KeywordPermX, permx)
	deck.SetFloatField(grdecl.KeywordPermZ, permz)
	deck.SetIntField(grdecl.KeywordSatnum, satnum)
	return deck
}

func identity(n int) CellIndexMap {
	m := make(CellIndexMap, n)
	for i := range m {
		m[i] = i
	}
	return m
}
