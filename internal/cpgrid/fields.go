package cpgrid

import (
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/gridchop/internal/grdecl"
)

// CellIndexMap maps each new linear cell index to the source cell feeding it.
// It is built once by ClipCorners and must not be modified afterwards; every
// property filter reads it concurrently.
type CellIndexMap []int

// Len is the number of cells in the sub-grid.
func (m CellIndexMap) Len() int { return len(m) }

// FilterField reindexes a per-cell array: out[c] = field[m[c]].
func FilterField[T grdecl.Scalar](field []T, m CellIndexMap) []T {
	out := make([]T, len(m))
	for c, old := range m {
		out[c] = field[old]
	}
	return out
}

// DefaultFields are the per-cell properties carried over by default, in the
// order they are written.
func DefaultFields() []string {
	return []string{
		grdecl.KeywordActnum,
		grdecl.KeywordPoro,
		grdecl.KeywordPermX,
		grdecl.KeywordPermY,
		grdecl.KeywordPermZ,
		grdecl.KeywordSatnum,
	}
}

// geometryKeywords are never treated as per-cell properties.
var geometryKeywords = []string{grdecl.KeywordSpecGrid, grdecl.KeywordDimens, grdecl.KeywordCoord, grdecl.KeywordZcorn}

// filtered holds the reindexed properties in write order.
type filtered struct {
	names  []string
	ints   map[string][]int
	floats map[string][]float64
}

type propertyJob struct {
	name   string
	ints   []int
	floats []float64
}

// filterProperties reindexes every listed field present on src. Fields are
// processed concurrently once m is complete; any length mismatch aborts the
// whole stage.
func filterProperties(src Source, names []string, d Dimensions, m CellIndexMap) (*filtered, error) {
	var jobs []*propertyJob
	for _, name := range names {
		if !src.HasField(name) {
			continue
		}
		jobs = append(jobs, &propertyJob{name: name})
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, job := range jobs {
		g.Go(func() error {
			if v := src.IntField(job.name); v != nil {
				if err := checkLen(job.name, len(v), d.Cells()); err != nil {
					return err
				}
				job.ints = FilterField(v, m)
				return nil
			}
			v := src.FloatField(job.name)
			if err := checkLen(job.name, len(v), d.Cells()); err != nil {
				return err
			}
			job.floats = FilterField(v, m)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &filtered{ints: make(map[string][]int), floats: make(map[string][]float64)}
	for _, job := range jobs {
		out.names = append(out.names, job.name)
		if job.ints != nil {
			out.ints[job.name] = job.ints
		} else {
			out.floats[job.name] = job.floats
		}
	}
	return out, nil
}

// checkFieldNames rejects geometry keywords, blanks and duplicates.
func checkFieldNames(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		switch {
		case name == "":
			return fmt.Errorf("cpgrid: empty property name")
		case slices.Contains(geometryKeywords, name):
			return fmt.Errorf("cpgrid: %s is not a per-cell property", name)
		case seen[name]:
			return fmt.Errorf("cpgrid: property %s listed twice", name)
		}
		seen[name] = true
	}
	return nil
}
