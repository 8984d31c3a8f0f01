package preview

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/gridchop/internal/cpgrid"
	"github.com/banshee-data/gridchop/internal/fsutil"
)

// viridis stops for the depth visual map.
var depthPalette = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

// SurfaceChart builds a scatter of column centres coloured by top depth.
// Columns inside r's I/J rectangle go to the "selected" series and are drawn
// larger than the rest.
func SurfaceChart(d cpgrid.Dimensions, depths []float64, r cpgrid.Region) (*charts.Scatter, error) {
	if len(depths) != d.NX*d.NY {
		return nil, fmt.Errorf("preview: %d column depths for a %dx%d grid", len(depths), d.NX, d.NY)
	}

	var inside, outside []opts.ScatterData
	lo, hi := depths[0], depths[0]
	for j := 0; j < d.NY; j++ {
		for i := 0; i < d.NX; i++ {
			z := depths[i+d.NX*j]
			lo, hi = min(lo, z), max(hi, z)
			pt := opts.ScatterData{Value: []interface{}{float64(i) + 0.5, float64(j) + 0.5, z}}
			if i >= r.IMin && i < r.IMax && j >= r.JMin && j < r.JMax {
				inside = append(inside, pt)
			} else {
				outside = append(outside, pt)
			}
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Grid top surface", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Top surface", Subtitle: fmt.Sprintf("grid=%s selection %s", d, r)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: d.NX, Name: "I", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: d.NY, Name: "J", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: depthPalette},
		}),
	)

	scatter.AddSeries("selected", inside, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 12}))
	scatter.AddSeries("outside", outside, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 5}))
	return scatter, nil
}

// RenderSurfaceHTML writes the surface chart as a standalone HTML page.
func RenderSurfaceHTML(w io.Writer, d cpgrid.Dimensions, depths []float64, r cpgrid.Region) error {
	scatter, err := SurfaceChart(d, depths, r)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		return fmt.Errorf("render surface chart: %w", err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// SaveSurfaceHTML writes the surface chart to path.
func SaveSurfaceHTML(fsys fsutil.FileSystem, path string, d cpgrid.Dimensions, depths []float64, r cpgrid.Region) error {
	return saveWith(fsys, path, func(w io.Writer) error {
		return RenderSurfaceHTML(w, d, depths, r)
	})
}
