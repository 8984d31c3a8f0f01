package preview

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/gridchop/internal/cpgrid"
	"github.com/banshee-data/gridchop/internal/fsutil"
)

var (
	colorLayerTop    = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	colorLayerBottom = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	colorWindow      = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	colorKRange      = color.RGBA{R: 44, G: 160, B: 44, A: 255}
)

// LayerPlot builds the depth-span plot: the shallowest and deepest corner of
// every layer, the clamped z-window as dashed lines and the retained layer
// range as vertical markers. Depth increases downward on the plot.
func LayerPlot(extents []cpgrid.LayerExtent, b cpgrid.LayerBounds) (*plot.Plot, error) {
	if len(extents) == 0 {
		return nil, fmt.Errorf("preview: no layers to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Layer depth span, keeping layers [%d, %d)", b.KMin, b.KMax)
	p.X.Label.Text = "Layer (k)"
	p.Y.Label.Text = "Depth"
	p.Y.Scale = plot.InvertedScale{Normalizer: p.Y.Scale}

	shallow := make(plotter.XYs, len(extents))
	deep := make(plotter.XYs, len(extents))
	lo, hi := extents[0].Min, extents[0].Max
	for n, e := range extents {
		shallow[n] = plotter.XY{X: float64(e.K), Y: e.Min}
		deep[n] = plotter.XY{X: float64(e.K), Y: e.Max}
		lo, hi = min(lo, e.Min), max(hi, e.Max)
	}

	for _, s := range []struct {
		label string
		pts   plotter.XYs
		color color.Color
	}{
		{"shallowest corner", shallow, colorLayerTop},
		{"deepest corner", deep, colorLayerBottom},
	} {
		line, err := plotter.NewLine(s.pts)
		if err != nil {
			return nil, err
		}
		line.Color = s.color
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(s.label, line)
	}

	for n, z := range []float64{b.ZMin, b.ZMax} {
		f := plotter.NewFunction(func(float64) float64 { return z })
		f.Color = colorWindow
		f.Width = vg.Points(1)
		f.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(f)
		if n == 0 {
			p.Legend.Add(fmt.Sprintf("window [%g, %g]", b.ZMin, b.ZMax), f)
		}
	}

	for _, k := range []int{b.KMin, b.KMax} {
		x := float64(k) - 0.5
		marker, err := plotter.NewLine(plotter.XYs{{X: x, Y: lo}, {X: x, Y: hi}})
		if err != nil {
			return nil, err
		}
		marker.Color = colorKRange
		marker.Width = vg.Points(1)
		p.Add(marker)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// WriteLayerPNG renders the layer plot as a PNG to w.
func WriteLayerPNG(w io.Writer, extents []cpgrid.LayerExtent, b cpgrid.LayerBounds) error {
	p, err := LayerPlot(extents, b)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(10*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render layer plot: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// SaveLayerPlot writes the layer plot PNG to path.
func SaveLayerPlot(fsys fsutil.FileSystem, path string, extents []cpgrid.LayerExtent, b cpgrid.LayerBounds) error {
	return saveWith(fsys, path, func(w io.Writer) error {
		return WriteLayerPNG(w, extents, b)
	})
}

// saveWith creates path, runs render against it and closes the file on
// every path.
func saveWith(fsys fsutil.FileSystem, path string, render func(io.Writer) error) (err error) {
	if err := fsutil.EnsureParent(fsys, path); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return render(f)
}
