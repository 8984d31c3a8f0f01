package preview

import (
	"bytes"
	"io/fs"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/gridchop/internal/cpgrid"
	"github.com/banshee-data/gridchop/internal/fsutil"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func sampleExtents() []cpgrid.LayerExtent {
	return []cpgrid.LayerExtent{
		{K: 0, Min: 1000, Max: 1010},
		{K: 1, Min: 1010, Max: 1022},
		{K: 2, Min: 1022, Max: 1030},
	}
}

// ====== Layer plot ======

func TestLayerPlot(t *testing.T) {
	t.Parallel()

	b := cpgrid.LayerBounds{KMin: 1, KMax: 3, ZMin: 1015, ZMax: 1030}
	p, err := LayerPlot(sampleExtents(), b)
	require.NoError(t, err)
	assert.Contains(t, p.Title.Text, "[1, 3)")
	assert.Equal(t, "Layer (k)", p.X.Label.Text)
}

func TestLayerPlot_NoLayers(t *testing.T) {
	t.Parallel()

	_, err := LayerPlot(nil, cpgrid.LayerBounds{})
	assert.Error(t, err)
}

func TestWriteLayerPNG(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteLayerPNG(&buf, sampleExtents(), cpgrid.LayerBounds{KMin: 0, KMax: 2, ZMin: 1000, ZMax: 1022})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic), "output should be a PNG")
}

func TestSaveLayerPlot(t *testing.T) {
	t.Parallel()

	fsys := fsutil.NewMemoryFileSystem()
	b := cpgrid.LayerBounds{KMin: 0, KMax: 3, ZMin: 1000, ZMax: 1030}
	require.NoError(t, SaveLayerPlot(fsys, "out/layers.png", sampleExtents(), b))

	data, err := fsys.ReadFile("out/layers.png")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestSaveLayerPlot_ReadOnly(t *testing.T) {
	t.Parallel()

	fsys := fsutil.NewMemoryFileSystem()
	fsys.SetReadOnly(true)
	err := SaveLayerPlot(fsys, "layers.png", sampleExtents(), cpgrid.LayerBounds{KMax: 3})
	assert.ErrorIs(t, err, fs.ErrPermission)
}

// ====== Surface chart ======

func TestSurfaceChart_SplitsSelection(t *testing.T) {
	t.Parallel()

	d := cpgrid.Dimensions{NX: 3, NY: 2, NZ: 1}
	depths := []float64{10, 11, 12, 13, 14, 15}
	r := cpgrid.Region{IMin: 1, IMax: 3, JMin: 0, JMax: 1, ZMin: math.Inf(-1), ZMax: math.Inf(1)}

	var buf bytes.Buffer
	require.NoError(t, RenderSurfaceHTML(&buf, d, depths, r))

	html := buf.String()
	assert.Contains(t, html, "Top surface")
	assert.Contains(t, html, "selected")
	assert.Contains(t, html, "outside")
	assert.Contains(t, html, "i=[1,3) j=[0,1)")
}

func TestSurfaceChart_WrongLength(t *testing.T) {
	t.Parallel()

	_, err := SurfaceChart(cpgrid.Dimensions{NX: 2, NY: 2, NZ: 1}, []float64{1, 2, 3}, cpgrid.Region{})
	assert.Error(t, err)
}

func TestSurfaceChart_FlatSurface(t *testing.T) {
	t.Parallel()

	d := cpgrid.Dimensions{NX: 2, NY: 1, NZ: 1}
	_, err := SurfaceChart(d, []float64{5, 5}, cpgrid.FullRegion(d))
	assert.NoError(t, err)
}

func TestSaveSurfaceHTML(t *testing.T) {
	t.Parallel()

	fsys := fsutil.NewMemoryFileSystem()
	d := cpgrid.Dimensions{NX: 2, NY: 2, NZ: 1}
	require.NoError(t, SaveSurfaceHTML(fsys, "surface.html", d, []float64{1, 2, 3, 4}, cpgrid.FullRegion(d)))
	assert.True(t, fsys.Exists("surface.html"))
}
