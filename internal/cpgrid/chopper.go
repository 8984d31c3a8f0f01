package cpgrid

import (
	"slices"

	"github.com/banshee-data/gridchop/internal/fsutil"
	"github.com/banshee-data/gridchop/internal/grdecl"
	"github.com/banshee-data/gridchop/internal/monitoring"
)

// Chopper extracts sub-grids from one source. The source must not change
// while the Chopper is in use.
type Chopper struct {
	src     Source
	dims    Dimensions
	botmax  float64
	topmin  float64
	extents []LayerExtent
	fields  []string
	fs      fsutil.FileSystem

	last *SubGrid
}

// Option configures a Chopper.
type Option func(*Chopper)

// WithExtraFields carries additional per-cell properties, written after
// DefaultFields in the given order.
func WithExtraFields(names ...string) Option {
	return func(c *Chopper) {
		for _, n := range names {
			if !slices.Contains(c.fields, n) {
				c.fields = append(c.fields, n)
			}
		}
	}
}

// WithFileSystem sets the filesystem WriteDeck writes to.
func WithFileSystem(fsys fsutil.FileSystem) Option {
	return func(c *Chopper) { c.fs = fsys }
}

// NewChopper validates the source dimensions and ZCORN and computes the
// grid's z-limits.
func NewChopper(src Source, opts ...Option) (*Chopper, error) {
	dims, err := DimensionsOf(src)
	if err != nil {
		return nil, err
	}

	c := &Chopper{
		src:    src,
		dims:   dims,
		fields: DefaultFields(),
		fs:     fsutil.OSFileSystem{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := checkFieldNames(c.fields); err != nil {
		return nil, err
	}

	zcorn := src.FloatField(grdecl.KeywordZcorn)
	if c.botmax, c.topmin, err = ZLimits(zcorn, dims); err != nil {
		return nil, err
	}
	if c.extents, err = LayerExtents(zcorn, dims); err != nil {
		return nil, err
	}

	monitoring.Stage("chop")("parsed grid with dimensions %s, z-limits [%g, %g]", dims, c.botmax, c.topmin)
	return c, nil
}

// Dimensions returns the source dimensions.
func (c *Chopper) Dimensions() Dimensions { return c.dims }

// ZLimits returns the deepest top-surface corner and the shallowest
// bottom-surface corner of the source.
func (c *Chopper) ZLimits() (botmax, topmin float64) { return c.botmax, c.topmin }

// LayerExtents returns the per-layer depth span of the source.
func (c *Chopper) LayerExtents() []LayerExtent { return slices.Clone(c.extents) }

// NewDimensions returns the dimensions of the last sub-grid, or zero
// dimensions before the first successful Chop.
func (c *Chopper) NewDimensions() Dimensions {
	if c.last == nil {
		return Dimensions{}
	}
	return c.last.Dims
}

// SubGrid returns the last sub-grid, or nil.
func (c *Chopper) SubGrid() *SubGrid { return c.last }

// Chop extracts the sub-grid selected by r. On success the result replaces
// the previous one; on failure the previous result is kept.
func (c *Chopper) Chop(r Region) (*SubGrid, error) {
	logf := monitoring.Stage("chop")
	if err := r.Check(c.dims); err != nil {
		return nil, err
	}

	coord, err := ProjectPillars(c.src.FloatField(grdecl.KeywordCoord), c.dims, r)
	if err != nil {
		return nil, err
	}

	bounds, err := resolveLayers(c.extents, c.botmax, c.topmin, r.ZMin, r.ZMax)
	if err != nil {
		return nil, err
	}
	logf("zmin = %g, zmax = %g, layers [%d, %d)", bounds.ZMin, bounds.ZMax, bounds.KMin, bounds.KMax)

	zcorn, cells, err := ClipCorners(c.src.FloatField(grdecl.KeywordZcorn), c.dims, r, bounds)
	if err != nil {
		return nil, err
	}

	props, err := filterProperties(c.src, c.fields, c.dims, cells)
	if err != nil {
		return nil, err
	}

	clamped := r
	clamped.ZMin, clamped.ZMax = bounds.ZMin, bounds.ZMax
	sub := &SubGrid{
		Dims:        Dimensions{NX: r.IMax - r.IMin, NY: r.JMax - r.JMin, NZ: bounds.Layers()},
		Region:      clamped,
		Layers:      bounds,
		Coord:       coord,
		Zcorn:       zcorn,
		CellMap:     cells,
		Fields:      props.names,
		IntFields:   props.ints,
		FloatFields: props.floats,
	}
	c.last = sub
	logf("chopped %s to dimensions %s with %d properties", r, sub.Dims, len(sub.Fields))
	return sub, nil
}

// WriteDeck writes the last sub-grid to path.
func (c *Chopper) WriteDeck(path string) error {
	if c.last == nil {
		return ErrNoSubGrid
	}
	return c.last.WriteDeck(c.fs, path)
}
