package cpgrid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/gridchop/internal/grdecl"
)

// LayerExtent is the depth span covered by the corners of one K layer.
type LayerExtent struct {
	K        int
	Min, Max float64
}

// ZLimits returns the flat window the grid offers without extrapolation.
// botmax is the deepest corner on the grid's top surface (the first half of
// layer 0's corner block) and topmin the shallowest corner on its bottom
// surface (the second half of the last layer's block). Depths increase
// downward, so a usable window has botmax < topmin.
func ZLimits(zcorn []float64, d Dimensions) (botmax, topmin float64, err error) {
	if err := checkLen(grdecl.KeywordZcorn, len(zcorn), d.ZcornLen()); err != nil {
		return 0, 0, err
	}
	layer := d.layerLen()
	end := d.NZ * layer
	return floats.Max(zcorn[:layer/2]), floats.Min(zcorn[end-layer/2 : end]), nil
}

// LayerExtents returns the minimum and maximum corner depth of every layer,
// top layer first.
func LayerExtents(zcorn []float64, d Dimensions) ([]LayerExtent, error) {
	if err := checkLen(grdecl.KeywordZcorn, len(zcorn), d.ZcornLen()); err != nil {
		return nil, err
	}
	layer := d.layerLen()
	out := make([]LayerExtent, d.NZ)
	for k := range out {
		block := zcorn[k*layer : (k+1)*layer]
		out[k] = LayerExtent{K: k, Min: floats.Min(block), Max: floats.Max(block)}
	}
	return out, nil
}

// ResolveLayerBounds clamps the requested window to the grid's ZLimits and
// finds the layers that intersect it.
func ResolveLayerBounds(zcorn []float64, d Dimensions, zmin, zmax float64) (LayerBounds, error) {
	botmax, topmin, err := ZLimits(zcorn, d)
	if err != nil {
		return LayerBounds{}, err
	}
	extents, err := LayerExtents(zcorn, d)
	if err != nil {
		return LayerBounds{}, err
	}
	return resolveLayers(extents, botmax, topmin, zmin, zmax)
}

// resolveLayers picks kmin as the first layer reaching strictly below zmin
// and kmax as one past the last layer reaching strictly above zmax. Layer
// extrema rather than single corners are compared so that local relief never
// leaves a partial cell inside the window.
func resolveLayers(extents []LayerExtent, botmax, topmin, zmin, zmax float64) (LayerBounds, error) {
	zmin = math.Max(zmin, botmax)
	zmax = math.Min(zmax, topmin)
	if zmin >= zmax {
		return LayerBounds{}, &RangeError{
			Bound:  "zmin",
			Value:  zmin,
			Detail: fmt.Sprintf("not below zmax = %g after clamping to grid limits [%g, %g]", zmax, botmax, topmin),
		}
	}

	kmin := -1
	for k, e := range extents {
		if e.Max > zmin {
			kmin = k
			break
		}
	}
	kmax := -1
	for k := len(extents); k > 0; k-- {
		if extents[k-1].Min < zmax {
			kmax = k
			break
		}
	}

	switch {
	case kmin < 0:
		return LayerBounds{}, &RangeError{Bound: "zmin", Value: zmin, Detail: "no layer extends below it"}
	case kmax < 0:
		return LayerBounds{}, &RangeError{Bound: "zmax", Value: zmax, Detail: "no layer extends above it"}
	case kmax <= kmin:
		return LayerBounds{}, &RangeError{Bound: "kmax", Value: float64(kmax), Detail: fmt.Sprintf("layer range is empty (kmin = %d)", kmin)}
	}
	return LayerBounds{KMin: kmin, KMax: kmax, ZMin: zmin, ZMax: zmax}, nil
}
