// Package cpgrid carves rectangular sub-volumes out of corner-point grids.
//
// A corner-point grid is described by a pillar array (COORD, six values per
// pillar, (nx+1)*(ny+1) pillars) and a corner depth array (ZCORN, eight
// values per cell). Chopping selects an I/J index rectangle, resolves a
// requested depth window into a K layer range, clamps every retained corner
// depth into that window so the result has flat top and bottom surfaces, and
// reindexes every per-cell property onto the new cell numbering.
//
// The stages are pure functions over a read-only Source:
//
//	ResolveLayerBounds -> ProjectPillars, ClipCorners -> FilterField
//
// Chopper strings them together and keeps the most recent SubGrid.
//
// No SQL, plotting or flag handling belongs in this package.
package cpgrid
