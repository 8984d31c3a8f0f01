// Package grdecl reads and writes the keyword-per-block text deck used to
// exchange corner-point grids.
//
// A deck is a sequence of keywords, each followed by whitespace separated
// values and closed by a "/" token. Repeated values may be written as
// "count*value". Read expands such runs; Encoder produces them for per-cell
// property arrays and writes pillar and corner arrays as dense fixed-arity
// rows.
//
// Deck is the in-memory form. It exposes the dimensions and named integer
// and floating-point arrays that the chopper consumes.
package grdecl
