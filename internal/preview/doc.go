// Package preview renders quick-look artifacts for a chop: a PNG of the
// per-layer depth span with the resolved window, and an HTML heatmap of the
// grid's top surface with the selected columns labelled.
package preview
